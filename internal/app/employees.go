package app

import (
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/roster"
)

// ParseSalary reads an amount such as "1423400" or "1,423,400.50".
func ParseSalary(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "_", "", "$", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, apperr.Invalid("monthlySalary", "%q is not an amount", s)
	}
	return d, nil
}

func (s *Service) Employees() []*roster.Employee {
	return s.state.Employees.All()
}

func (s *Service) Employee(name string) (*roster.Employee, error) {
	return s.state.Employees.Get(name)
}

func (s *Service) AddEmployee(name, salary string, dailyHours int, contractType string) (Outcome, error) {
	amount, err := ParseSalary(salary)
	if err != nil {
		return Outcome{}, err
	}
	e, err := roster.NewEmployee(name, amount, dailyHours, contractType)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.state.Employees.Add(e); err != nil {
		return Outcome{}, err
	}

	log.WithFields(log.Fields{"employee": e.Name, "dailyHours": e.StandardDailyHours}).Info("employee added")
	return s.commit(changed("employee %s added (hourly rate %s)", e.Name, e.HourlyRate().StringFixed(2)))
}

func (s *Service) EditEmployee(name string, ed roster.Edit) (Outcome, error) {
	e, err := s.state.Employees.Update(name, ed)
	if err != nil {
		return Outcome{}, err
	}

	log.WithField("employee", e.Name).Info("employee updated")
	return s.commit(changed("employee %s updated", e.Name))
}

// DeleteEmployee removes the employee together with all of their shifts.
func (s *Service) DeleteEmployee(name string) (Outcome, error) {
	e, err := s.state.Employees.Delete(name)
	if err != nil {
		return Outcome{}, err
	}

	log.WithFields(log.Fields{"employee": e.Name, "shifts": len(e.Shifts)}).Info("employee deleted")
	return s.commit(changed("employee %s deleted with %d shifts", e.Name, len(e.Shifts)))
}
