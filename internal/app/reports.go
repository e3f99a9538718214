package app

import (
	"time"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
	"github.com/recargos/internal/surcharge"
)

// EmployeeSummary computes one employee's shifts inside r.
func (s *Service) EmployeeSummary(name string, r *surcharge.Range) (*roster.Employee, surcharge.Summary, error) {
	e, err := s.state.Employees.Get(name)
	if err != nil {
		return nil, surcharge.Summary{}, err
	}
	var shifts []shift.Shift
	for _, sh := range e.Shifts {
		if r.Contains(sh.Date) {
			shifts = append(shifts, sh)
		}
	}
	return e, s.Calculator().Employee(e, shifts), nil
}

// Consolidated computes the named employees, or everyone when names is
// empty, over r.
func (s *Service) Consolidated(names []string, r *surcharge.Range) (surcharge.Consolidated, error) {
	emps := s.state.Employees.All()
	if len(names) > 0 {
		emps = make([]*roster.Employee, 0, len(names))
		seen := make(map[string]bool)
		for _, n := range names {
			e, err := s.state.Employees.Get(n)
			if err != nil {
				return surcharge.Consolidated{}, err
			}
			if !seen[e.Name] {
				seen[e.Name] = true
				emps = append(emps, e)
			}
		}
	}
	return s.Calculator().Consolidated(emps, r), nil
}

// ArchiveMonth writes the month's archive. With clean the archived shifts are
// dropped from the saved state.
func (s *Service) ArchiveMonth(year int, month time.Month, clean bool) (Outcome, error) {
	path, err := s.Archiver().ArchiveMonth(year, month, clean, s.now())
	if err != nil {
		return Outcome{}, err
	}
	out := changed("archived %s %d to %s", month, year, path)
	if !clean {
		return out, nil
	}
	return s.commit(out)
}

// AutoArchive archives every complete past month not archived yet.
func (s *Service) AutoArchive(clean bool) ([]string, error) {
	archived, err := s.Archiver().AutoArchivePastMonths(clean, s.now())
	if err != nil {
		return archived, err
	}
	if clean && len(archived) > 0 {
		if err := s.save(); err != nil {
			return archived, err
		}
	}
	return archived, nil
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, apperr.Invalid("month", "%q is not YYYY-MM (e.g., 2025-01)", s)
	}
	return t.Year(), t.Month(), nil
}
