// Package roster holds employees and the shifts recorded for each of them.
package roster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/shift"
)

const (
	// MonthlyHours is the legal monthly hour count the salary is spread over.
	MonthlyHours = 220

	DefaultDailyHours   = 8
	DefaultContractType = "indefinido"
)

var monthlyHours = decimal.NewFromInt(MonthlyHours)

// Employee is a worker with a monthly salary and a list of recorded shifts in
// registration order.
type Employee struct {
	Name               string          `json:"name"`
	MonthlySalary      decimal.Decimal `json:"monthlySalary"`
	StandardDailyHours int             `json:"standardDailyHours"`
	ContractType       string          `json:"contractType"`
	Shifts             []shift.Shift   `json:"shifts"`
}

// NewEmployee validates its input and returns an employee with no shifts. An
// empty contract type becomes DefaultContractType.
func NewEmployee(name string, salary decimal.Decimal, dailyHours int, contractType string) (*Employee, error) {
	e := &Employee{
		Name:               strings.TrimSpace(name),
		MonthlySalary:      salary,
		StandardDailyHours: dailyHours,
		ContractType:       strings.TrimSpace(contractType),
		Shifts:             []shift.Shift{},
	}
	if e.ContractType == "" {
		e.ContractType = DefaultContractType
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate rejects values that would break the rate computation.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return apperr.Invalid("name", "employee name is required")
	}
	if !e.MonthlySalary.IsPositive() {
		return apperr.Invalid("monthlySalary", "salary must be positive, got %s", e.MonthlySalary)
	}
	if e.StandardDailyHours < 1 || e.StandardDailyHours > 24 {
		return apperr.Invalid("standardDailyHours", "daily hours must be between 1 and 24, got %d", e.StandardDailyHours)
	}
	return nil
}

// HourlyRate is the ordinary hourly rate: monthly salary over 220 hours.
func (e *Employee) HourlyRate() decimal.Decimal {
	return e.MonthlySalary.Div(monthlyHours)
}

// DailyHours is the overtime threshold per calendar date.
func (e *Employee) DailyHours() int {
	return e.StandardDailyHours
}

// AddShift appends s and returns its zero-based index.
func (e *Employee) AddShift(s shift.Shift) int {
	e.Shifts = append(e.Shifts, s)
	return len(e.Shifts) - 1
}

func (e *Employee) checkIndex(i int) error {
	if i < 0 || i >= len(e.Shifts) {
		return apperr.NotFound("shift", fmt.Sprintf("%s#%d", e.Name, i+1))
	}
	return nil
}

// ShiftAt returns the shift at zero-based index i.
func (e *Employee) ShiftAt(i int) (shift.Shift, error) {
	if err := e.checkIndex(i); err != nil {
		return shift.Shift{}, err
	}
	return e.Shifts[i], nil
}

// ReplaceShift overwrites the shift at i, keeping its ID.
func (e *Employee) ReplaceShift(i int, s shift.Shift) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	s.ID = e.Shifts[i].ID
	e.Shifts[i] = s
	return nil
}

// RemoveShift deletes the shift at i and returns it.
func (e *Employee) RemoveShift(i int) (shift.Shift, error) {
	if err := e.checkIndex(i); err != nil {
		return shift.Shift{}, err
	}
	removed := e.Shifts[i]
	e.Shifts = append(e.Shifts[:i], e.Shifts[i+1:]...)
	return removed, nil
}

// FindShift resolves a reference to a zero-based index. A reference is either
// a 1-based position ("3") or a prefix of the shift ID; positions win.
func (e *Employee) FindShift(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, apperr.Invalid("shift", "shift reference is required")
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(e.Shifts) {
		return pos - 1, nil
	}

	match := -1
	for i, s := range e.Shifts {
		if strings.HasPrefix(s.ID, ref) {
			if match >= 0 {
				return 0, apperr.Invalid("shift", "reference %q matches more than one shift", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, apperr.NotFound("shift", ref)
	}
	return match, nil
}

// Clone returns a deep copy.
func (e *Employee) Clone() *Employee {
	c := *e
	c.Shifts = make([]shift.Shift, len(e.Shifts))
	copy(c.Shifts, e.Shifts)
	return &c
}
