package roster

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/shift"
)

// Roster is the set of employees keyed by name.
type Roster struct {
	employees map[string]*Employee
}

func New() *Roster {
	return &Roster{employees: make(map[string]*Employee)}
}

// Add registers e. Names are unique.
func (r *Roster) Add(e *Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if _, exists := r.employees[e.Name]; exists {
		return apperr.Invalid("name", "employee %q already exists", e.Name)
	}
	if e.Shifts == nil {
		e.Shifts = []shift.Shift{}
	}
	r.employees[e.Name] = e
	return nil
}

// Get looks an employee up by exact name.
func (r *Roster) Get(name string) (*Employee, error) {
	e, ok := r.employees[strings.TrimSpace(name)]
	if !ok {
		return nil, apperr.NotFound("employee", name)
	}
	return e, nil
}

// Delete removes the employee and all their shifts.
func (r *Roster) Delete(name string) (*Employee, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	delete(r.employees, e.Name)
	return e, nil
}

// Edit is a partial change to an employee. Nil fields are left alone.
type Edit struct {
	Name               *string
	MonthlySalary      *decimal.Decimal
	StandardDailyHours *int
	ContractType       *string
}

func (ed Edit) Empty() bool {
	return ed.Name == nil && ed.MonthlySalary == nil && ed.StandardDailyHours == nil && ed.ContractType == nil
}

// Update applies ed to the named employee. The edit is validated as a whole
// against a copy; on error nothing changes.
func (r *Roster) Update(name string, ed Edit) (*Employee, error) {
	current, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if ed.Empty() {
		return nil, apperr.Invalid("employee", "nothing to update")
	}

	next := current.Clone()
	if ed.Name != nil {
		next.Name = strings.TrimSpace(*ed.Name)
	}
	if ed.MonthlySalary != nil {
		next.MonthlySalary = *ed.MonthlySalary
	}
	if ed.StandardDailyHours != nil {
		next.StandardDailyHours = *ed.StandardDailyHours
	}
	if ed.ContractType != nil {
		next.ContractType = strings.TrimSpace(*ed.ContractType)
		if next.ContractType == "" {
			next.ContractType = DefaultContractType
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if next.Name != current.Name {
		if _, taken := r.employees[next.Name]; taken {
			return nil, apperr.Invalid("name", "employee %q already exists", next.Name)
		}
		delete(r.employees, current.Name)
	}
	r.employees[next.Name] = next
	return next, nil
}

// Names returns employee names sorted.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.employees))
	for n := range r.employees {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns employees sorted by name.
func (r *Roster) All() []*Employee {
	out := make([]*Employee, 0, len(r.employees))
	for _, n := range r.Names() {
		out = append(out, r.employees[n])
	}
	return out
}

func (r *Roster) Len() int {
	return len(r.employees)
}

func (r *Roster) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.employees)
}

func (r *Roster) UnmarshalJSON(data []byte) error {
	var m map[string]*Employee
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	loaded := New()
	for key, e := range m {
		if e == nil {
			continue
		}
		if e.Name == "" {
			e.Name = key
		}
		if err := loaded.Add(e); err != nil {
			return err
		}
	}
	*r = *loaded
	return nil
}
