package app

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/report"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
	"github.com/recargos/internal/surcharge"
)

// ShiftEdit holds replacement values for a shift. Empty fields keep the
// current value.
type ShiftEdit struct {
	Date  string
	Entry string
	Exit  string
}

func (ed ShiftEdit) apply(s shift.Shift) (shift.Shift, error) {
	var err error
	if v := strings.TrimSpace(ed.Date); v != "" {
		if s.Date, err = calendar.ParseDate(v); err != nil {
			return s, err
		}
	}
	if v := strings.TrimSpace(ed.Entry); v != "" {
		if s.Entry, err = shift.ParseClock(v); err != nil {
			return s, fmt.Errorf("entry: %w", err)
		}
	}
	if v := strings.TrimSpace(ed.Exit); v != "" {
		if s.Exit, err = shift.ParseClock(v); err != nil {
			return s, fmt.Errorf("exit: %w", err)
		}
	}
	return s, nil
}

// Shifts lists an employee's shifts in registration order, restricted to r
// when r is not nil. The returned positions are 1-based.
func (s *Service) Shifts(name string, r *surcharge.Range) ([]int, []shift.Shift, error) {
	e, err := s.state.Employees.Get(name)
	if err != nil {
		return nil, nil, err
	}
	var positions []int
	var shifts []shift.Shift
	for i, sh := range e.Shifts {
		if r.Contains(sh.Date) {
			positions = append(positions, i+1)
			shifts = append(shifts, sh)
		}
	}
	return positions, shifts, nil
}

func (s *Service) AddShift(name, date, entry, exit string) (Outcome, error) {
	e, err := s.state.Employees.Get(name)
	if err != nil {
		return Outcome{}, err
	}
	sh, err := shift.Parse(date, entry, exit)
	if err != nil {
		return Outcome{}, err
	}
	pos := e.AddShift(sh) + 1

	log.WithFields(log.Fields{"employee": e.Name, "shift": sh.ID}).Info("shift added")
	return s.commit(changed("shift #%d [%s] %s added for %s (%.2fh)", pos, sh.ShortID(), sh, e.Name, sh.Duration().Hours()))
}

// EditShift changes the shift addressed by ref, a 1-based position or an ID
// prefix.
func (s *Service) EditShift(name, ref string, ed ShiftEdit) (Outcome, error) {
	e, idx, err := s.findShift(name, ref)
	if err != nil {
		return Outcome{}, err
	}
	if ed == (ShiftEdit{}) {
		return Outcome{}, apperr.Invalid("shift", "nothing to update")
	}
	updated, err := ed.apply(e.Shifts[idx])
	if err != nil {
		return Outcome{}, err
	}
	if err := e.ReplaceShift(idx, updated); err != nil {
		return Outcome{}, err
	}

	log.WithFields(log.Fields{"employee": e.Name, "shift": updated.ID}).Info("shift updated")
	return s.commit(changed("shift #%d of %s is now %s", idx+1, e.Name, updated))
}

func (s *Service) DeleteShift(name, ref string) (Outcome, error) {
	e, idx, err := s.findShift(name, ref)
	if err != nil {
		return Outcome{}, err
	}
	removed, err := e.RemoveShift(idx)
	if err != nil {
		return Outcome{}, err
	}

	log.WithFields(log.Fields{"employee": e.Name, "shift": removed.ID}).Info("shift deleted")
	return s.commit(changed("shift #%d %s of %s deleted", idx+1, removed, e.Name))
}

func (s *Service) findShift(name, ref string) (*roster.Employee, int, error) {
	e, err := s.state.Employees.Get(name)
	if err != nil {
		return nil, 0, err
	}
	idx, err := e.FindShift(ref)
	if err != nil {
		return nil, 0, err
	}
	return e, idx, nil
}

// ImportShifts reads a CSV of employee,date,entry,exit rows. Every row is
// checked before any shift is added; one bad row rejects the whole file.
func (s *Service) ImportShifts(r io.Reader) (Outcome, error) {
	records, err := report.ReadShiftsCSV(r)
	if err != nil {
		return Outcome{}, apperr.Invalid("csv", "%v", err)
	}
	if len(records) == 0 {
		return Outcome{}, apperr.Invalid("csv", "no shifts in file")
	}

	type pending struct {
		emp *roster.Employee
		sh  shift.Shift
	}
	batch := make([]pending, 0, len(records))
	for i, rec := range records {
		line := i + 2 // header is line 1
		e, err := s.state.Employees.Get(strings.TrimSpace(rec.Employee))
		if err != nil {
			return Outcome{}, fmt.Errorf("line %d: %w", line, err)
		}
		sh, err := rec.Shift()
		if err != nil {
			return Outcome{}, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, pending{emp: e, sh: sh})
	}

	for _, p := range batch {
		p.emp.AddShift(p.sh)
	}

	log.WithField("shifts", len(batch)).Info("shifts imported")
	return s.commit(changed("%d shifts imported", len(batch)))
}
