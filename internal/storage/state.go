// Package storage persists the full application state: employees with their
// shifts, the holiday calendar and the rate table.
package storage

import (
	"errors"
	"fmt"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
)

// ErrEmpty is returned by Load when nothing has been saved yet.
var ErrEmpty = errors.New("no saved state")

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// State is everything the program persists. It is loaded and saved whole.
type State struct {
	Employees *roster.Roster
	Calendar  *calendar.Calendar
	Rates     rates.Table
}

// NewState returns an empty state with the statutory rates. With preload the
// calendar starts with the default holiday list.
func NewState(preload bool) *State {
	cal := calendar.New()
	if preload {
		cal = calendar.Default()
	}
	return &State{
		Employees: roster.New(),
		Calendar:  cal,
		Rates:     rates.Default(),
	}
}

// Store loads and saves State. Save is all-or-nothing.
type Store interface {
	Load() (*State, error)
	Save(s *State) error
	Close() error
}

// Open returns the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSON(path), nil
	case BackendSQLite:
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

func (s *State) validate() error {
	if err := s.Rates.Validate(); err != nil {
		return fmt.Errorf("rate table: %w", err)
	}
	return nil
}
