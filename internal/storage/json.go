package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
)

type document struct {
	Employees *roster.Roster  `json:"employees"`
	Holidays  []calendar.Date `json:"holidays"`
	RateTable rates.Table     `json:"rateTable"`
}

// JSONStore keeps the state in a single JSON file.
type JSONStore struct {
	path string
}

func NewJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (j *JSONStore) Path() string { return j.path }

func (j *JSONStore) Load() (*State, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, err
	}

	// Rates missing from the file keep their statutory value.
	doc := document{RateTable: rates.Default()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", j.path, err)
	}
	if doc.Employees == nil {
		doc.Employees = roster.New()
	}

	st := &State{
		Employees: doc.Employees,
		Calendar:  calendar.New(doc.Holidays...),
		Rates:     doc.RateTable,
	}
	if err := st.validate(); err != nil {
		return nil, fmt.Errorf("invalid data in %s: %w", j.path, err)
	}

	log.WithFields(log.Fields{
		"path":      j.path,
		"employees": st.Employees.Len(),
		"holidays":  st.Calendar.Len(),
	}).Debug("state loaded")
	return st, nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so a failed write never leaves a truncated file behind.
func (j *JSONStore) Save(s *State) error {
	doc := document{
		Employees: s.Employees,
		Holidays:  s.Calendar.Dates(),
		RateTable: s.Rates,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".recargos-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", j.path, err)
	}

	log.WithField("path", j.path).Debug("state saved")
	return nil
}

func (j *JSONStore) Close() error { return nil }
