// Package app is the boundary between the CLI and the core: it loads the
// whole state, applies one operation and saves the whole state back.
package app

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/archive"
	"github.com/recargos/internal/classify"
	"github.com/recargos/internal/config"
	"github.com/recargos/internal/storage"
	"github.com/recargos/internal/surcharge"
)

// Outcome reports what a mutation did. Changed is false for no-ops such as
// adding a holiday that is already registered.
type Outcome struct {
	Changed bool
	Message string
}

func changed(format string, args ...any) Outcome {
	return Outcome{Changed: true, Message: fmt.Sprintf(format, args...)}
}

type Service struct {
	store       storage.Store
	state       *storage.State
	cache       *classify.Cache
	historyPath string
	now         func() time.Time
}

// Open connects to the configured store and loads its state. A store that has
// never been saved starts from a fresh state.
func Open(cfg *config.Config) (*Service, error) {
	store, err := storage.Open(cfg.Storage, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Load()
	if errors.Is(err, storage.ErrEmpty) {
		log.WithField("path", cfg.DataPath).Info("no saved data, starting fresh")
		st, err = storage.NewState(cfg.PreloadHolidays), nil
	}
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load %s: %w", cfg.DataPath, err)
	}

	svc, err := New(store, st, cfg.CacheSize, cfg.HistoryPath)
	if err != nil {
		store.Close()
		return nil, err
	}
	return svc, nil
}

// New wires a service around an already loaded state.
func New(store storage.Store, st *storage.State, cacheSize int, historyPath string) (*Service, error) {
	cache, err := classify.NewCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:       store,
		state:       st,
		cache:       cache,
		historyPath: historyPath,
		now:         time.Now,
	}, nil
}

func (s *Service) Close() error {
	return s.store.Close()
}

// State exposes the loaded state for read-only use.
func (s *Service) State() *storage.State {
	return s.state
}

func (s *Service) save() error {
	if err := s.store.Save(s.state); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// commit saves and returns out, or the save error.
func (s *Service) commit(out Outcome) (Outcome, error) {
	if err := s.save(); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Calculator prices against the current rate table and calendar.
func (s *Service) Calculator() *surcharge.Calculator {
	return surcharge.New(s.state.Rates, s.state.Calendar, s.cache)
}

func (s *Service) Archiver() *archive.Archiver {
	return archive.New(s.state.Employees, s.Calculator(), s.historyPath)
}

func (s *Service) HistoryPath() string {
	return s.historyPath
}
