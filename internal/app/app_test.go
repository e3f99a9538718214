package app

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recargos/internal/apperr"
	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/config"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/storage"
	"github.com/recargos/internal/surcharge"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataPath:        filepath.Join(dir, "data."+backend),
		Storage:         backend,
		HistoryPath:     filepath.Join(dir, "history"),
		LogLevel:        "warn",
		PreloadHolidays: false,
		CacheSize:       32,
	}
}

func open(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	svc, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestEmployeeLifecycle(t *testing.T) {
	for _, backend := range []string{storage.BackendJSON, storage.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			svc := open(t, cfg)

			out, err := svc.AddEmployee("Ana", "1,423,400", 8, "")
			require.NoError(t, err)
			assert.True(t, out.Changed)
			assert.Contains(t, out.Message, "6470.00")

			_, err = svc.AddShift("Ana", "2025-03-02", "08:00", "16:00")
			require.NoError(t, err)
			_, err = svc.AddShift("Ana", "2025-03-03", "18:00", "06:00")
			require.NoError(t, err)

			hours := 6
			_, err = svc.EditEmployee("Ana", roster.Edit{StandardDailyHours: &hours})
			require.NoError(t, err)
			require.NoError(t, svc.Close())

			// Everything survives a reload.
			again := open(t, cfg)
			ana, err := again.Employee("Ana")
			require.NoError(t, err)
			assert.Equal(t, 6, ana.StandardDailyHours)
			require.Len(t, ana.Shifts, 2)
			assert.True(t, ana.Shifts[1].CrossesMidnight())

			out, err = again.DeleteEmployee("Ana")
			require.NoError(t, err)
			assert.Contains(t, out.Message, "2 shifts")
			assert.Empty(t, again.Employees())
		})
	}
}

func TestValidationLeavesStateUntouched(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))
	_, err := svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
	}{
		{"duplicate employee", func() error { _, err := svc.AddEmployee("Ana", "1000", 8, ""); return err }},
		{"bad salary", func() error { _, err := svc.AddEmployee("Luis", "lots", 8, ""); return err }},
		{"zero salary", func() error { _, err := svc.AddEmployee("Luis", "0", 8, ""); return err }},
		{"bad hours", func() error { _, err := svc.AddEmployee("Luis", "1000", 0, ""); return err }},
		{"bad shift date", func() error { _, err := svc.AddShift("Ana", "2025-02-30", "08:00", "16:00"); return err }},
		{"bad shift time", func() error { _, err := svc.AddShift("Ana", "2025-03-02", "25:00", "16:00"); return err }},
		{"rate out of range", func() error { _, err := svc.UpdateRates(rates.Total().ExtraDay(400)); return err }},
		{"rate not a number", func() error { _, err := svc.UpdateRates(rates.Total().ExtraDay(math.NaN())); return err }},
		{"bad holiday", func() error { _, err := svc.AddHoliday("2025/01/01"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}

	assert.Len(t, svc.Employees(), 1)
	ana, err := svc.Employee("Ana")
	require.NoError(t, err)
	assert.Empty(t, ana.Shifts)
	assert.Equal(t, rates.Default(), svc.Rates())
	assert.Empty(t, svc.Holidays())
}

func TestNotFound(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))
	_, err := svc.AddShift("Nadie", "2025-03-02", "08:00", "16:00")
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.DeleteShift("Ana", "1")
	assert.True(t, apperr.IsNotFound(err))
	_, err = svc.EditShift("Ana", "abc", ShiftEdit{Entry: "09:00"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestShiftEditAndDelete(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))
	_, err := svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.AddShift("Ana", "2025-03-02", "08:00", "16:00")
	require.NoError(t, err)
	_, err = svc.AddShift("Ana", "2025-03-03", "08:00", "16:00")
	require.NoError(t, err)

	ana, _ := svc.Employee("Ana")
	id := ana.Shifts[1].ID

	_, err = svc.EditShift("Ana", "2", ShiftEdit{Exit: "18:30"})
	require.NoError(t, err)
	assert.Equal(t, "18:30", ana.Shifts[1].Exit.String())
	assert.Equal(t, "08:00", ana.Shifts[1].Entry.String())
	assert.Equal(t, id, ana.Shifts[1].ID)

	_, err = svc.EditShift("Ana", "2", ShiftEdit{})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.DeleteShift("Ana", id[:8])
	require.NoError(t, err)
	require.Len(t, ana.Shifts, 1)

	r, err := surcharge.NewRange("2025-03-01", "2025-03-02")
	require.NoError(t, err)
	positions, shifts, err := svc.Shifts("Ana", r)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, positions)
	assert.Len(t, shifts, 1)
}

func TestImportShifts(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))
	_, err := svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.AddEmployee("Luis", "1423400", 8, "")
	require.NoError(t, err)

	bad := "employee,date,entry,exit\nAna,2025-03-02,08:00,16:00\nPedro,2025-03-02,08:00,16:00\n"
	_, err = svc.ImportShifts(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	ana, _ := svc.Employee("Ana")
	assert.Empty(t, ana.Shifts)

	good := "employee,date,entry,exit\nAna,2025-03-02,08:00,16:00\nLuis,2025-03-03,22:00,06:00\nAna,2025-03-04,08:00,16:00\n"
	out, err := svc.ImportShifts(strings.NewReader(good))
	require.NoError(t, err)
	assert.Equal(t, "3 shifts imported", out.Message)
	assert.Len(t, ana.Shifts, 2)
}

func TestHolidays(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))

	out, err := svc.AddHoliday("2025-12-25")
	require.NoError(t, err)
	assert.True(t, out.Changed)

	out, err = svc.AddHoliday("2025-12-25")
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.NotEmpty(t, out.Message)

	out, err = svc.RemoveHoliday("2025-01-01")
	require.NoError(t, err)
	assert.False(t, out.Changed)

	assert.Equal(t, []calendar.Date{calendar.NewDate(2025, time.December, 25)}, svc.Holidays())
}

func TestPreloadedHolidays(t *testing.T) {
	cfg := testConfig(t, storage.BackendJSON)
	cfg.PreloadHolidays = true
	svc := open(t, cfg)
	assert.Len(t, svc.Holidays(), len(calendar.Colombia2025()))
}

func TestRatesUpdateAndReset(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))

	out, err := svc.ResetRates()
	require.NoError(t, err)
	assert.False(t, out.Changed)

	out, err = svc.UpdateRates(rates.Additional().OrdNight(40))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, 1.4, svc.Rates().OrdNight)

	out, err = svc.ResetRates()
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, rates.Default(), svc.Rates())
}

func TestReports(t *testing.T) {
	svc := open(t, testConfig(t, storage.BackendJSON))
	_, err := svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.AddEmployee("Luis", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.AddShift("Ana", "2025-03-02", "08:00", "16:00")
	require.NoError(t, err)
	_, err = svc.AddShift("Luis", "2025-04-06", "08:00", "16:00")
	require.NoError(t, err)

	_, sum, err := svc.EmployeeSummary("Ana", nil)
	require.NoError(t, err)
	assert.Equal(t, "41408.00", sum.SurchargeTotal.StringFixed(2))

	r, err := surcharge.NewRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	c, err := svc.Consolidated(nil, r)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ShiftCount())

	c, err = svc.Consolidated([]string{"Luis", "Luis"}, nil)
	require.NoError(t, err)
	require.Len(t, c.Employees, 1)
	assert.Equal(t, "Luis", c.Employees[0].Employee)

	_, err = svc.Consolidated([]string{"Nadie"}, nil)
	assert.True(t, apperr.IsNotFound(err))

	_, err = surcharge.NewRange("2025-03-01", "")
	assert.True(t, errors.Is(err, surcharge.ErrPartialRange))
}

func TestArchive(t *testing.T) {
	cfg := testConfig(t, storage.BackendJSON)
	svc := open(t, cfg)
	svc.now = func() time.Time { return time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC) }

	_, err := svc.AddEmployee("Ana", "1423400", 8, "")
	require.NoError(t, err)
	_, err = svc.AddShift("Ana", "2025-03-02", "08:00", "16:00")
	require.NoError(t, err)
	_, err = svc.AddShift("Ana", "2025-04-06", "08:00", "16:00")
	require.NoError(t, err)

	out, err := svc.ArchiveMonth(2025, time.March, false)
	require.NoError(t, err)
	assert.Contains(t, out.Message, "2025-03.md")

	archived, err := svc.AutoArchive(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-04.md"}, archived)

	// April's shift was cleaned and the change was saved.
	require.NoError(t, svc.Close())
	again := open(t, cfg)
	ana, err := again.Employee("Ana")
	require.NoError(t, err)
	require.Len(t, ana.Shifts, 1)
	assert.Equal(t, time.March, ana.Shifts[0].Date.Month)
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.March, m)

	_, _, err = ParseMonth("March")
	assert.True(t, apperr.IsValidation(err))
}

// failingStore loads nothing and refuses every save.
type failingStore struct{}

func (failingStore) Load() (*storage.State, error) { return nil, storage.ErrEmpty }
func (failingStore) Save(*storage.State) error      { return errors.New("disk full") }
func (failingStore) Close() error                   { return nil }

func TestRatesKeptWhenSaveFails(t *testing.T) {
	svc, err := New(failingStore{}, storage.NewState(false), 8, t.TempDir())
	require.NoError(t, err)

	_, err = svc.UpdateRates(rates.Total().ExtraDay(150))
	require.Error(t, err)
	assert.Equal(t, rates.Default(), svc.Rates())

	svc.State().Rates.OrdNight = 1.5
	_, err = svc.ResetRates()
	require.Error(t, err)
	assert.Equal(t, 1.5, svc.Rates().OrdNight)
}
