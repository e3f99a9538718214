package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/rates"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
)

// SQLiteStore keeps the state in a SQLite database. Every Save rewrites the
// tables inside one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (d *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			name TEXT PRIMARY KEY,
			monthly_salary TEXT NOT NULL,
			standard_daily_hours INTEGER NOT NULL,
			contract_type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shifts (
			employee TEXT NOT NULL,
			position INTEGER NOT NULL,
			id TEXT,
			date TEXT NOT NULL,
			entry_time TEXT NOT NULL,
			exit_time TEXT NOT NULL,
			PRIMARY KEY (employee, position)
		)`,
		`CREATE TABLE IF NOT EXISTS holidays (
			date TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS rates (
			symbol TEXT PRIMARY KEY,
			multiplier REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

func (d *SQLiteStore) Close() error {
	return d.db.Close()
}

func (d *SQLiteStore) Load() (*State, error) {
	tbl, found, err := d.loadRates()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmpty
	}

	st := &State{Rates: tbl}
	if st.Calendar, err = d.loadHolidays(); err != nil {
		return nil, err
	}
	if st.Employees, err = d.loadEmployees(); err != nil {
		return nil, err
	}
	if err := st.validate(); err != nil {
		return nil, fmt.Errorf("invalid data in %s: %w", d.path, err)
	}

	log.WithFields(log.Fields{
		"path":      d.path,
		"employees": st.Employees.Len(),
		"holidays":  st.Calendar.Len(),
	}).Debug("state loaded")
	return st, nil
}

func (d *SQLiteStore) loadRates() (rates.Table, bool, error) {
	tbl := rates.Default()
	rows, err := d.db.Query(`SELECT symbol, multiplier FROM rates`)
	if err != nil {
		return tbl, false, err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var symbol string
		var multiplier float64
		if err := rows.Scan(&symbol, &multiplier); err != nil {
			return tbl, false, err
		}
		s, err := rates.ParseSymbol(symbol)
		if err != nil {
			return tbl, false, err
		}
		tbl, err = tbl.With(s, multiplier)
		if err != nil {
			return tbl, false, err
		}
		found = true
	}
	return tbl, found, rows.Err()
}

func (d *SQLiteStore) loadHolidays() (*calendar.Calendar, error) {
	rows, err := d.db.Query(`SELECT date FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []calendar.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		day, err := calendar.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return calendar.New(dates...), nil
}

func (d *SQLiteStore) loadEmployees() (*roster.Roster, error) {
	rows, err := d.db.Query(
		`SELECT name, monthly_salary, standard_daily_hours, contract_type
		 FROM employees ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}

	r := roster.New()
	var emps []*roster.Employee
	for rows.Next() {
		var e roster.Employee
		var salary string
		if err := rows.Scan(&e.Name, &salary, &e.StandardDailyHours, &e.ContractType); err != nil {
			rows.Close()
			return nil, err
		}
		if e.MonthlySalary, err = decimal.NewFromString(salary); err != nil {
			rows.Close()
			return nil, fmt.Errorf("employee %q: %w", e.Name, err)
		}
		emps = append(emps, &e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range emps {
		if e.Shifts, err = d.loadShifts(e.Name); err != nil {
			return nil, err
		}
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (d *SQLiteStore) loadShifts(employee string) ([]shift.Shift, error) {
	rows, err := d.db.Query(
		`SELECT id, date, entry_time, exit_time
		 FROM shifts WHERE employee = ? ORDER BY position ASC`,
		employee,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []shift.Shift{}
	for rows.Next() {
		var id sql.NullString
		var date, entry, exit string
		if err := rows.Scan(&id, &date, &entry, &exit); err != nil {
			return nil, err
		}
		s := shift.Shift{ID: id.String}
		if s.Date, err = calendar.ParseDate(date); err != nil {
			return nil, err
		}
		if s.Entry, err = shift.ParseClock(entry); err != nil {
			return nil, err
		}
		if s.Exit, err = shift.ParseClock(exit); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (d *SQLiteStore) Save(st *State) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	if err := saveTx(tx, st); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.WithField("path", d.path).Debug("state saved")
	return nil
}

func saveTx(tx *sql.Tx, st *State) error {
	for _, table := range []string{"shifts", "employees", "holidays", "rates"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, s := range rates.Symbols() {
		if _, err := tx.Exec(`INSERT INTO rates (symbol, multiplier) VALUES (?, ?)`, string(s), st.Rates.Get(s)); err != nil {
			return err
		}
	}

	for _, day := range st.Calendar.Dates() {
		if _, err := tx.Exec(`INSERT INTO holidays (date) VALUES (?)`, day.String()); err != nil {
			return err
		}
	}

	for _, e := range st.Employees.All() {
		if _, err := tx.Exec(
			`INSERT INTO employees (name, monthly_salary, standard_daily_hours, contract_type)
			 VALUES (?, ?, ?, ?)`,
			e.Name,
			e.MonthlySalary.String(),
			e.StandardDailyHours,
			e.ContractType,
		); err != nil {
			return err
		}
		for i, s := range e.Shifts {
			if _, err := tx.Exec(
				`INSERT INTO shifts (employee, position, id, date, entry_time, exit_time)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				e.Name, i, s.ID, s.Date.String(), s.Entry.String(), s.Exit.String(),
			); err != nil {
				return err
			}
		}
	}
	return nil
}
