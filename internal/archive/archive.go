package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/recargos/internal/calendar"
	"github.com/recargos/internal/report"
	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/shift"
	"github.com/recargos/internal/surcharge"
)

// ErrNoShifts is returned when the requested month has nothing to archive.
var ErrNoShifts = errors.New("no shifts found")

// Archiver writes monthly consolidated reports to markdown
type Archiver struct {
	employees   *roster.Roster
	calc        *surcharge.Calculator
	historyPath string
}

// New creates a new Archiver
func New(employees *roster.Roster, calc *surcharge.Calculator, historyPath string) *Archiver {
	return &Archiver{
		employees:   employees,
		calc:        calc,
		historyPath: historyPath,
	}
}

// FileName is the archive file name for a month, e.g. "2025-03.md".
func FileName(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d.md", year, month)
}

// ArchiveMonth writes the month's report and returns the file path. With
// clean, the archived shifts are removed from the roster afterwards.
func (a *Archiver) ArchiveMonth(year int, month time.Month, clean bool, now time.Time) (string, error) {
	r := surcharge.Month(year, month)
	c := a.calc.Consolidated(a.employees.All(), r)
	if c.ShiftCount() == 0 {
		return "", fmt.Errorf("%w for %s %d", ErrNoShifts, month, year)
	}

	markdown := generateMarkdown(year, month, c, now)

	// Ensure history directory exists
	if err := os.MkdirAll(a.historyPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	filePath := filepath.Join(a.historyPath, FileName(year, month))
	if err := os.WriteFile(filePath, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	if clean {
		removed := a.cleanMonth(r)
		log.WithFields(log.Fields{"month": FileName(year, month), "shifts": removed}).Info("archived shifts removed")
	}

	return filePath, nil
}

func (a *Archiver) cleanMonth(r *surcharge.Range) int {
	removed := 0
	for _, e := range a.employees.All() {
		kept := make([]shift.Shift, 0, len(e.Shifts))
		for _, s := range e.Shifts {
			if r.Contains(s.Date) {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		e.Shifts = kept
	}
	return removed
}

func (a *Archiver) oldestShift() (calendar.Date, bool) {
	var oldest calendar.Date
	found := false
	for _, e := range a.employees.All() {
		for _, s := range e.Shifts {
			if !found || s.Date.Before(oldest) {
				oldest = s.Date
				found = true
			}
		}
	}
	return oldest, found
}

// AutoArchivePastMonths archives all complete months older than now's month
// that have not been archived yet.
func (a *Archiver) AutoArchivePastMonths(clean bool, now time.Time) ([]string, error) {
	oldest, found := a.oldestShift()
	if !found {
		return nil, nil // No shifts
	}

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(oldest.Year, oldest.Month, 1, 0, 0, 0, 0, time.UTC)

	var archived []string
	for ; monthStart.Before(currentMonth); monthStart = monthStart.AddDate(0, 1, 0) {
		filename := FileName(monthStart.Year(), monthStart.Month())

		// Skip if already archived
		if _, err := os.Stat(filepath.Join(a.historyPath, filename)); err == nil {
			continue
		}

		if _, err := a.ArchiveMonth(monthStart.Year(), monthStart.Month(), clean, now); err != nil {
			if errors.Is(err, ErrNoShifts) {
				continue
			}
			return archived, err
		}
		archived = append(archived, filename)
	}

	return archived, nil
}

// ListArchives returns list of archived months
func (a *Archiver) ListArchives() ([]string, error) {
	entries, err := os.ReadDir(a.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var archives []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			archives = append(archives, e.Name())
		}
	}

	sort.Strings(archives)
	return archives, nil
}

// ReadArchive reads a specific month's archive
func (a *Archiver) ReadArchive(year int, month time.Month) (string, error) {
	filename := FileName(year, month)
	data, err := os.ReadFile(filepath.Join(a.historyPath, filename))
	if err != nil {
		return "", fmt.Errorf("archive not found: %s", filename)
	}
	return string(data), nil
}

func generateMarkdown(year int, month time.Month, c surcharge.Consolidated, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s %d\n\n", month, year))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Employees | %d |\n", len(c.Employees)))
	sb.WriteString(fmt.Sprintf("| Shifts | %d |\n", c.ShiftCount()))
	sb.WriteString(fmt.Sprintf("| Hours Worked | %s |\n", report.Hours(c.Hours.Total())))
	sb.WriteString(fmt.Sprintf("| Hours With Surcharge | %s |\n", report.Hours(c.SurchargedMinutes())))
	sb.WriteString(fmt.Sprintf("| Gross Total | %s |\n", report.Money(c.GrossTotal)))
	sb.WriteString(fmt.Sprintf("| Surcharge Total | %s |\n", report.Money(c.SurchargeTotal)))
	sb.WriteString("\n")

	sb.WriteString("## Categories\n\n")
	sb.WriteString("| Category | Hours | Gross | Surcharge |\n")
	sb.WriteString("|----------|-------|-------|-----------|\n")
	for _, l := range c.Lines() {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			l.Category.Label(), report.Hours(l.Minutes), report.Money(l.Gross), report.Money(l.Surcharge)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Employees\n\n")
	sb.WriteString("| Employee | Shifts | Hours | Surcharged | Gross | Surcharge |\n")
	sb.WriteString("|----------|--------|-------|------------|-------|-----------|\n")
	for _, sum := range c.Employees {
		if len(sum.Shifts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s |\n",
			sum.Employee, len(sum.Shifts), report.Hours(sum.Hours.Total()), report.Hours(sum.SurchargedMinutes()),
			report.Money(sum.GrossTotal), report.Money(sum.SurchargeTotal)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Shifts\n\n")
	sb.WriteString("| Employee | Date | Entry | Exit | Hours | Surcharge |\n")
	sb.WriteString("|----------|------|-------|------|-------|-----------|\n")
	for _, sum := range c.Employees {
		for _, res := range sum.Shifts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				sum.Employee, res.Shift.Date, res.Shift.Entry, res.Shift.Exit,
				report.Hours(res.Shift.Minutes()), report.Money(res.SurchargeTotal)))
		}
	}
	sb.WriteString("\n")

	// Footer
	sb.WriteString(fmt.Sprintf("---\n*Archived: %s*\n", now.Format("2006-01-02 15:04")))

	return sb.String()
}
