package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/recargos/internal/shift"
	"github.com/recargos/internal/surcharge"
)

// TotalCategory marks the per-employee and grand total rows of a CSV export.
const TotalCategory = "total"

// AllEmployees names the grand total rows.
const AllEmployees = "*"

// Row is one line of the consolidated CSV export.
type Row struct {
	Employee  string  `csv:"employee"`
	Category  string  `csv:"category"`
	Label     string  `csv:"label"`
	Hours     float64 `csv:"hours"`
	Gross     string  `csv:"gross"`
	Surcharge string  `csv:"surcharge"`
}

func rowsFor(name string, lines []surcharge.Line, m surcharge.Money, surchargedMinutes int) []Row {
	rows := make([]Row, 0, len(lines)+1)
	for _, l := range lines {
		rows = append(rows, Row{
			Employee:  name,
			Category:  l.Category.String(),
			Label:     l.Category.Label(),
			Hours:     l.Hours(),
			Gross:     l.Gross.StringFixed(2),
			Surcharge: l.Surcharge.StringFixed(2),
		})
	}
	return append(rows, Row{
		Employee:  name,
		Category:  TotalCategory,
		Label:     "Horas con recargo",
		Hours:     float64(surchargedMinutes) / 60,
		Gross:     m.GrossTotal.StringFixed(2),
		Surcharge: m.SurchargeTotal.StringFixed(2),
	})
}

// Rows flattens c: nonzero buckets then a total row for every employee,
// followed by the grand total under AllEmployees.
func Rows(c surcharge.Consolidated) []Row {
	var rows []Row
	for _, sum := range c.Employees {
		rows = append(rows, rowsFor(sum.Employee, sum.Lines(), sum.Money, sum.SurchargedMinutes())...)
	}
	return append(rows, rowsFor(AllEmployees, c.Lines(), c.Money, c.SurchargedMinutes())...)
}

// WriteCSV writes the consolidated export with a header line.
func WriteCSV(w io.Writer, c surcharge.Consolidated) error {
	rows := Rows(c)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// ShiftRecord is one line of a shift import file.
type ShiftRecord struct {
	Employee string `csv:"employee"`
	Date     string `csv:"date"`
	Entry    string `csv:"entry"`
	Exit     string `csv:"exit"`
}

// Shift parses the record into a shift with a fresh ID.
func (r ShiftRecord) Shift() (shift.Shift, error) {
	return shift.Parse(strings.TrimSpace(r.Date), strings.TrimSpace(r.Entry), strings.TrimSpace(r.Exit))
}

// ReadShiftsCSV reads an import file with the header employee,date,entry,exit.
func ReadShiftsCSV(r io.Reader) ([]ShiftRecord, error) {
	var records []ShiftRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}
