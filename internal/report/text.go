// Package report renders surcharge results as text, CSV and PDF.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/recargos/internal/roster"
	"github.com/recargos/internal/surcharge"
)

// Money formats an amount as "$1,234.56", or "-$1,234.56" when negative.
func Money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Hours formats minutes as fractional hours, "2.50h".
func Hours(minutes int) string {
	return fmt.Sprintf("%.2fh", float64(minutes)/60)
}

func writeLines(w io.Writer, indent string, lines []surcharge.Line) {
	if len(lines) == 0 {
		fmt.Fprintf(w, "%sNo hours recorded.\n", indent)
		return
	}
	width := 0
	for _, l := range lines {
		if n := len([]rune(l.Category.Label())); n > width {
			width = n
		}
	}
	for _, l := range lines {
		label := l.Category.Label()
		pad := strings.Repeat(" ", width-len([]rune(label)))
		fmt.Fprintf(w, "%s%s%s  %8s  surcharge %s\n", indent, label, pad, Hours(l.Minutes), Money(l.Surcharge))
	}
}

func writeTotals(w io.Writer, indent string, m surcharge.Money, surchargedMinutes int) {
	fmt.Fprintf(w, "%sGross total:          %s\n", indent, Money(m.GrossTotal))
	fmt.Fprintf(w, "%sSurcharge total:      %s\n", indent, Money(m.SurchargeTotal))
	fmt.Fprintf(w, "%sHours with surcharge: %s\n", indent, Hours(surchargedMinutes))
}

// Employee writes the per-employee report: each shift with its buckets, then
// the summed buckets and totals.
func Employee(w io.Writer, emp *roster.Employee, sum surcharge.Summary) {
	fmt.Fprintf(w, "Employee: %s\n", emp.Name)
	fmt.Fprintf(w, "Monthly salary: %s | Hourly rate: %s | Daily hours: %d | Contract: %s\n",
		Money(emp.MonthlySalary), Money(sum.HourlyRate), emp.StandardDailyHours, emp.ContractType)

	if len(sum.Shifts) == 0 {
		fmt.Fprintln(w, "\nNo shifts recorded.")
		return
	}

	for i, res := range sum.Shifts {
		fmt.Fprintf(w, "\n%d. %s  [%s]  %s\n", i+1, res.Shift, res.Shift.ShortID(), Hours(res.Shift.Minutes()))
		writeLines(w, "   ", res.Lines())
		fmt.Fprintf(w, "   Gross: %s | Surcharge: %s\n", Money(res.GrossTotal), Money(res.SurchargeTotal))
	}

	fmt.Fprintln(w, "\nTotals")
	writeLines(w, "  ", sum.Lines())
	writeTotals(w, "  ", sum.Money, sum.SurchargedMinutes())
}

// Consolidated writes one block per employee and the grand totals.
func Consolidated(w io.Writer, c surcharge.Consolidated) {
	fmt.Fprintf(w, "Consolidated report (%s)\n", c.Range.String())

	if len(c.Employees) == 0 {
		fmt.Fprintln(w, "\nNo employees registered.")
		return
	}

	for _, sum := range c.Employees {
		fmt.Fprintf(w, "\n%s (%d shifts)\n", sum.Employee, len(sum.Shifts))
		writeLines(w, "  ", sum.Lines())
		writeTotals(w, "  ", sum.Money, sum.SurchargedMinutes())
	}

	fmt.Fprintln(w, "\nAll employees")
	writeLines(w, "  ", c.Lines())
	writeTotals(w, "  ", c.Money, c.SurchargedMinutes())
}
