package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/recargos/internal/surcharge"
)

// WritePDF renders the consolidated statement to path.
func WritePDF(path string, c surcharge.Consolidated, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Surcharge statement", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Surcharge statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", c.Range.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	for _, sum := range c.Employees {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s (%d shifts, hourly rate %s)", sum.Employee, len(sum.Shifts), Money(sum.HourlyRate))))
		pdf.Ln(8)
		table(pdf, sum.Lines())
		totals(pdf, sum.Money, sum.SurchargedMinutes())
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "All employees")
	pdf.Ln(8)
	table(pdf, c.Lines())
	totals(pdf, c.Money, c.SurchargedMinutes())

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func table(pdf *gofpdf.Fpdf, lines []surcharge.Line) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Hours", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Gross", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Surcharge", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(lines) == 0 {
		pdf.CellFormat(185, 6, "No hours recorded.", "", 1, "L", false, 0, "")
		return
	}
	for _, l := range lines {
		pdf.CellFormat(80, 6, l.Category.Label(), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, Hours(l.Minutes), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, Money(l.Gross), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, Money(l.Surcharge), "", 1, "R", false, 0, "")
	}
}

func totals(pdf *gofpdf.Fpdf, m surcharge.Money, surchargedMinutes int) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, Hours(surchargedMinutes), "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, Money(m.GrossTotal), "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, Money(m.SurchargeTotal), "T", 1, "R", false, 0, "")
}
