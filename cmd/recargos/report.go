package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recargos/internal/report"
	"github.com/recargos/internal/surcharge"
	"github.com/recargos/internal/visualization"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"r"},
	Short:   "Show surcharge reports",
}

var reportEmployeeCmd = &cobra.Command{
	Use:   "employee <name>",
	Short: "Per-shift and total surcharges for one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rangeFlags(cmd)
		if err != nil {
			return err
		}
		e, sum, err := svc.EmployeeSummary(args[0], r)
		if err != nil {
			return err
		}
		report.Employee(os.Stdout, e, sum)
		return nil
	},
}

var reportConsolidatedCmd = &cobra.Command{
	Use:     "consolidated",
	Aliases: []string{"all"},
	Short:   "Surcharges for every employee over a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := consolidated(cmd)
		if err != nil {
			return err
		}
		report.Consolidated(os.Stdout, c)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the consolidated report",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export category totals as CSV",
	Long:  `Export one row per employee and category plus totals. Writes to stdout unless --output is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := consolidated(cmd)
		if err != nil {
			return err
		}
		return writeOutput(cmd, func(w io.Writer) error {
			return report.WriteCSV(w, c)
		})
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export the consolidated report as a PDF statement",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := consolidated(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("output")
		if err := report.WritePDF(path, c, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart hours per category",
	Long: `Render the consolidated hours per category as an SVG bar chart, or with
--html as a standalone page with one chart per employee.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := consolidated(cmd)
		if err != nil {
			return err
		}
		viz := visualization.New()
		html, _ := cmd.Flags().GetBool("html")
		return writeOutput(cmd, func(w io.Writer) error {
			var out string
			if html {
				out = viz.GenerateHTMLReport(c, time.Now())
			} else {
				out = viz.GenerateCategorySVG("Hours by category ("+c.Range.String()+")", c.Hours)
			}
			_, err := io.WriteString(w, out)
			return err
		})
	},
}

// consolidated runs the consolidated calculation selected by --employee,
// --from and --to.
func consolidated(cmd *cobra.Command) (surcharge.Consolidated, error) {
	r, err := rangeFlags(cmd)
	if err != nil {
		return surcharge.Consolidated{}, err
	}
	names, _ := cmd.Flags().GetStringSlice("employee")
	return svc.Consolidated(names, r)
}

// writeOutput sends write to --output, or stdout when it is empty.
func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", path)
	return nil
}

func addSelectionFlags(cmd *cobra.Command) {
	addRangeFlags(cmd)
	cmd.Flags().StringSliceP("employee", "e", nil, "Only these employees (repeat or comma-separate)")
}

func init() {
	reportCmd.AddCommand(reportEmployeeCmd)
	reportCmd.AddCommand(reportConsolidatedCmd)
	addRangeFlags(reportEmployeeCmd)
	addSelectionFlags(reportConsolidatedCmd)

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportPDFCmd)
	addSelectionFlags(exportCSVCmd)
	addSelectionFlags(exportPDFCmd)
	exportCSVCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	exportPDFCmd.Flags().StringP("output", "o", "recargos.pdf", "Output file")

	addSelectionFlags(chartCmd)
	chartCmd.Flags().Bool("html", false, "Render an HTML page instead of a single SVG")
	chartCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
}
