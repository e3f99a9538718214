package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recargos/internal/app"
	"github.com/recargos/internal/surcharge"
)

var shiftCmd = &cobra.Command{
	Use:     "shift",
	Aliases: []string{"s"},
	Short:   "Manage shifts",
	Long: `Record shifts as a date plus entry and exit times (HH:MM). An exit at or
before the entry means the shift ends on the next day; equal times mean 24 hours.`,
}

var shiftAddCmd = &cobra.Command{
	Use:   "add <employee> <YYYY-MM-DD> <entry> <exit>",
	Short: "Record a shift",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := svc.AddShift(args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var shiftEditCmd = &cobra.Command{
	Use:   "edit <employee> <position|id>",
	Short: "Change a shift",
	Long:  `Change the date, entry or exit of a shift, addressed by its list position or an ID prefix.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ed app.ShiftEdit
		ed.Date, _ = cmd.Flags().GetString("date")
		ed.Entry, _ = cmd.Flags().GetString("entry")
		ed.Exit, _ = cmd.Flags().GetString("exit")

		out, err := svc.EditShift(args[0], args[1], ed)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var shiftDeleteCmd = &cobra.Command{
	Use:     "delete <employee> <position|id>",
	Aliases: []string{"rm"},
	Short:   "Remove a shift",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := svc.DeleteShift(args[0], args[1])
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var shiftListCmd = &cobra.Command{
	Use:     "list <employee>",
	Aliases: []string{"ls"},
	Short:   "List an employee's shifts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rangeFlags(cmd)
		if err != nil {
			return err
		}
		positions, shifts, err := svc.Shifts(args[0], r)
		if err != nil {
			return err
		}
		if len(shifts) == 0 {
			fmt.Println("No shifts recorded.")
			return nil
		}
		for i, s := range shifts {
			fmt.Printf("#%-3d [%s] %s  %.2fh\n", positions[i], s.ShortID(), s, s.Duration().Hours())
		}
		return nil
	},
}

var shiftImportCmd = &cobra.Command{
	Use:   "import <file.csv|->",
	Short: "Import shifts from CSV",
	Long: `Import shifts from a CSV file with the header employee,date,entry,exit.
Every row is checked first; a single bad row rejects the whole file. Use - for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		out, err := svc.ImportShifts(in)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

// addRangeFlags registers --from/--to on cmd.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "First date (YYYY-MM-DD), requires --to")
	cmd.Flags().String("to", "", "Last date (YYYY-MM-DD), requires --from")
}

// rangeFlags reads --from/--to. Neither means all dates.
func rangeFlags(cmd *cobra.Command) (*surcharge.Range, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return surcharge.NewRange(from, to)
}

func init() {
	shiftCmd.AddCommand(shiftAddCmd)
	shiftCmd.AddCommand(shiftEditCmd)
	shiftCmd.AddCommand(shiftDeleteCmd)
	shiftCmd.AddCommand(shiftListCmd)
	shiftCmd.AddCommand(shiftImportCmd)

	shiftEditCmd.Flags().StringP("date", "d", "", "New date (YYYY-MM-DD)")
	shiftEditCmd.Flags().StringP("entry", "i", "", "New entry time (HH:MM)")
	shiftEditCmd.Flags().StringP("exit", "o", "", "New exit time (HH:MM)")

	addRangeFlags(shiftListCmd)
}
