package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recargos/internal/app"
	"github.com/recargos/internal/report"
	"github.com/recargos/internal/roster"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"emp", "e"},
	Short:   "Manage employees",
}

var employeeAddCmd = &cobra.Command{
	Use:   "add <name> <monthly-salary>",
	Short: "Register an employee",
	Long: `Register an employee with a monthly salary. The hourly rate is the salary
divided by 220. Salaries may use thousands separators (1,423,400).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetInt("hours")
		contract, _ := cmd.Flags().GetString("contract")

		out, err := svc.AddEmployee(args[0], args[1], hours, contract)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var employeeEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Change an employee's data",
	Long:  `Change any of name, salary, daily hours or contract. Only the flags given are updated.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ed roster.Edit
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			ed.Name = &v
		}
		if cmd.Flags().Changed("salary") {
			v, _ := cmd.Flags().GetString("salary")
			amount, err := app.ParseSalary(v)
			if err != nil {
				return err
			}
			ed.MonthlySalary = &amount
		}
		if cmd.Flags().Changed("hours") {
			v, _ := cmd.Flags().GetInt("hours")
			ed.StandardDailyHours = &v
		}
		if cmd.Flags().Changed("contract") {
			v, _ := cmd.Flags().GetString("contract")
			ed.ContractType = &v
		}

		out, err := svc.EditEmployee(args[0], ed)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var employeeDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an employee and all their shifts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			e, err := svc.Employee(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Delete %s and %d shift(s)? This cannot be undone. Use --force to confirm.\n", e.Name, len(e.Shifts))
			return nil
		}

		out, err := svc.DeleteEmployee(args[0])
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var employeeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		emps := svc.Employees()
		if len(emps) == 0 {
			fmt.Println("No employees registered.")
			return nil
		}
		for _, e := range emps {
			fmt.Printf("%-20s salary %s | hourly %s | %dh/day | %s | %d shift(s)\n",
				e.Name, report.Money(e.MonthlySalary), report.Money(e.HourlyRate()),
				e.DailyHours(), e.ContractType, len(e.Shifts))
		}
		return nil
	},
}

func init() {
	employeeCmd.AddCommand(employeeAddCmd)
	employeeCmd.AddCommand(employeeEditCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)
	employeeCmd.AddCommand(employeeListCmd)

	employeeAddCmd.Flags().IntP("hours", "H", 8, "Standard daily hours")
	employeeAddCmd.Flags().StringP("contract", "c", "", "Contract type")

	employeeEditCmd.Flags().StringP("name", "n", "", "New name")
	employeeEditCmd.Flags().StringP("salary", "s", "", "New monthly salary")
	employeeEditCmd.Flags().IntP("hours", "H", 8, "New standard daily hours")
	employeeEditCmd.Flags().StringP("contract", "c", "", "New contract type")

	employeeDeleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
}
