package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recargos/internal/app"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive months to markdown",
	Long: `Write monthly consolidated reports as markdown files under the history
directory (~/.recargos/history by default). With --clean the archived shifts are
removed from the data file.`,
}

var archiveAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Archive all past months",
	Long:  `Archive every complete month before the current one that has shifts and no archive yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clean, _ := cmd.Flags().GetBool("clean")
		archived, err := svc.AutoArchive(clean)
		if err != nil {
			return err
		}

		if len(archived) == 0 {
			fmt.Println("No months to archive (current month or already archived)")
			return nil
		}

		fmt.Printf("Archived %d month(s) to %s:\n", len(archived), svc.HistoryPath())
		for _, f := range archived {
			fmt.Printf("  - %s\n", f)
		}
		return nil
	},
}

var archiveMonthCmd = &cobra.Command{
	Use:   "month <YYYY-MM>",
	Short: "Archive a specific month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := app.ParseMonth(args[0])
		if err != nil {
			return err
		}

		clean, _ := cmd.Flags().GetBool("clean")
		out, err := svc.ArchiveMonth(year, month, clean)
		if err != nil {
			return err
		}
		printOutcome(out)
		if clean {
			fmt.Println("Shifts of this month removed from the data file")
		}
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived months",
	RunE: func(cmd *cobra.Command, args []string) error {
		archives, err := svc.Archiver().ListArchives()
		if err != nil {
			return err
		}

		if len(archives) == 0 {
			fmt.Println("No archives found")
			return nil
		}

		fmt.Println("Archived months:")
		for _, a := range archives {
			fmt.Printf("  %s\n", a)
		}
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <YYYY-MM>",
	Short: "Print an archived month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := app.ParseMonth(args[0])
		if err != nil {
			return err
		}

		content, err := svc.Archiver().ReadArchive(year, month)
		if err != nil {
			return err
		}

		fmt.Println(content)
		return nil
	},
}

func init() {
	archiveCmd.AddCommand(archiveAutoCmd)
	archiveCmd.AddCommand(archiveMonthCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)

	archiveAutoCmd.Flags().Bool("clean", false, "Remove archived shifts from the data file")
	archiveMonthCmd.Flags().Bool("clean", false, "Remove archived shifts from the data file")
}
