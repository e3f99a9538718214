package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recargos/internal/app"
	"github.com/recargos/internal/config"
)

var (
	cfg *config.Config
	svc *app.Service
)

var rootCmd = &cobra.Command{
	Use:   "recargos",
	Short: "Shift surcharge calculator",
	Long: `Recargos keeps a roster of employees and their shifts and computes the
overtime, night and Sunday/holiday surcharges owed under Colombian labor law.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		group := topLevel(cmd)
		if group == "completion" {
			return nil
		}

		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := setupLogging(cmd, cfg); err != nil {
			return err
		}
		if group == "config" {
			return nil
		}

		svc, err = app.Open(cfg)
		return err
	},
}

// topLevel names the command group cmd belongs to ("shift" for "shift add").
func topLevel(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// loadConfig reads the config file and layers the global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	c, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("data") {
		c.DataPath, _ = cmd.Flags().GetString("data")
	}
	if cmd.Flags().Changed("storage") {
		v, _ := cmd.Flags().GetString("storage")
		c.Storage = strings.ToLower(strings.TrimSpace(v))
	}
	if cmd.Flags().Changed("empty-calendar") {
		empty, _ := cmd.Flags().GetBool("empty-calendar")
		c.PreloadHolidays = !empty
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setupLogging(cmd *cobra.Command, c *config.Config) error {
	level, err := c.Level()
	if err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)
	return nil
}

func printOutcome(out app.Outcome) {
	if out.Message != "" {
		fmt.Println(out.Message)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.recargos.yaml)")
	rootCmd.PersistentFlags().String("data", "", "Data file, overrides the config")
	rootCmd.PersistentFlags().String("storage", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().Bool("empty-calendar", false, "Start new data files without the 2025 holidays")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(holidayCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// run executes the command line and always closes the service, including
// when the command failed.
func run() error {
	err := rootCmd.Execute()
	if cerr := closeService(); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error:", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}

func closeService() error {
	if svc == nil {
		return nil
	}
	err := svc.Close()
	svc = nil
	return err
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
