package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recargos/internal/config"
	"github.com/recargos/internal/rates"
)

var holidayCmd = &cobra.Command{
	Use:     "holiday",
	Aliases: []string{"hol"},
	Short:   "Manage the holiday calendar",
}

var holidayAddCmd = &cobra.Command{
	Use:   "add <YYYY-MM-DD>...",
	Short: "Register holidays",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range args {
			out, err := svc.AddHoliday(d)
			if err != nil {
				return err
			}
			printOutcome(out)
		}
		return nil
	},
}

var holidayRemoveCmd = &cobra.Command{
	Use:     "remove <YYYY-MM-DD>...",
	Aliases: []string{"rm"},
	Short:   "Unregister holidays",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range args {
			out, err := svc.RemoveHoliday(d)
			if err != nil {
				return err
			}
			printOutcome(out)
		}
		return nil
	},
}

var holidayListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List holidays",
	RunE: func(cmd *cobra.Command, args []string) error {
		dates := svc.Holidays()
		if len(dates) == 0 {
			fmt.Println("No holidays registered.")
			return nil
		}
		for _, d := range dates {
			fmt.Printf("%s %s\n", d, d.Weekday().String()[:3])
		}
		return nil
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show or change surcharge multipliers",
}

var ratesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the rate table",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := svc.Rates()
		fmt.Printf("%-22s %-42s %s\n", "SYMBOL", "APPLIES TO", "MULTIPLIER")
		for _, s := range rates.Symbols() {
			fmt.Printf("%-22s %-42s %.2f (+%.0f%%)\n", s, s.Describe(), t.Get(s), (t.Get(s)-1)*100)
		}
		fmt.Println("Ordinary weekday day hours are always paid at 1.00.")
		return nil
	},
}

var ratesSetCmd = &cobra.Command{
	Use:   "set <SYMBOL=PERCENT>...",
	Short: "Change multipliers",
	Long: `Change one or more multipliers in a single batch. Percentages are totals
by default (125 means 1.25); with --additional they are added to the base hour
(25 means 1.25). If any value is out of range nothing changes.

Examples:
  recargos rates set EXTRA_DAY=125 EXTRA_NIGHT=175
  recargos rates set --additional ORD_NIGHT=35
  recargos rates set --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			if len(args) > 0 {
				return fmt.Errorf("--reset takes no arguments")
			}
			out, err := svc.ResetRates()
			if err != nil {
				return err
			}
			printOutcome(out)
			return nil
		}

		u := rates.Total()
		if additional, _ := cmd.Flags().GetBool("additional"); additional {
			u = rates.Additional()
		}
		for _, arg := range args {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid rate %q, use SYMBOL=PERCENT", arg)
			}
			s, err := rates.ParseSymbol(name)
			if err != nil {
				return err
			}
			p, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
			if err != nil {
				return fmt.Errorf("invalid percentage for %s: %s", s, value)
			}
			u = u.Set(s, p)
		}

		out, err := svc.UpdateRates(u)
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config file: %s\n", config.Path())
		fmt.Printf("Data: %s (%s) | History: %s\n", cfg.DataPath, cfg.Storage, cfg.HistoryPath)
		fmt.Printf("Log level: %s | Preload holidays: %t | Cache size: %d\n",
			cfg.LogLevel, cfg.PreloadHolidays, cfg.CacheSize)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.Path()
		}
		if force, _ := cmd.Flags().GetBool("force"); !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
		}
		if err := config.SaveFile(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for recargos.

Bash:
  $ source <(recargos completion bash)

Zsh:
  $ recargos completion zsh > "${fpath[1]}/_recargos"

Fish:
  $ recargos completion fish > ~/.config/fish/completions/recargos.fish

PowerShell:
  PS> recargos completion powershell > recargos.ps1
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(os.Stdout)
		}
		return nil
	},
}

func init() {
	holidayCmd.AddCommand(holidayAddCmd)
	holidayCmd.AddCommand(holidayRemoveCmd)
	holidayCmd.AddCommand(holidayListCmd)

	ratesCmd.AddCommand(ratesShowCmd)
	ratesCmd.AddCommand(ratesSetCmd)
	ratesSetCmd.Flags().BoolP("additional", "a", false, "Read percentages as additional to the base hour")
	ratesSetCmd.Flags().Bool("reset", false, "Restore the statutory defaults")

	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}
