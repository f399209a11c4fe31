package cmd

import (
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Base income: %s", cli.FormatCurrency(config.BaseIncome(cfg)))
	if config.BaseIncome(cfg) != cfg.General.BaseIncome {
		fmt.Print("  (from FINFRENZY_BASE_INCOME)")
	}
	fmt.Println()
	fmt.Printf("    Database:    %s\n", config.DBPath(cfg))
	fmt.Println()

	fmt.Println("  [Preferences]")
	fmt.Printf("    Haptics:       %v\n", cfg.Preferences.Haptics)
	fmt.Printf("    Notifications: %v\n", cfg.Preferences.Notifications)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finfrenzy setup` to reconfigure.")
	return nil
}
