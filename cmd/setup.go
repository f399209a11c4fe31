package cmd

import (
	"errors"
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&flagAccessible, "accessible", false, "Use plain prompts suitable for screen readers")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vals := tui.NewSetupValues(cfg)
	err = tui.NewSetupForm(&vals).WithAccessible(flagAccessible).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println("  Setup cancelled. Nothing was saved.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	vals.Apply(&cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `finfrenzy setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
