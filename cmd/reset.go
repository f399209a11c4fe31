package cmd

import (
	"errors"
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset level, achievements, streak and quiz bonus",
	Long: "Clears all stored progress and play history and restores the default\n" +
		"haptics and notification preferences.",
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset all progress?").
			Description("This cannot be undone.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !confirmed {
			fmt.Println("  Reset cancelled.")
			return nil
		}
	}

	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	if err := carryover.ResetProgress(b.progress); err != nil {
		return err
	}
	if b.db != nil {
		if err := b.db.ClearHistory(); err != nil {
			return err
		}
	}

	b.cfg.Preferences = config.DefaultPreferences()
	if err := config.Save(b.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	b.log.Info("progress reset")
	if !flagQuiet {
		fmt.Println("  Progress reset. Level, achievements, streak and quiz bonus cleared.")
	}
	return nil
}
