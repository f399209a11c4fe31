package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/tui"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the dashboard runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	b, err := openBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	// The dashboard owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	theme.SetActive(b.cfg.Appearance.Theme)

	// Card backgrounds need a color profile even when detection fails.
	lipgloss.SetColorProfile(termenv.TrueColor)

	opts := tui.Options{
		Config:    b.cfg,
		Progress:  b.progress,
		Logger:    newLogger(logOut),
		NeedSetup: !config.Exists(),
	}
	if b.db != nil {
		opts.History = b.db
	}

	app, err := tui.NewApp(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}

	return nil
}
