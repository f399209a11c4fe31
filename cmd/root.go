// Package cmd implements the finfrenzy CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagEphemeral bool
	flagQuiet     bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "finfrenzy",
	Short: "Learn budgeting with a money quiz and the 50/30/20 game",
	Long: "FinFrenzy teaches personal finance basics: answer quiz questions to earn\n" +
		"bonus income, then split your income by the 50/30/20 rule.",
	SilenceUsage: true,
	RunE:         runHome,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Progress database path (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep progress in memory only")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the stderr logger honoring --quiet and --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// backend bundles the config and stores a command works against.
type backend struct {
	cfg      config.Config
	progress carryover.Store
	db       *store.DB // nil in ephemeral mode
	log      *slog.Logger
}

// openBackend loads config and opens the progress store. Callers must Close.
func openBackend() (*backend, error) {
	log := newLogger(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagEphemeral {
		log.Debug("using in-memory progress")
		return &backend{cfg: cfg, progress: carryover.NewMemory(), log: log}, nil
	}

	path := flagDB
	if path == "" {
		path = config.DBPath(cfg)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening progress store: %w", err)
	}
	log.Debug("opened progress store", "path", path)

	return &backend{cfg: cfg, progress: db, db: db, log: log}, nil
}

// Close releases the database, if any.
func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
