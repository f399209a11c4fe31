// Package config loads and saves the FinFrenzy TOML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all FinFrenzy configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Preferences PreferencesConfig `toml:"preferences"`
	Appearance  AppearanceConfig  `toml:"appearance"`
}

// GeneralConfig holds game settings.
type GeneralConfig struct {
	BaseIncome float64 `toml:"base_income"`
	DataDir    string  `toml:"data_dir,omitempty"`
}

// PreferencesConfig holds feedback preferences.
type PreferencesConfig struct {
	Haptics       bool `toml:"haptics"` // ring the terminal bell on verdicts
	Notifications bool `toml:"notifications"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			BaseIncome: 1000,
		},
		Preferences: DefaultPreferences(),
		Appearance: AppearanceConfig{
			Theme: "finfrenzy",
		},
	}
}

// DefaultPreferences returns the preferences restored by a progress reset.
func DefaultPreferences() PreferencesConfig {
	return PreferencesConfig{Haptics: true, Notifications: true}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finfrenzy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finfrenzy")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the directory holding the database, honoring the
// data_dir override.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finfrenzy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finfrenzy")
}

// DBPath returns the database path for cfg.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "finfrenzy.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if !ValidBaseIncome(cfg.General.BaseIncome) {
		cfg.General.BaseIncome = DefaultConfig().General.BaseIncome
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ErrInvalidBaseIncome is returned for base incomes that are not positive
// finite numbers.
var ErrInvalidBaseIncome = errors.New("base income must be a positive number")

// ValidBaseIncome reports whether v is a usable base income.
func ValidBaseIncome(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ParseBaseIncome parses a user-entered base income. "NaN" and "Inf" are
// rejected along with zero and negative amounts.
func ParseBaseIncome(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !ValidBaseIncome(v) {
		return 0, ErrInvalidBaseIncome
	}
	return v, nil
}

// BaseIncome returns the base income from FINFRENZY_BASE_INCOME or config,
// in that order. Env values that do not parse as a valid income are ignored.
func BaseIncome(cfg Config) float64 {
	if s := os.Getenv("FINFRENZY_BASE_INCOME"); s != "" {
		if v, err := ParseBaseIncome(s); err == nil {
			return v
		}
	}
	return cfg.General.BaseIncome
}
