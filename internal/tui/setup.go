package tui

import (
	"errors"
	"strconv"

	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the first-run form bindings.
type SetupValues struct {
	BaseIncome    string
	Theme         string
	Haptics       bool
	Notifications bool
}

// NewSetupValues seeds the form from the current config.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		BaseIncome:    strconv.FormatFloat(config.BaseIncome(cfg), 'f', -1, 64),
		Theme:         cfg.Appearance.Theme,
		Haptics:       cfg.Preferences.Haptics,
		Notifications: cfg.Preferences.Notifications,
	}
}

// Apply copies the answers into cfg. Invalid income or theme values leave
// the existing setting in place.
func (v SetupValues) Apply(cfg *config.Config) {
	if inc, err := config.ParseBaseIncome(v.BaseIncome); err == nil {
		cfg.General.BaseIncome = inc
	}
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	cfg.Preferences.Haptics = v.Haptics
	cfg.Preferences.Notifications = v.Notifications
}

func validateIncome(s string) error {
	if _, err := config.ParseBaseIncome(s); err != nil {
		return errors.New("enter a positive amount")
	}
	return nil
}

// NewSetupForm builds the setup wizard bound to vals. It is shared by the
// first-run TUI flow and the setup command.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to FinFrenzy").
				Description("Earn bonus income in the quiz,\nthen spend it wisely in the 50/30/20 budget game."),
			huh.NewInput().
				Title("Monthly base income").
				Description("Starting income for every budget round.").
				Value(&vals.BaseIncome).
				Validate(validateIncome),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Haptic feedback").
				Description("Ring the terminal bell on verdicts.").
				Value(&vals.Haptics),
			huh.NewConfirm().
				Title("Notifications").
				Description("Show status messages after quizzes and budgets.").
				Value(&vals.Notifications),
		),
	).WithTheme(huh.ThemeDracula())
}

// saveSetupConfig applies the wizard answers and writes the config file.
func (a *App) saveSetupConfig() error {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	return config.Save(a.cfg)
}
