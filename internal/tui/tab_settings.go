package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldBaseIncome = iota
	settingsFieldTheme
	settingsFieldHaptics
	settingsFieldNotifications
	settingsFieldReset
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor       int
	editing      bool
	input        textinput.Model
	confirmReset bool
	saved        bool  // flash "saved" message briefly
	saveErr      error // non-nil if last save failed
}

func (s *settingsState) move(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > settingsFieldCount-1 {
		s.cursor = settingsFieldCount - 1
	}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 20
	return ti
}

func (a App) updateSettingsKey(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.move(1)
		return true, a, nil
	case "k", "up":
		a.settings.move(-1)
		return true, a, nil
	case "enter", " ":
		m, cmd := a.settingsActivate()
		return true, m, cmd
	}
	return false, a, nil
}

// settingsActivate edits, cycles or toggles the field under the cursor.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	a.settings.saved = false

	switch a.settings.cursor {
	case settingsFieldBaseIncome:
		ti := newSettingsInput()
		ti.Placeholder = "1000"
		ti.SetValue(strconv.FormatFloat(a.cfg.General.BaseIncome, 'f', -1, 64))
		ti.Focus()
		a.settings.input = ti
		a.settings.editing = true
		return a, ti.Cursor.BlinkCmd()

	case settingsFieldTheme:
		names := theme.Names()
		next := 0
		for i, n := range names {
			if n == a.cfg.Appearance.Theme {
				next = (i + 1) % len(names)
				break
			}
		}
		a.cfg.Appearance.Theme = names[next]
		theme.SetActive(names[next])
		a.saveSettings()

	case settingsFieldHaptics:
		a.cfg.Preferences.Haptics = !a.cfg.Preferences.Haptics
		a.saveSettings()

	case settingsFieldNotifications:
		a.cfg.Preferences.Notifications = !a.cfg.Preferences.Notifications
		a.saveSettings()

	case settingsFieldReset:
		a.settings.confirmReset = true
	}
	return a, nil
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := config.ParseBaseIncome(a.settings.input.Value())
		if err != nil {
			a.settings.saveErr = err
			a.settings.editing = false
			return a, nil
		}
		a.cfg.General.BaseIncome = v
		// Income changes apply to the next round.
		if a.budget != nil && a.budget.Allocation().Total() == 0 {
			a.budget = nil
		}
		a.settings.editing = false
		a.saveSettings()
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) updateResetConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		a.settings.confirmReset = false
		a.resetProgress()
	case "n", "N", "esc":
		a.settings.confirmReset = false
	}
	return a, nil
}

// resetProgress clears stored progress and history, restores default
// preferences and restarts both games.
func (a *App) resetProgress() {
	var errs []string
	if err := carryover.ResetProgress(a.progress); err != nil {
		errs = append(errs, err.Error())
	}
	if a.history != nil {
		if err := a.history.ClearHistory(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	a.cfg.Preferences = config.DefaultPreferences()
	a.saveSettings()

	a.quiz.Reset()
	a.quizUI = quizState{}
	a.budget = nil
	a.reloadData()

	if len(errs) > 0 {
		a.settings.saveErr = fmt.Errorf("reset incomplete: %s", strings.Join(errs, "; "))
		a.logger.Error("resetting progress", "err", a.settings.saveErr)
		return
	}
	a.logger.Info("progress reset")
	a.flash = "Progress reset"
}

func (a *App) saveSettings() {
	a.settings.saveErr = config.Save(a.cfg)
	a.settings.saved = a.settings.saveErr == nil
	if a.settings.saveErr != nil {
		a.logger.Error("saving config", "err", a.settings.saveErr)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.SurfaceHover)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Base Income", cli.FormatCurrency(config.BaseIncome(cfg))},
		{"Theme", cfg.Appearance.Theme},
		{"Haptic Feedback", onOff(cfg.Preferences.Haptics)},
		{"Notifications", onOff(cfg.Preferences.Notifications)},
		{"Reset Progress", "level, achievements, streak, quiz bonus"},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	switch {
	case a.settings.confirmReset:
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render("Reset all progress? This cannot be undone. [y/n]"))
	case a.settings.saveErr != nil:
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	case a.settings.saved:
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit / toggle  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file: ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Database:    ") + valueStyle.Render(config.DBPath(cfg)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
