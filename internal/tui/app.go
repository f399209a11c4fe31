// Package tui provides the interactive Bubble Tea dashboard for FinFrenzy.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/budget"
	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/milestones"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// History is the optional play history backing the milestones view.
// *store.DB satisfies it.
type History interface {
	RecordQuiz(r model.QuizResult) (model.QuizResult, error)
	RecordEvaluation(r model.EvaluationRecord) (model.EvaluationRecord, error)
	Stats() (model.HistoryStats, error)
	ClearHistory() error
}

// Options configures a new App.
type Options struct {
	Config    config.Config
	Progress  carryover.Store
	History   History // nil disables history (ephemeral mode)
	Logger    *slog.Logger
	Rand      quiz.IntSource
	Bell      io.Writer // receives the haptics bell; defaults to stderr
	NeedSetup bool
}

// DataLoadedMsg is sent when progress and history have been read.
type DataLoadedMsg struct {
	Snapshot milestones.Snapshot
	Stats    model.HistoryStats
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	cfg      config.Config
	progress carryover.Store
	history  History
	logger   *slog.Logger
	rng      quiz.IntSource
	bell     io.Writer

	// Data
	snapshot milestones.Snapshot
	stats    model.HistoryStats
	loaded   bool
	loadErr  error

	// Games
	quiz    *quiz.Session
	quizUI  quizState
	budget  *budget.Session
	budgetU budgetState

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form across model copies
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) (App, error) {
	if opts.Progress == nil {
		opts.Progress = carryover.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Bell == nil {
		opts.Bell = os.Stderr
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	qs, err := quiz.NewSession(quiz.DefaultBank(), opts.Progress)
	if err != nil {
		return App{}, fmt.Errorf("starting quiz: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Gold).Background(theme.Active.Surface)

	return App{
		cfg:       opts.Config,
		progress:  opts.Progress,
		history:   opts.History,
		logger:    opts.Logger,
		rng:       opts.Rand,
		bell:      opts.Bell,
		quiz:      qs,
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}, nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.progress, a.history),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == components.TabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Popups swallow keys until dismissed.
		if a.activeTab == components.TabBudget && a.budgetU.popup != nil {
			return a.updateBudgetPopup(key)
		}
		if a.activeTab == components.TabSettings && a.settings.confirmReset {
			return a.updateResetConfirm(key)
		}

		if key == "q" {
			return a, tea.Quit
		}

		if handled, next, cmd := a.updateTab(key); handled {
			return next, cmd
		}

		switch key {
		case "tab":
			a.switchTab((a.activeTab + 1) % len(components.Tabs))
		case "shift+tab":
			a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.switchTab(idx)
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.snapshot = msg.Snapshot
		a.stats = msg.Stats
		if msg.Err != nil {
			a.logger.Warn("loading progress", "err", msg.Err)
		}

		if a.needSetup {
			vals := NewSetupValues(a.cfg)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

// updateTab routes a key to the active tab. It reports whether the key was
// consumed.
func (a App) updateTab(key string) (bool, tea.Model, tea.Cmd) {
	switch a.activeTab {
	case components.TabQuiz:
		return a.updateQuizKey(key)
	case components.TabBudget:
		return a.updateBudgetKey(key)
	case components.TabSettings:
		return a.updateSettingsKey(key)
	}
	return false, a, nil
}

func (a *App) switchTab(idx int) {
	a.activeTab = idx
	a.flash = ""
	if idx == components.TabBudget {
		a.ensureBudgetSession()
	}
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// Tab bar occupies the first line.
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.switchTab(tab)
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case components.TabQuiz:
		a.quizUI.move(delta, len(a.quiz.Current().Options))
	case components.TabBudget:
		if a.budgetU.popup == nil {
			a.budgetU.move(delta)
		}
	case components.TabSettings:
		if !a.settings.editing && !a.settings.confirmReset {
			a.settings.move(delta)
		}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.flash = fmt.Sprintf("Could not save config: %s", err)
			a.logger.Error("saving setup config", "err", err)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// reloadData refreshes the milestone snapshot and history stats in place.
func (a *App) reloadData() {
	msg := loadData(a.progress, a.history)
	a.snapshot = msg.Snapshot
	a.stats = msg.Stats
	if msg.Err != nil {
		a.logger.Warn("reloading progress", "err", msg.Err)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finfrenzy needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	finStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	frenzyStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(finStyle.Render("Fin") + frenzyStyle.Render("Frenzy"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading your progress..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"h z b m x", "Jump to tab"},
			{"Tab S-Tab", "Next / Previous tab"},
			{"j k", "Move cursor"},
		}},
		{"Quiz", []binding{
			{"Space", "Select answer"},
			{"Enter", "Submit / Next question"},
			{"r", "Restart quiz"},
		}},
		{"Budget", []binding{
			{"← →", "Adjust by $10"},
			{"[ ]", "Adjust by $100"},
			{"Enter", "Submit budget"},
			{"0", "Clear allocation"},
			{"n", "New round (re-reads bonus)"},
		}},
		{"General", []binding{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHint(), a.statusInfo())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case components.TabHome:
		content = a.renderHomeTab(cw)
	case components.TabQuiz:
		content = a.renderQuizTab(cw)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	case components.TabMilestones:
		content = a.renderMilestonesTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHint() string {
	switch a.activeTab {
	case components.TabQuiz:
		return "[j/k]move  [space]select  [enter]submit"
	case components.TabBudget:
		return "[j/k]category  [←/→]adjust  [enter]submit"
	case components.TabSettings:
		return "[j/k]navigate  [enter]edit"
	}
	return ""
}

func (a App) statusInfo() string {
	if a.flash != "" {
		return a.flash
	}
	if a.snapshot.BonusIncome > 0 {
		return "Bonus " + cli.FormatBonus(a.snapshot.BonusIncome)
	}
	return ""
}

// ─── Helpers ────────────────────────────────────────────────────

// loadData reads the milestone snapshot and history stats. A failure in
// either is reported but the defaults are still usable.
func loadData(progress carryover.Reader, history History) DataLoadedMsg {
	var msg DataLoadedMsg
	msg.Snapshot, msg.Err = milestones.Load(progress)
	if history != nil {
		stats, err := history.Stats()
		if err != nil && msg.Err == nil {
			msg.Err = err
		}
		msg.Stats = stats
	}
	return msg
}

// loadDataCmd loads progress in the background so the first frame renders
// immediately.
func loadDataCmd(progress carryover.Reader, history History) tea.Cmd {
	return func() tea.Msg {
		return loadData(progress, history)
	}
}

// bellCmd rings the terminal bell on stderr so it does not interleave with
// the renderer's stdout frames.
func bellCmd(out io.Writer) tea.Cmd {
	return func() tea.Msg {
		_, _ = io.WriteString(out, "\a")
		return nil
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
