package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/milestones"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeHistory struct {
	quizzes []model.QuizResult
	evals   []model.EvaluationRecord
	cleared bool
}

func (h *fakeHistory) RecordQuiz(r model.QuizResult) (model.QuizResult, error) {
	h.quizzes = append(h.quizzes, r)
	return r, nil
}

func (h *fakeHistory) RecordEvaluation(r model.EvaluationRecord) (model.EvaluationRecord, error) {
	h.evals = append(h.evals, r)
	return r, nil
}

func (h *fakeHistory) Stats() (model.HistoryStats, error) {
	s := model.HistoryStats{QuizzesCompleted: len(h.quizzes), EvaluationsSubmitted: len(h.evals)}
	for _, q := range h.quizzes {
		s.BestScore = max(s.BestScore, q.Score)
	}
	for _, e := range h.evals {
		if e.Balanced {
			s.BalancedBudgets++
		}
	}
	return s, nil
}

func (h *fakeHistory) ClearHistory() error {
	h.quizzes, h.evals = nil, nil
	h.cleared = true
	return nil
}

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

func newTestApp(t *testing.T, mem *carryover.Memory, hist *fakeHistory, bell *bytes.Buffer) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("FINFRENZY_BASE_INCOME", "")

	opts := Options{
		Config:   config.DefaultConfig(),
		Progress: mem,
		Rand:     fixedSource(0),
		Bell:     bell,
	}
	if hist != nil {
		opts.History = hist
	}
	a, err := NewApp(opts)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	m, _ := a.Update(loadData(mem, opts.History))
	return m.(App)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys in order and returns the final model and last command.
func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

func repeat(key string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = key
	}
	return out
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i := range components.Tabs {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d: x past the last tab -> %d, want -1", active, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Home"),
		len("Quiz"),
		len("Budget"),
		len("Milestones"),
		len("Settings"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx {
		if tabIdx == components.TabSettings {
			w += 3 // inactive Settings adds "[x]"
		} else {
			w += 2 // brackets around the shortcut letter
		}
	}
	return w
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a := newTestApp(t, carryover.NewMemory(), nil, &bytes.Buffer{})

	tests := []struct {
		key  string
		want int
	}{
		{"z", components.TabQuiz},
		{"b", components.TabBudget},
		{"m", components.TabMilestones},
		{"x", components.TabSettings},
		{"h", components.TabHome},
	}
	for _, tt := range tests {
		a, _ = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("key %q: activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

// answerAll plays the whole quiz, answering correctly when correct is true.
func answerAll(t *testing.T, a App, correct bool) App {
	t.Helper()
	for i := 0; i < a.quiz.Len(); i++ {
		q := a.quiz.Current()
		target := 0
		for j, opt := range q.Options {
			if (opt == q.CorrectAnswer) == correct {
				target = j
				break
			}
		}
		a, _ = press(t, a, repeat("j", target)...)
		a, _ = press(t, a, " ", "enter", "enter")
	}
	return a
}

func TestQuizFlowStoresBonus(t *testing.T) {
	mem := carryover.NewMemory()
	hist := &fakeHistory{}
	a := newTestApp(t, mem, hist, &bytes.Buffer{})
	a, _ = press(t, a, "z")

	a = answerAll(t, a, true)

	if a.quiz.State() != quiz.Completed {
		t.Fatalf("state = %v, want completed", a.quiz.State())
	}
	if got, ok, _ := mem.Get(carryover.KeyQuizPoints); !ok || got != 100 {
		t.Errorf("quizPoints = %v (present %v), want 100", got, ok)
	}
	if len(hist.quizzes) != 1 || hist.quizzes[0].Score != 100 {
		t.Errorf("recorded quizzes = %+v", hist.quizzes)
	}
	if a.snapshot.BonusIncome != 100 {
		t.Errorf("snapshot bonus = %v, want 100", a.snapshot.BonusIncome)
	}
	if a.quizUI.tip != quiz.Tips[0] {
		t.Errorf("tip = %q, want first tip", a.quizUI.tip)
	}

	a, _ = press(t, a, "r")
	if a.quiz.State() != quiz.InProgress || a.quiz.Score() != 0 {
		t.Errorf("after retry: state %v score %d", a.quiz.State(), a.quiz.Score())
	}
	if got, _, _ := mem.Get(carryover.KeyQuizPoints); got != 100 {
		t.Errorf("retry cleared stored bonus: %v", got)
	}
}

func TestQuizEnterWithoutSelection(t *testing.T) {
	a := newTestApp(t, carryover.NewMemory(), nil, &bytes.Buffer{})
	a, _ = press(t, a, "z", "enter")

	if a.quiz.State() != quiz.InProgress {
		t.Errorf("state = %v, want in progress", a.quiz.State())
	}
	if a.flash == "" {
		t.Error("expected a prompt to select an answer")
	}
}

func TestQuizWrongAnswerRingsBell(t *testing.T) {
	bell := &bytes.Buffer{}
	a := newTestApp(t, carryover.NewMemory(), nil, bell)
	a, _ = press(t, a, "z")

	q := a.quiz.Current()
	wrong := 0
	for i, opt := range q.Options {
		if opt != q.CorrectAnswer {
			wrong = i
			break
		}
	}
	a, _ = press(t, a, repeat("j", wrong)...)
	a, cmd := press(t, a, " ", "enter")

	v, ok := a.quiz.Verdict()
	if !ok || v.Correct {
		t.Fatalf("verdict = %+v, ok=%v", v, ok)
	}
	if cmd == nil {
		t.Fatal("expected bell command")
	}
	cmd()
	if bell.String() != "\a" {
		t.Errorf("bell output = %q", bell.String())
	}
}

func TestBudgetBalancedSubmit(t *testing.T) {
	bell := &bytes.Buffer{}
	hist := &fakeHistory{}
	a := newTestApp(t, carryover.NewMemory(), hist, bell)
	a, _ = press(t, a, "b")
	if a.budget == nil {
		t.Fatal("budget session not started")
	}

	// rent 250, food 250, savings 200, entertainment 150, misc 150
	keys := []string{"]", "]"}
	keys = append(keys, repeat("right", 5)...)
	keys = append(keys, "j", "]", "]")
	keys = append(keys, repeat("right", 5)...)
	keys = append(keys, "j", "]", "]")
	keys = append(keys, "j", "]")
	keys = append(keys, repeat("right", 5)...)
	keys = append(keys, "j", "]")
	keys = append(keys, repeat("right", 5)...)
	a, _ = press(t, a, keys...)

	if got := a.budget.Allocation().Total(); got != 1000 {
		t.Fatalf("allocated = %v, want 1000", got)
	}

	a, cmd := press(t, a, "enter")
	if a.budgetU.popup == nil {
		t.Fatal("popup not shown")
	}
	if !a.budgetU.popup.IsBalanced {
		t.Errorf("expected balanced result, got %+v", *a.budgetU.popup)
	}
	if len(hist.evals) != 1 || !hist.evals[0].Balanced {
		t.Errorf("recorded evaluations = %+v", hist.evals)
	}
	if cmd == nil {
		t.Fatal("expected bell command with haptics on")
	}
	cmd()
	if bell.Len() != 1 {
		t.Errorf("bell rang %d times", bell.Len())
	}

	// Keys other than dismiss are swallowed by the popup.
	a, _ = press(t, a, "right")
	if got := a.budget.Amount(model.Rent); got != 250 {
		t.Errorf("rent changed under popup: %v", got)
	}
	a, _ = press(t, a, "enter")
	if a.budgetU.popup != nil {
		t.Error("popup not dismissed")
	}
}

func TestBudgetAdjustClampsAtZero(t *testing.T) {
	a := newTestApp(t, carryover.NewMemory(), nil, &bytes.Buffer{})
	a, _ = press(t, a, "b", "left", "[")
	if got := a.budget.Amount(model.Rent); got != 0 {
		t.Errorf("rent = %v, want 0", got)
	}
	a, _ = press(t, a, repeat("]", 15)...)
	if got := a.budget.Amount(model.Rent); got != 1000 {
		t.Errorf("rent = %v, want clamp at 1000", got)
	}
	a, _ = press(t, a, "0")
	if got := a.budget.Amount(model.Rent); got != 0 {
		t.Errorf("rent after clear = %v", got)
	}
}

func TestBudgetBonusReadOncePerRound(t *testing.T) {
	mem := carryover.NewMemory()
	if err := mem.Set(carryover.KeyQuizPoints, 40); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, mem, nil, &bytes.Buffer{})
	a, _ = press(t, a, "b", "]")
	if a.budget.BonusIncome() != 40 {
		t.Fatalf("bonus = %v, want 40", a.budget.BonusIncome())
	}

	// Finishing a quiz mid-round leaves the touched round alone.
	a, _ = press(t, a, "z")
	a = answerAll(t, a, true)
	a, _ = press(t, a, "b")
	if a.budget.BonusIncome() != 40 {
		t.Errorf("bonus changed mid-round: %v", a.budget.BonusIncome())
	}

	// A new round reads the stored score.
	a, _ = press(t, a, "n")
	if a.budget.BonusIncome() != 100 {
		t.Errorf("new round bonus = %v, want 100", a.budget.BonusIncome())
	}
}

func TestSettingsResetProgress(t *testing.T) {
	mem := carryover.NewMemory()
	for _, k := range carryover.ProgressKeys {
		if err := mem.Set(k, 3); err != nil {
			t.Fatal(err)
		}
	}
	hist := &fakeHistory{quizzes: []model.QuizResult{{Score: 30}}}
	a := newTestApp(t, mem, hist, &bytes.Buffer{})
	a.cfg.Preferences.Haptics = false

	a, _ = press(t, a, "x")
	a, _ = press(t, a, repeat("j", settingsFieldReset)...)
	a, _ = press(t, a, "enter")
	if !a.settings.confirmReset {
		t.Fatal("reset did not ask for confirmation")
	}

	// Any other key leaves the prompt open; n cancels.
	a, _ = press(t, a, "q", "n")
	if a.settings.confirmReset || len(mem.Keys()) == 0 {
		t.Fatal("cancel should keep progress")
	}

	a, _ = press(t, a, "enter", "y")
	if keys := mem.Keys(); len(keys) != 0 {
		t.Errorf("progress keys left after reset: %v", keys)
	}
	if !hist.cleared {
		t.Error("history not cleared")
	}
	if a.cfg.Preferences != config.DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", a.cfg.Preferences)
	}
	if a.snapshot.Level != milestones.DefaultLevel || a.snapshot.BonusIncome != 0 {
		t.Errorf("snapshot after reset = %+v", a.snapshot)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if !saved.Preferences.Haptics {
		t.Error("saved config did not restore haptics")
	}
}

func TestSettingsEditBaseIncome(t *testing.T) {
	a := newTestApp(t, carryover.NewMemory(), nil, &bytes.Buffer{})
	a, _ = press(t, a, "x", "enter")
	if !a.settings.editing {
		t.Fatal("base income field not in edit mode")
	}

	a.settings.input.SetValue("2500")
	a, _ = press(t, a, "enter")
	if a.settings.editing || a.settings.saveErr != nil {
		t.Fatalf("edit not committed: editing=%v err=%v", a.settings.editing, a.settings.saveErr)
	}
	if a.cfg.General.BaseIncome != 2500 {
		t.Errorf("base income = %v", a.cfg.General.BaseIncome)
	}

	a, _ = press(t, a, "b")
	if a.budget.TotalIncome() != 2500 {
		t.Errorf("budget total income = %v, want 2500", a.budget.TotalIncome())
	}

	a, _ = press(t, a, "x")
	for _, bad := range []string{"-5", "0", "NaN", "Inf", "-Inf"} {
		a, _ = press(t, a, "enter")
		if !a.settings.editing {
			t.Fatalf("%q: base income field not in edit mode", bad)
		}
		a.settings.input.SetValue(bad)
		a, _ = press(t, a, "enter")
		if a.settings.saveErr == nil {
			t.Errorf("%q: income should be rejected", bad)
		}
		if a.cfg.General.BaseIncome != 2500 {
			t.Errorf("%q: base income changed to %v", bad, a.cfg.General.BaseIncome)
		}
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.General.BaseIncome != 2500 {
		t.Errorf("saved base income = %v, want 2500", saved.General.BaseIncome)
	}
}

func TestViewRendersEachTab(t *testing.T) {
	a := newTestApp(t, carryover.NewMemory(), &fakeHistory{}, &bytes.Buffer{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = m.(App)

	tests := []struct {
		key  string
		want string
	}{
		{"h", "Did you know?"},
		{"z", "Question 1 of 10"},
		{"b", "Allocate Your Income"},
		{"m", "First Step"},
		{"x", "Haptic Feedback"},
	}
	for _, tt := range tests {
		a, _ = press(t, a, tt.key)
		if view := a.View(); !strings.Contains(view, tt.want) {
			t.Errorf("tab %q view missing %q", tt.key, tt.want)
		}
	}

	narrow, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(narrow.(App).View(), "too narrow") {
		t.Error("narrow terminal should show warning")
	}
}
