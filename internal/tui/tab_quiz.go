package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/quiz"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// quizState tracks the quiz tab's presentation state.
type quizState struct {
	cursor int
	tip    string // picked once per completed run
}

func (q *quizState) move(delta, n int) {
	q.cursor += delta
	if q.cursor < 0 {
		q.cursor = 0
	}
	if q.cursor > n-1 {
		q.cursor = n - 1
	}
}

func (a App) updateQuizKey(key string) (bool, tea.Model, tea.Cmd) {
	qs := a.quiz

	switch key {
	case "j", "down":
		if qs.State() == quiz.InProgress {
			a.quizUI.move(1, len(qs.Current().Options))
		}
		return true, a, nil
	case "k", "up":
		if qs.State() == quiz.InProgress {
			a.quizUI.move(-1, len(qs.Current().Options))
		}
		return true, a, nil
	case " ":
		if qs.State() != quiz.InProgress {
			return true, a, nil
		}
		opts := qs.Current().Options
		if err := qs.SelectAnswer(opts[a.quizUI.cursor]); err != nil {
			a.flash = err.Error()
		}
		return true, a, nil
	case "enter":
		return a.quizEnter()
	case "r":
		qs.Reset()
		a.quizUI = quizState{}
		a.flash = ""
		a.logger.Debug("quiz restarted")
		return true, a, nil
	}
	return false, a, nil
}

// quizEnter submits in InProgress and advances in AwaitingAdvance.
func (a App) quizEnter() (bool, tea.Model, tea.Cmd) {
	qs := a.quiz

	switch qs.State() {
	case quiz.InProgress:
		v, err := qs.SubmitAnswer()
		if errors.Is(err, quiz.ErrNoSelection) {
			a.flash = "Select an answer first"
			return true, a, nil
		}
		if err != nil {
			a.flash = err.Error()
			return true, a, nil
		}
		a.flash = ""
		a.logger.Debug("answer submitted", "question", qs.Index()+1, "correct", v.Correct)
		if a.cfg.Preferences.Haptics && !v.Correct {
			return true, a, bellCmd(a.bell)
		}
		return true, a, nil

	case quiz.AwaitingAdvance:
		if err := qs.Advance(); err != nil {
			a.flash = "Could not save score"
			a.logger.Error("advancing quiz", "err", err)
			return true, a, nil
		}
		a.quizUI.cursor = 0
		if qs.State() == quiz.Completed {
			a.completeQuiz()
		}
		return true, a, nil
	}
	return true, a, nil
}

// completeQuiz records the finished run and refreshes derived views.
func (a *App) completeQuiz() {
	a.quizUI.tip = quiz.PickTip(quiz.Tips, a.rng)
	a.logger.Info("quiz completed", "score", a.quiz.Score())
	if a.cfg.Preferences.Notifications {
		a.flash = "Bonus saved: " + cli.FormatBonus(float64(a.quiz.Score()))
	}

	if a.history != nil {
		_, err := a.history.RecordQuiz(model.QuizResult{
			Score:       a.quiz.Score(),
			Questions:   a.quiz.Len(),
			CompletedAt: time.Now(),
		})
		if err != nil {
			a.logger.Warn("recording quiz", "err", err)
		}
	}

	// An untouched budget round picks up the new bonus.
	if a.budget != nil && a.budget.Allocation().Total() == 0 {
		a.budget = nil
	}
	a.reloadData()
}

func (a App) renderQuizTab(cw int) string {
	if a.quiz.State() == quiz.Completed {
		return a.renderQuizComplete(cw)
	}

	t := theme.Active
	qs := a.quiz
	q := qs.Current()

	promptStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	optStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	selected, hasSel := qs.Selected()

	var b strings.Builder
	b.WriteString(promptStyle.Width(innerW).Render(q.Prompt))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		mark := "( )"
		style := optStyle
		if hasSel && opt == selected {
			mark = "(●)"
			style = selStyle
		}
		line := fmt.Sprintf(" %s %s", mark, opt)
		if i == a.quizUI.cursor && qs.State() == quiz.InProgress {
			line = cursorStyle.Render(padRightTo(line, innerW))
		} else {
			line = style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[space] select  [enter] submit  [r] restart"))

	title := fmt.Sprintf("Question %d of %d", qs.Index()+1, qs.Len())
	scoreLine := components.MetricCardRow([]components.Metric{
		{Label: "Score", Value: cli.FormatScore(qs.Score(), qs.Len()*quiz.PointsPerCorrect)},
		{Label: "Progress", Value: fmt.Sprintf("%d / %d", qs.Index()+1, qs.Len())},
	}, cw)

	out := scoreLine + "\n" + components.ContentCard(title, b.String(), cw)

	if v, ok := qs.Verdict(); ok {
		out += "\n" + renderVerdictCard(v, qs.IsLast(), cw)
	}
	return out
}

func renderVerdictCard(v model.Verdict, last bool, cw int) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(components.CardInnerWidth(cw))
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	if v.Correct {
		b.WriteString(headStyle.Foreground(t.Accent).Render("✓ Correct!"))
	} else {
		b.WriteString(headStyle.Foreground(t.Red).Render("✗ Incorrect"))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render("Correct answer: " + v.CorrectAnswer))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(v.Explanation))
	}
	b.WriteString("\n\n")
	next := "[enter] next question"
	if last {
		next = "[enter] finish quiz"
	}
	b.WriteString(dimStyle.Render(next))

	return components.ContentCard("", b.String(), cw)
}

func (a App) renderQuizComplete(cw int) string {
	t := theme.Active
	qs := a.quiz

	scoreStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	tipStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Italic(true).
		Width(components.CardInnerWidth(cw))
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	tip := a.quizUI.tip
	if tip == "" {
		tip = quiz.FallbackTip
	}

	var b strings.Builder
	b.WriteString(textStyle.Render("Your score: "))
	b.WriteString(scoreStyle.Render(cli.FormatScore(qs.Score(), qs.Len()*quiz.PointsPerCorrect)))
	b.WriteString("\n")
	b.WriteString(textStyle.Render("Bonus income for your next budget: "))
	b.WriteString(scoreStyle.Render(cli.FormatBonus(float64(qs.Score()))))
	b.WriteString("\n\n")
	b.WriteString(tipStyle.Render("Tip: " + tip))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[r] retry quiz  [b] play the budget game"))

	return components.ContentCard("Quiz Complete!", b.String(), cw)
}

// padRightTo pads s with spaces to display width w.
func padRightTo(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
