package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/budget"
	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/model"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// bigStep is the number of steps moved by [ and ].
const bigStep = 10

// budgetState tracks the budget tab's presentation state.
type budgetState struct {
	cursor int
	popup  *model.EvaluationResult // set while the verdict popup is open
}

func (b *budgetState) move(delta int) {
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(model.Categories)-1 {
		b.cursor = len(model.Categories) - 1
	}
}

// ensureBudgetSession starts a round if none is active. The bonus is read
// here and held for the rest of the round.
func (a *App) ensureBudgetSession() {
	if a.budget != nil {
		return
	}
	s, err := budget.NewSession(config.BaseIncome(a.cfg), a.progress)
	if err != nil {
		a.flash = "Could not start budget round"
		a.logger.Error("starting budget session", "err", err)
		return
	}
	a.budget = s
	a.budgetU = budgetState{}
	a.logger.Debug("budget round started", "base", s.BaseIncome(), "bonus", s.BonusIncome())
}

func (a App) updateBudgetKey(key string) (bool, tea.Model, tea.Cmd) {
	a.ensureBudgetSession()
	if a.budget == nil {
		return false, a, nil
	}
	c := model.Categories[a.budgetU.cursor]

	var err error
	switch key {
	case "j", "down":
		a.budgetU.move(1)
	case "k", "up":
		a.budgetU.move(-1)
	case "left":
		_, err = a.budget.Adjust(c, -1)
	case "right":
		_, err = a.budget.Adjust(c, 1)
	case "[":
		_, err = a.budget.Adjust(c, -bigStep)
	case "]":
		_, err = a.budget.Adjust(c, bigStep)
	case "0":
		err = a.budget.Set(c, 0)
	case "n":
		a.budget = nil
		a.ensureBudgetSession()
	case "enter":
		return true, a, a.submitBudget()
	default:
		return false, a, nil
	}
	if err != nil {
		a.flash = "Could not update " + c.Label()
		a.logger.Error("updating allocation", "category", c, "err", err)
	}
	return true, a, nil
}

// submitBudget evaluates the round, opens the verdict popup and records it.
func (a *App) submitBudget() tea.Cmd {
	res := a.budget.Evaluate()
	a.budgetU.popup = &res
	a.logger.Info("budget submitted",
		"total_income", res.TotalIncome,
		"allocated", res.TotalAllocated,
		"balanced", res.IsBalanced)

	if a.history != nil {
		_, err := a.history.RecordEvaluation(model.EvaluationRecord{
			TotalIncome:    res.TotalIncome,
			TotalAllocated: res.TotalAllocated,
			Balanced:       res.IsBalanced,
			SubmittedAt:    time.Now(),
		})
		if err != nil {
			a.logger.Warn("recording evaluation", "err", err)
		} else {
			a.reloadData()
		}
	}

	if a.cfg.Preferences.Notifications {
		a.flash, _ = budget.Feedback(res)
	}
	if a.cfg.Preferences.Haptics {
		return bellCmd(a.bell)
	}
	return nil
}

func (a App) updateBudgetPopup(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "esc", " ":
		a.budgetU.popup = nil
	}
	return a, nil
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active

	if a.budget == nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		return components.ContentCard("Budget", warn.Render("No budget round is active. Press [n] to start one."), cw)
	}
	s := a.budget

	if a.budgetU.popup != nil {
		return a.renderBudgetPopup(*a.budgetU.popup, cw)
	}

	res := s.Evaluate()

	incomeRow := components.MetricCardRow([]components.Metric{
		{Label: "Base Income", Value: cli.FormatCurrency(s.BaseIncome())},
		{Label: "Bonus Income", Value: cli.FormatBonus(s.BonusIncome()), Note: "from the quiz"},
		{Label: "Total Income", Value: cli.FormatCurrency(s.TotalIncome())},
		{Label: "Allocated", Value: cli.FormatCurrency(res.TotalAllocated)},
	}, cw)

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	barW := innerW - labelW - 2 - 1 - 1 - 10
	if barW < 10 {
		barW = 10
	}

	maxAmt := s.MaxAmount()
	var sliders strings.Builder
	for i, c := range model.Categories {
		fill := 0.0
		if maxAmt > 0 {
			fill = s.Amount(c) / maxAmt
		}
		sliders.WriteString(components.CategoryBar(
			c.Label(),
			cli.FormatCurrency(s.Amount(c)),
			fill,
			res.NearTarget[c],
			i == a.budgetU.cursor,
			labelW, barW,
		))
		sliders.WriteString("\n")
	}
	sliders.WriteString("\n")
	sliders.WriteString(components.AllocationBar(budget.Progress(res), innerW))

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	sliders.WriteString("\n\n")
	sliders.WriteString(dimStyle.Render("[←/→] ±$10  [ / ] ±$100  [0] clear  [enter] submit  [n] new round"))

	targets := renderTargets(res, cw)

	return incomeRow + "\n" +
		components.ContentCard("Allocate Your Income", sliders.String(), cw) + "\n" +
		targets
}

// renderTargets shows each bucket's allocation against its 50/30/20 target.
func renderTargets(res model.EvaluationResult, cw int) string {
	metrics := make([]components.Metric, 0, len(model.Buckets))
	for _, b := range model.Buckets {
		metrics = append(metrics, components.Metric{
			Label: fmt.Sprintf("%s (%s)", bucketTitle(b), cli.FormatPercent(b.Share())),
			Value: cli.FormatCurrency(res.BucketAllocated(b)),
			Note:  "target " + cli.FormatCurrency(res.Targets.For(b)),
		})
	}
	return components.MetricCardRow(metrics, cw)
}

func bucketTitle(b model.Bucket) string {
	s := b.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a App) renderBudgetPopup(res model.EvaluationResult, cw int) string {
	t := theme.Active

	title, message := budget.Feedback(res)

	headColor := t.Orange
	if res.IsBalanced {
		headColor = t.Accent
	}
	headStyle := lipgloss.NewStyle().Foreground(headColor).Background(t.Surface).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(headStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(msgStyle.Render(message))
	b.WriteString("\n\n")
	for _, bk := range model.Buckets {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("%-8s %10s of %10s",
			bucketTitle(bk),
			cli.FormatCurrency(res.BucketAllocated(bk)),
			cli.FormatCurrency(res.Targets.For(bk)))))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-8s %10s of %10s",
		"Total", cli.FormatCurrency(res.TotalAllocated), cli.FormatCurrency(res.TotalIncome))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[enter] OK"))

	popupW := 56
	if popupW > cw {
		popupW = cw
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(popupW-2).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
