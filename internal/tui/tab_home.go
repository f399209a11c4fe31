package tui

import (
	"fmt"
	"strings"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/config"
	"github.com/finfrenzy/finfrenzy/internal/quiz"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHomeTab(cw int) string {
	t := theme.Active

	welcomeStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	finStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	frenzyStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	quoteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Italic(true).
		Width(components.CardInnerWidth(cw))
	authorStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var head strings.Builder
	head.WriteString(welcomeStyle.Render("Welcome to "))
	head.WriteString(finStyle.Render("Fin") + frenzyStyle.Render("Frenzy"))
	head.WriteString("\n\n")
	head.WriteString(keyStyle.Render("[z]") + descStyle.Render(" Take the quiz and earn bonus income"))
	head.WriteString("\n")
	head.WriteString(keyStyle.Render("[b]") + descStyle.Render(" Play the 50/30/20 budget game"))
	if a.loadErr != nil {
		head.WriteString("\n\n")
		head.WriteString(warnStyle.Render(fmt.Sprintf("Progress could not be loaded: %s", a.loadErr)))
	}

	quote := quoteStyle.Render(fmt.Sprintf("“%s”", quiz.Quote.Text)) + "\n" +
		authorStyle.Render("— "+quiz.Quote.Author)

	best := "-"
	if a.stats.QuizzesCompleted > 0 {
		best = fmt.Sprintf("%d", a.stats.BestScore)
	}
	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Base Income", Value: cli.FormatCurrency(config.BaseIncome(a.cfg))},
		{Label: "Bonus Income", Value: cli.FormatBonus(a.snapshot.BonusIncome), Note: "next budget round"},
		{Label: "Best Quiz Score", Value: best},
		{Label: "Balanced Budgets", Value: fmt.Sprintf("%d / %d", a.stats.BalancedBudgets, a.stats.EvaluationsSubmitted)},
	}, cw)

	return components.ContentCard("", head.String(), cw) + "\n" +
		components.ContentCard("💡 Did you know?", quote, cw) + "\n" +
		metrics
}
