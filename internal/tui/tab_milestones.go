package tui

import (
	"fmt"
	"strings"

	"github.com/finfrenzy/finfrenzy/internal/cli"
	"github.com/finfrenzy/finfrenzy/internal/tui/components"
	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMilestonesTab(cw int) string {
	t := theme.Active
	snap := a.snapshot

	levelStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	barW := components.CardInnerWidth(cw) - 8
	if barW < 10 {
		barW = 10
	}
	bar := progress.New(
		progress.WithSolidFill(string(t.Gold)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	var level strings.Builder
	level.WriteString(levelStyle.Render(fmt.Sprintf("Level %d", snap.Level)))
	level.WriteString("\n")
	level.WriteString(bar.ViewAs(snap.LevelProgress))
	level.WriteString(spaceStyle.Render(" "))
	level.WriteString(mutedStyle.Render(cli.FormatPercent(snap.LevelProgress)))
	level.WriteString("\n")
	level.WriteString(mutedStyle.Render("Progress to next level"))

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	lockedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	unlockedStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var ach strings.Builder
	for i, m := range snap.Achievements {
		status := lockedStyle.Render("locked")
		style := lockedStyle
		if m.Unlocked {
			status = unlockedStyle.Render("unlocked")
			style = titleStyle
		}
		ach.WriteString(spaceStyle.Render(m.Tier.Icon() + " "))
		ach.WriteString(style.Render(fmt.Sprintf("%-16s", m.Title)))
		ach.WriteString(spaceStyle.Render(" "))
		ach.WriteString(status)
		ach.WriteString("\n")
		ach.WriteString(mutedStyle.Render("   " + m.Description))
		if i < len(snap.Achievements)-1 {
			ach.WriteString("\n")
		}
	}

	stats := components.MetricCardRow([]components.Metric{
		{Label: "Quizzes Completed", Value: fmt.Sprintf("%d", a.stats.QuizzesCompleted)},
		{Label: "Best Score", Value: fmt.Sprintf("%d", a.stats.BestScore)},
		{Label: "Budgets Submitted", Value: fmt.Sprintf("%d", a.stats.EvaluationsSubmitted)},
		{Label: "Balanced", Value: fmt.Sprintf("%d", a.stats.BalancedBudgets)},
	}, cw)

	title := fmt.Sprintf("Achievements (%d/%d)", snap.Unlocked(), len(snap.Achievements))
	return components.ContentCard("Your Progress", level.String(), cw) + "\n" +
		components.ContentCard(title, ach.String(), cw) + "\n" +
		stats
}
