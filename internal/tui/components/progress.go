package components

import (
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForAllocation returns the bar color for an allocated share of income:
// gold while filling, accent when fully allocated, red when over.
func ColorForAllocation(pct float64) string {
	t := theme.Active
	switch {
	case pct > 1:
		return string(t.Red)
	case pct == 1:
		return string(t.Accent)
	default:
		return string(t.Gold)
	}
}

// AllocationBar renders the overall "allocated of income" bar with a
// percentage suffix. Values above 100% are shown but the bar is capped.
func AllocationBar(pct float64, width int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	color := ColorForAllocation(pct)

	barW := width - 6
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(min(pct, 1)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", pct*100))
}

// CategoryBar renders one labeled category slider row. The fill is the
// amount relative to maxAmount; near highlights the amount in gold when it
// sits within tolerance of its sub-target.
func CategoryBar(label, amount string, fill float64, near, selected bool, labelW, barW int) string {
	t := theme.Active

	bg := t.Surface
	if selected {
		bg = t.SurfaceHover
	}

	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	fillColor := t.Accent
	if near {
		fillColor = t.Gold
	}
	bar := progress.New(
		progress.WithSolidFill(string(fillColor)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(bg).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(bg)
	if near {
		amountStyle = amountStyle.Foreground(t.Gold).Bold(true)
	}
	spaceStyle := lipgloss.NewStyle().Background(bg)

	return cursorStyle.Render(cursor) +
		labelStyle.Render(padToWidth(label, labelW)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		amountStyle.Render(fmt.Sprintf("%10s", amount))
}

// padToWidth right-pads s with spaces using display width, so emoji labels
// line up.
func padToWidth(s string, w int) string {
	gap := w - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", gap, "")
}
