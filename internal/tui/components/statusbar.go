package components

import (
	"strings"

	"github.com/finfrenzy/finfrenzy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. hint describes the active
// tab's keys; info is right-aligned (bonus income, flash messages).
func RenderStatusBar(width int, hint, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [q]uit"
	if hint != "" {
		left += "  " + hint
	}
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
