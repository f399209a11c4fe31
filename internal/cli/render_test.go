package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableAlignsWideCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"🏠 Rent", "$250"},
			{"---"},
			{"Total", "$1,000"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if out := RenderTable(Table{}); out != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", out)
	}
}

func TestRenderProgressBarClampsFill(t *testing.T) {
	out := RenderProgressBar(1.5, 10, false)
	if !strings.Contains(out, "150%") {
		t.Errorf("bar %q does not report 150%%", out)
	}
	if strings.Count(out, "█") != 10 {
		t.Errorf("bar %q should be fully filled", out)
	}
}
