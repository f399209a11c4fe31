// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency formats a dollar amount with thousands separators, keeping
// cents only when they are non-zero.
// e.g., 1000 -> "$1,000", 518.5 -> "$518.50"
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := math.Trunc(v)
	cents := math.Round((v - whole) * 100)
	if cents == 100 {
		whole++
		cents = 0
	}
	if cents == 0 {
		return sign + "$" + humanize.Comma(int64(whole))
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(int64(whole)), int64(cents))
}

// FormatBonus formats a carried-over bonus as "+$70".
func FormatBonus(v float64) string {
	return "+" + FormatCurrency(v)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatScore formats a quiz score out of the maximum.
func FormatScore(score, maxScore int) string {
	return fmt.Sprintf("%d / %d", score, maxScore)
}

// Check renders a boolean as a check mark or a dash.
func Check(ok bool) string {
	if ok {
		return "✓"
	}
	return "–"
}
