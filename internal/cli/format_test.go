package cli

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{1000, "$1,000"},
		{1037, "$1,037"},
		{518.5, "$518.50"},
		{311.09999999999997, "$311.10"},
		{1234567, "$1,234,567"},
		{-20, "-$20"},
		{99.999, "$100"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.3); got != "30%" {
		t.Errorf("FormatPercent(0.3) = %q", got)
	}
	if got := FormatBonus(70); got != "+$70" {
		t.Errorf("FormatBonus(70) = %q", got)
	}
	if got := FormatScore(80, 100); got != "80 / 100" {
		t.Errorf("FormatScore = %q", got)
	}
}
