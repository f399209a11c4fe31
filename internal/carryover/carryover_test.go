package carryover

import (
	"errors"
	"testing"
)

func TestBonusIncomeAbsentIsZero(t *testing.T) {
	m := NewMemory()
	got, err := BonusIncome(m)
	if err != nil {
		t.Fatalf("BonusIncome: %v", err)
	}
	if got != 0 {
		t.Fatalf("BonusIncome = %v, want 0", got)
	}

	got, err = BonusIncome(nil)
	if err != nil || got != 0 {
		t.Fatalf("BonusIncome(nil) = %v, %v; want 0, nil", got, err)
	}
}

func TestBonusIncomeReadsQuizPoints(t *testing.T) {
	m := NewMemory()
	if err := m.Set(KeyQuizPoints, 70); err != nil {
		t.Fatal(err)
	}
	got, err := BonusIncome(m)
	if err != nil {
		t.Fatalf("BonusIncome: %v", err)
	}
	if got != 70 {
		t.Fatalf("BonusIncome = %v, want 70", got)
	}
}

type failingReader struct{}

var errBroken = errors.New("broken")

func (failingReader) Get(string) (float64, bool, error) { return 0, false, errBroken }

func TestBonusIncomePropagatesReadError(t *testing.T) {
	_, err := BonusIncome(failingReader{})
	if !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want wrapped errBroken", err)
	}
}

func TestResetProgressClearsOnlyProgressKeys(t *testing.T) {
	m := NewMemory()
	for _, k := range ProgressKeys {
		if err := m.Set(k, 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Set("unrelated", 5); err != nil {
		t.Fatal(err)
	}

	if err := ResetProgress(m); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}

	keys := m.Keys()
	if len(keys) != 1 || keys[0] != "unrelated" {
		t.Fatalf("keys after reset = %v, want [unrelated]", keys)
	}
}
