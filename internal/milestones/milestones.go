// Package milestones describes the player's level and achievements.
//
// Achievements are a fixed sample catalogue. Nothing in the quiz or the
// budget game unlocks them; an unlock rule has not been defined and the
// catalogue is the place to add one.
package milestones

import (
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
)

// Tier ranks an achievement.
type Tier int

const (
	Bronze Tier = iota
	Silver
	Gold
)

func (t Tier) String() string {
	switch t {
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Icon returns the glyph shown next to achievements of this tier.
func (t Tier) Icon() string {
	switch t {
	case Bronze:
		return "🥉"
	case Silver:
		return "⭐"
	case Gold:
		return "🏆"
	}
	return "•"
}

// MarshalText renders the tier by name in JSON and YAML.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Achievement is one entry of the catalogue.
type Achievement struct {
	Title       string `json:"title" yaml:"title"`
	Tier        Tier   `json:"tier" yaml:"tier"`
	Description string `json:"description" yaml:"description"`
	Unlocked    bool   `json:"unlocked" yaml:"unlocked"`
}

// Catalog returns the achievement list.
func Catalog() []Achievement {
	return []Achievement{
		{Title: "First Step", Tier: Bronze, Description: "Complete your first challenge!", Unlocked: true},
		{Title: "Budget Master", Tier: Silver, Description: "Save $500 in the budgeting game."},
		{Title: "Financial Guru", Tier: Gold, Description: "Reach Level 10."},
	}
}

// Level defaults shown before any level has been stored.
const (
	DefaultLevel         = 1
	DefaultLevelProgress = 0.3
)

// Snapshot is the milestones view model.
type Snapshot struct {
	Level         int           `json:"level" yaml:"level"`
	LevelProgress float64       `json:"level_progress" yaml:"level_progress"`
	BonusIncome   float64       `json:"bonus_income" yaml:"bonus_income"`
	Achievements  []Achievement `json:"achievements" yaml:"achievements"`
}

// Load builds a snapshot from the progress store. A nil reader yields the
// defaults.
func Load(r carryover.Reader) (Snapshot, error) {
	s := Snapshot{
		Level:         DefaultLevel,
		LevelProgress: DefaultLevelProgress,
		Achievements:  Catalog(),
	}
	if r == nil {
		return s, nil
	}

	lvl, ok, err := r.Get(carryover.KeyLevel)
	if err != nil {
		return s, fmt.Errorf("reading level: %w", err)
	}
	if ok && lvl >= 1 {
		s.Level = int(lvl)
	}

	s.BonusIncome, err = carryover.BonusIncome(r)
	if err != nil {
		return s, err
	}
	return s, nil
}

// Unlocked counts unlocked achievements.
func (s Snapshot) Unlocked() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}
