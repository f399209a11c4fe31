// Package model defines domain types for the FinFrenzy budget game, quiz and
// progress tracking.
package model

import (
	"fmt"
	"strings"
)

// Category is one of the five spending lines a user allocates income to.
type Category int

const (
	Rent Category = iota
	Food
	Savings
	Entertainment
	Miscellaneous
)

// Categories lists every category in display order.
var Categories = []Category{Rent, Food, Savings, Entertainment, Miscellaneous}

var categoryNames = [...]string{
	Rent:          "rent",
	Food:          "food",
	Savings:       "savings",
	Entertainment: "entertainment",
	Miscellaneous: "miscellaneous",
}

var categoryLabels = [...]string{
	Rent:          "🏠 Rent",
	Food:          "🌯 Food",
	Savings:       "💰 Savings",
	Entertainment: "🎭 Entertainment",
	Miscellaneous: "📦 Miscellaneous",
}

// String returns the lowercase identifier used in flags and serialized output.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label returns the display label with its icon.
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryLabels[c]
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	return c >= Rent && c <= Miscellaneous
}

// Bucket returns the policy bucket the category belongs to.
func (c Category) Bucket() Bucket {
	switch c {
	case Rent, Food:
		return Needs
	case Entertainment, Miscellaneous:
		return Wants
	default:
		return SavingsBucket
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize as
// names in JSON and YAML map keys.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// ParseCategory resolves a category name (case-insensitive, "misc" accepted).
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "misc" {
		return Miscellaneous, nil
	}
	for _, c := range Categories {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Bucket is one of the three 50/30/20 policy groups.
type Bucket int

const (
	Needs Bucket = iota
	Wants
	SavingsBucket
)

// Buckets lists every bucket in policy order.
var Buckets = []Bucket{Needs, Wants, SavingsBucket}

// String returns the bucket name.
func (b Bucket) String() string {
	switch b {
	case Needs:
		return "needs"
	case Wants:
		return "wants"
	case SavingsBucket:
		return "savings"
	}
	return fmt.Sprintf("bucket(%d)", int(b))
}

// Share returns the fraction of total income the bucket targets.
func (b Bucket) Share() float64 {
	switch b {
	case Needs:
		return 0.50
	case Wants:
		return 0.30
	case SavingsBucket:
		return 0.20
	}
	return 0
}

// Members returns the categories grouped under the bucket.
func (b Bucket) Members() []Category {
	switch b {
	case Needs:
		return []Category{Rent, Food}
	case Wants:
		return []Category{Entertainment, Miscellaneous}
	case SavingsBucket:
		return []Category{Savings}
	}
	return nil
}
