// Package budget evaluates income allocations against the 50/30/20 rule.
package budget

import (
	"errors"
	"fmt"
	"math"

	"github.com/finfrenzy/finfrenzy/internal/model"
)

const (
	// Tolerance is the deviation below which a bucket or category counts as
	// on target. Comparisons are strict: a deviation of exactly 20 misses.
	Tolerance = 20.0

	// Step is the granularity of the allocation input surface.
	Step = 10.0

	// DefaultBaseIncome is the starting income of a new budget session.
	DefaultBaseIncome = 1000.0
)

// Domain errors returned for input the engine refuses to evaluate.
var (
	ErrNonPositiveIncome = errors.New("budget: base income must be positive")
	ErrNegativeBonus     = errors.New("budget: bonus income must not be negative")
	ErrNegativeAmount    = errors.New("budget: allocated amount must not be negative")
	ErrNonFinite         = errors.New("budget: value is not a finite number")
	ErrUnknownCategory   = errors.New("budget: unknown category")
)

// TargetsFor derives the bucket targets from total income. The three
// targets sum to totalIncome exactly: wants is snapped so that needs+wants
// is representable and savings takes the exact remainder.
func TargetsFor(totalIncome float64) model.Targets {
	// Explicit conversions keep the compiler from fusing these into FMAs.
	needs := float64(totalIncome * model.Needs.Share())
	wants := float64(totalIncome * model.Wants.Share())
	wants = float64(needs+wants) - needs
	return model.Targets{
		Needs:   needs,
		Wants:   wants,
		Savings: float64(totalIncome-needs) - wants,
	}
}

// SubTarget splits the category's bucket target evenly across the bucket
// members.
func SubTarget(c model.Category, targets model.Targets) float64 {
	b := c.Bucket()
	return targets.For(b) / float64(len(b.Members()))
}

// Evaluate computes the verdict for an allocation of baseIncome+bonusIncome.
//
// The total clause is an exact float comparison. When the bonus is not a
// multiple of Step a quantized allocation can never match the total, so such
// sessions cannot be balanced. That is the established rule and it is kept.
func Evaluate(baseIncome, bonusIncome float64, alloc model.Allocation) (model.EvaluationResult, error) {
	if err := validateIncome(baseIncome, bonusIncome); err != nil {
		return model.EvaluationResult{}, err
	}
	for c, v := range alloc {
		if !c.Valid() {
			return model.EvaluationResult{}, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
		}
		if err := validateAmount(c, v); err != nil {
			return model.EvaluationResult{}, err
		}
	}

	total := baseIncome + bonusIncome
	targets := TargetsFor(total)

	res := model.EvaluationResult{
		BaseIncome:       baseIncome,
		BonusIncome:      bonusIncome,
		TotalIncome:      total,
		TotalAllocated:   alloc.Total(),
		NeedsAllocated:   alloc.BucketTotal(model.Needs),
		WantsAllocated:   alloc.BucketTotal(model.Wants),
		SavingsAllocated: alloc.BucketTotal(model.SavingsBucket),
		Targets:          targets,
		Allocated:        make(map[model.Category]float64, len(model.Categories)),
		SubTargets:       make(map[model.Category]float64, len(model.Categories)),
		NearTarget:       make(map[model.Category]bool, len(model.Categories)),
	}

	for _, c := range model.Categories {
		sub := SubTarget(c, targets)
		res.Allocated[c] = alloc[c]
		res.SubTargets[c] = sub
		res.NearTarget[c] = WithinTolerance(alloc[c], sub)
	}

	res.IsBalanced = WithinTolerance(res.NeedsAllocated, targets.Needs) &&
		WithinTolerance(res.WantsAllocated, targets.Wants) &&
		WithinTolerance(res.SavingsAllocated, targets.Savings) &&
		res.TotalAllocated == res.TotalIncome

	return res, nil
}

// Progress returns the share of total income allocated so far, unclamped.
func Progress(r model.EvaluationResult) float64 {
	if r.TotalIncome <= 0 {
		return 0
	}
	return r.TotalAllocated / r.TotalIncome
}

// Feedback returns the popup title and message for a verdict.
func Feedback(r model.EvaluationResult) (title, message string) {
	if r.IsBalanced {
		return "Perfect Budget!", "Your budget follows the 50/30/20 rule!"
	}
	return "Adjust Your Budget", "Try adjusting your expenses to match the 50/30/20 rule."
}

// WithinTolerance reports whether allocated is strictly closer than
// Tolerance to target.
func WithinTolerance(allocated, target float64) bool {
	return math.Abs(allocated-target) < Tolerance
}

func validateIncome(base, bonus float64) error {
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return fmt.Errorf("%w: base income %v", ErrNonFinite, base)
	}
	if math.IsNaN(bonus) || math.IsInf(bonus, 0) {
		return fmt.Errorf("%w: bonus income %v", ErrNonFinite, bonus)
	}
	if base <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveIncome, base)
	}
	if bonus < 0 {
		return fmt.Errorf("%w: got %v", ErrNegativeBonus, bonus)
	}
	return nil
}

func validateAmount(c model.Category, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, c, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s = %v", ErrNegativeAmount, c, v)
	}
	return nil
}
