package model

// Allocation maps each category to the amount of income assigned to it.
// Missing categories count as zero.
type Allocation map[Category]float64

// Total sums the amounts across all five categories.
func (a Allocation) Total() float64 {
	var total float64
	for _, c := range Categories {
		total += a[c]
	}
	return total
}

// BucketTotal sums the amounts of the bucket's member categories.
func (a Allocation) BucketTotal(b Bucket) float64 {
	var total float64
	for _, c := range b.Members() {
		total += a[c]
	}
	return total
}

// Clone returns an independent copy of the allocation.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for c, v := range a {
		out[c] = v
	}
	return out
}

// Targets holds the income-derived 50/30/20 bucket targets.
type Targets struct {
	Needs   float64 `json:"needs" yaml:"needs"`
	Wants   float64 `json:"wants" yaml:"wants"`
	Savings float64 `json:"savings" yaml:"savings"`
}

// For returns the target of the given bucket.
func (t Targets) For(b Bucket) float64 {
	switch b {
	case Needs:
		return t.Needs
	case Wants:
		return t.Wants
	case SavingsBucket:
		return t.Savings
	}
	return 0
}

// EvaluationResult is the verdict and derived figures for one allocation.
type EvaluationResult struct {
	BaseIncome       float64 `json:"base_income" yaml:"base_income"`
	BonusIncome      float64 `json:"bonus_income" yaml:"bonus_income"`
	TotalIncome      float64 `json:"total_income" yaml:"total_income"`
	TotalAllocated   float64 `json:"total_allocated" yaml:"total_allocated"`
	NeedsAllocated   float64 `json:"needs_allocated" yaml:"needs_allocated"`
	WantsAllocated   float64 `json:"wants_allocated" yaml:"wants_allocated"`
	SavingsAllocated float64 `json:"savings_allocated" yaml:"savings_allocated"`
	Targets          Targets `json:"targets" yaml:"targets"`
	IsBalanced       bool    `json:"is_balanced" yaml:"is_balanced"`

	Allocated  map[Category]float64 `json:"allocated" yaml:"allocated"`
	SubTargets map[Category]float64 `json:"sub_targets" yaml:"sub_targets"`
	NearTarget map[Category]bool    `json:"near_target" yaml:"near_target"`
}

// BucketAllocated returns the allocated amount of the given bucket.
func (r EvaluationResult) BucketAllocated(b Bucket) float64 {
	switch b {
	case Needs:
		return r.NeedsAllocated
	case Wants:
		return r.WantsAllocated
	case SavingsBucket:
		return r.SavingsAllocated
	}
	return 0
}
