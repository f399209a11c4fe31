package budget

import (
	"fmt"
	"math"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/model"
)

// Session is one round of the budget game. The bonus income is read from
// the carryover store once, when the session is created, and stays fixed
// for the session's lifetime.
type Session struct {
	baseIncome  float64
	bonusIncome float64
	alloc       model.Allocation
}

// NewSession starts a session with every category at zero.
func NewSession(baseIncome float64, bonus carryover.Reader) (*Session, error) {
	bonusIncome, err := carryover.BonusIncome(bonus)
	if err != nil {
		return nil, err
	}
	if err := validateIncome(baseIncome, bonusIncome); err != nil {
		return nil, err
	}
	return &Session{
		baseIncome:  baseIncome,
		bonusIncome: bonusIncome,
		alloc:       make(model.Allocation, len(model.Categories)),
	}, nil
}

// BaseIncome returns the user-configured income.
func (s *Session) BaseIncome() float64 { return s.baseIncome }

// BonusIncome returns the carried-over quiz bonus.
func (s *Session) BonusIncome() float64 { return s.bonusIncome }

// TotalIncome returns base plus bonus income.
func (s *Session) TotalIncome() float64 { return s.baseIncome + s.bonusIncome }

// Amount returns the current amount of a category.
func (s *Session) Amount(c model.Category) float64 { return s.alloc[c] }

// Allocation returns a copy of the working allocation.
func (s *Session) Allocation() model.Allocation { return s.alloc.Clone() }

// Set assigns an amount to a category. The amount must lie within
// [0, TotalIncome]; it is stored as given, without quantization.
func (s *Session) Set(c model.Category, amount float64) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if err := validateAmount(c, amount); err != nil {
		return err
	}
	if amount > s.TotalIncome() {
		return fmt.Errorf("budget: %s = %v exceeds total income %v", c, amount, s.TotalIncome())
	}
	s.alloc[c] = amount
	return nil
}

// Adjust moves a category by the given number of steps, snapping to the
// step grid and clamping to [0, MaxAmount]. It returns the new amount.
func (s *Session) Adjust(c model.Category, steps int) (float64, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	v := math.Round(s.alloc[c]/Step)*Step + float64(steps)*Step
	v = math.Max(0, math.Min(v, s.MaxAmount()))
	s.alloc[c] = v
	return v, nil
}

// MaxAmount is the largest step-aligned amount not exceeding total income.
func (s *Session) MaxAmount() float64 {
	return math.Floor(s.TotalIncome()/Step) * Step
}

// Reset zeroes every category.
func (s *Session) Reset() {
	s.alloc = make(model.Allocation, len(model.Categories))
}

// Evaluate scores the working allocation.
func (s *Session) Evaluate() model.EvaluationResult {
	// Inputs were validated on entry, so Evaluate cannot fail here.
	res, _ := Evaluate(s.baseIncome, s.bonusIncome, s.alloc)
	return res
}
