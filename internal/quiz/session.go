// Package quiz runs the multiple-choice finance quiz.
//
// A Session walks a fixed question bank one question at a time. Each
// question goes through select, submit and advance; the final advance stores
// the score in the carryover store so the next budget session receives it as
// bonus income.
package quiz

import (
	"errors"
	"fmt"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/model"
)

// PointsPerCorrect is awarded for each correct answer.
const PointsPerCorrect = 10

// State is the session's position in the question lifecycle.
type State int

const (
	// InProgress waits for an answer to the current question.
	InProgress State = iota
	// AwaitingAdvance holds a scored answer whose feedback is pending.
	AwaitingAdvance
	// Completed is terminal until Reset.
	Completed
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case AwaitingAdvance:
		return "awaiting-advance"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Caller-contract violations.
var (
	ErrEmptyBank     = errors.New("quiz: question bank is empty")
	ErrInvalidBank   = errors.New("quiz: correct answer is not one of the options")
	ErrNoSelection   = errors.New("quiz: no answer selected")
	ErrAnswerPending = errors.New("quiz: answer already submitted for this question")
	ErrNotAnswered   = errors.New("quiz: advance before submitting an answer")
	ErrCompleted     = errors.New("quiz: session already completed")
	ErrUnknownOption = errors.New("quiz: option is not a choice for this question")
)

// Session is a single pass through a question bank. It is not safe for
// concurrent use.
type Session struct {
	questions []model.Question
	sink      carryover.Writer

	index    int
	score    int
	selected string
	hasSel   bool
	verdict  *model.Verdict
	state    State
}

// NewSession validates the bank and starts at the first question. sink
// receives the final score; it may be nil, in which case nothing is
// persisted.
func NewSession(questions []model.Question, sink carryover.Writer) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	for i, q := range questions {
		if !q.HasOption(q.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d %q", ErrInvalidBank, i+1, q.Prompt)
		}
	}
	return &Session{
		questions: questions,
		sink:      sink,
	}, nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Index returns the zero-based index of the current question.
func (s *Session) Index() int { return s.index }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Len returns the number of questions in the bank.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the question being answered.
func (s *Session) Current() model.Question { return s.questions[s.index] }

// Selected returns the tentative choice, if any.
func (s *Session) Selected() (string, bool) { return s.selected, s.hasSel }

// Verdict returns the verdict of the current question once it is scored.
func (s *Session) Verdict() (model.Verdict, bool) {
	if s.verdict == nil {
		return model.Verdict{}, false
	}
	return *s.verdict, true
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// SelectAnswer records a tentative choice for the current question.
func (s *Session) SelectAnswer(option string) error {
	switch s.state {
	case Completed:
		return ErrCompleted
	case AwaitingAdvance:
		return ErrAnswerPending
	}
	if !s.Current().HasOption(option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	s.selected = option
	s.hasSel = true
	return nil
}

// SubmitAnswer scores the selected option. Submitting again before Advance
// returns the recorded verdict without scoring twice.
func (s *Session) SubmitAnswer() (model.Verdict, error) {
	switch s.state {
	case Completed:
		return model.Verdict{}, ErrCompleted
	case AwaitingAdvance:
		return *s.verdict, nil
	}
	if !s.hasSel {
		return model.Verdict{}, ErrNoSelection
	}

	q := s.Current()
	v := model.Verdict{
		Selected:      s.selected,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       s.selected == q.CorrectAnswer,
	}
	if v.Correct {
		s.score += PointsPerCorrect
	} else {
		v.Explanation = q.Explanation
	}
	s.verdict = &v
	s.state = AwaitingAdvance
	return v, nil
}

// Advance moves past a scored question. On the last question it stores the
// score and completes the session; if the store fails the session stays
// where it was and the error is returned.
func (s *Session) Advance() error {
	switch s.state {
	case Completed:
		return ErrCompleted
	case InProgress:
		return ErrNotAnswered
	}

	if s.IsLast() {
		if s.sink != nil {
			if err := s.sink.Set(carryover.KeyQuizPoints, float64(s.score)); err != nil {
				return fmt.Errorf("quiz: saving score: %w", err)
			}
		}
		s.state = Completed
		return nil
	}

	s.index++
	s.clearAnswer()
	s.state = InProgress
	return nil
}

// Reset returns to the first question with a zero score. The stored bonus
// is left untouched.
func (s *Session) Reset() {
	s.index = 0
	s.score = 0
	s.clearAnswer()
	s.state = InProgress
}

func (s *Session) clearAnswer() {
	s.selected = ""
	s.hasSel = false
	s.verdict = nil
}
