package quiz

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/model"
)

func newTestSession(t *testing.T) (*Session, *carryover.Memory) {
	t.Helper()
	store := carryover.NewMemory()
	s, err := NewSession(DefaultBank(), store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, store
}

func answer(t *testing.T, s *Session, option string) model.Verdict {
	t.Helper()
	if err := s.SelectAnswer(option); err != nil {
		t.Fatalf("SelectAnswer(%q): %v", option, err)
	}
	v, err := s.SubmitAnswer()
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return v
}

func wrongOption(q model.Question) string {
	for _, o := range q.Options {
		if o != q.CorrectAnswer {
			return o
		}
	}
	return ""
}

func TestDefaultBankShape(t *testing.T) {
	bank := DefaultBank()
	if len(bank) != 10 {
		t.Fatalf("bank has %d questions, want 10", len(bank))
	}
	for i, q := range bank {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if !q.HasOption(q.CorrectAnswer) {
			t.Errorf("question %d: correct answer %q not among options", i, q.CorrectAnswer)
		}
	}

	bank[0].Options[0] = "mutated"
	if DefaultBank()[0].Options[0] == "mutated" {
		t.Fatal("DefaultBank returned shared option storage")
	}
}

func TestAllCorrectRoundTrip(t *testing.T) {
	s, store := newTestSession(t)
	n := s.Len()

	advances := 0
	for {
		v := answer(t, s, s.Current().CorrectAnswer)
		if !v.Correct {
			t.Fatalf("question %d scored incorrect", s.Index())
		}
		if v.Explanation != "" {
			t.Errorf("correct verdict carries explanation %q", v.Explanation)
		}
		if s.IsLast() {
			break
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		advances++
	}

	if advances != n-1 {
		t.Fatalf("advanced %d times, want %d", advances, n-1)
	}
	if s.Score() != n*PointsPerCorrect {
		t.Fatalf("score = %d, want %d", s.Score(), n*PointsPerCorrect)
	}
	if _, ok, _ := store.Get(carryover.KeyQuizPoints); ok {
		t.Fatal("score persisted before the final advance")
	}

	if err := s.Advance(); err != nil {
		t.Fatalf("final Advance: %v", err)
	}
	if s.State() != Completed {
		t.Fatalf("state = %s, want completed", s.State())
	}
	got, ok, err := store.Get(carryover.KeyQuizPoints)
	if err != nil || !ok {
		t.Fatalf("stored score missing: ok=%v err=%v", ok, err)
	}
	if got != float64(n*PointsPerCorrect) {
		t.Fatalf("stored score = %v, want %d", got, n*PointsPerCorrect)
	}
}

func TestIncorrectAnswerShowsExplanation(t *testing.T) {
	s, _ := newTestSession(t)
	q := s.Current()

	v := answer(t, s, wrongOption(q))
	if v.Correct {
		t.Fatal("wrong option scored correct")
	}
	if v.Explanation != q.Explanation {
		t.Errorf("Explanation = %q, want %q", v.Explanation, q.Explanation)
	}
	if v.CorrectAnswer != q.CorrectAnswer {
		t.Errorf("CorrectAnswer = %q, want %q", v.CorrectAnswer, q.CorrectAnswer)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
}

func TestSubmitTwiceScoresOnce(t *testing.T) {
	s, _ := newTestSession(t)
	first := answer(t, s, s.Current().CorrectAnswer)

	second, err := s.SubmitAnswer()
	if err != nil {
		t.Fatalf("second SubmitAnswer: %v", err)
	}
	if s.Score() != PointsPerCorrect {
		t.Fatalf("score = %d after double submit, want %d", s.Score(), PointsPerCorrect)
	}
	if second != first {
		t.Fatalf("second verdict %+v differs from first %+v", second, first)
	}
}

func TestPreconditionViolations(t *testing.T) {
	s, _ := newTestSession(t)

	if _, err := s.SubmitAnswer(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("submit without selection: err = %v, want ErrNoSelection", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("advance before submit: err = %v, want ErrNotAnswered", err)
	}
	if err := s.SelectAnswer("not an option"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("select unknown option: err = %v, want ErrUnknownOption", err)
	}

	answer(t, s, s.Current().CorrectAnswer)
	if err := s.SelectAnswer(s.Current().Options[1]); !errors.Is(err, ErrAnswerPending) {
		t.Errorf("select while pending: err = %v, want ErrAnswerPending", err)
	}
	if sel, _ := s.Selected(); sel != s.Current().CorrectAnswer {
		t.Errorf("selection changed to %q while answer pending", sel)
	}
}

func TestAdvanceClearsSelection(t *testing.T) {
	s, _ := newTestSession(t)
	answer(t, s, s.Current().CorrectAnswer)
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if s.Index() != 1 || s.State() != InProgress {
		t.Fatalf("after advance: index=%d state=%s", s.Index(), s.State())
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("selection survived advance")
	}
	if _, ok := s.Verdict(); ok {
		t.Fatal("verdict survived advance")
	}
}

func TestResetFromAnyState(t *testing.T) {
	steps := []struct {
		name string
		run  func(t *testing.T, s *Session)
	}{
		{"fresh", func(*testing.T, *Session) {}},
		{"selected", func(t *testing.T, s *Session) {
			if err := s.SelectAnswer(s.Current().Options[0]); err != nil {
				t.Fatal(err)
			}
		}},
		{"awaiting advance", func(t *testing.T, s *Session) {
			answer(t, s, s.Current().CorrectAnswer)
		}},
		{"mid quiz", func(t *testing.T, s *Session) {
			for i := 0; i < 4; i++ {
				answer(t, s, s.Current().CorrectAnswer)
				if err := s.Advance(); err != nil {
					t.Fatal(err)
				}
			}
		}},
		{"completed", func(t *testing.T, s *Session) {
			for {
				answer(t, s, s.Current().CorrectAnswer)
				if err := s.Advance(); err != nil {
					t.Fatal(err)
				}
				if s.State() == Completed {
					return
				}
			}
		}},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestSession(t)
			tt.run(t, s)
			stored, hadStored, _ := store.Get(carryover.KeyQuizPoints)

			s.Reset()
			if s.Index() != 0 || s.Score() != 0 || s.State() != InProgress {
				t.Fatalf("after Reset: index=%d score=%d state=%s", s.Index(), s.Score(), s.State())
			}
			if _, ok := s.Selected(); ok {
				t.Fatal("selection survived Reset")
			}

			got, ok, _ := store.Get(carryover.KeyQuizPoints)
			if ok != hadStored || got != stored {
				t.Fatalf("Reset changed stored bonus: %v/%v -> %v/%v", stored, hadStored, got, ok)
			}
		})
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Set(string, float64) error { return f.err }

func TestFinalAdvanceKeepsStateWhenStoreFails(t *testing.T) {
	broken := errors.New("disk full")
	bank := DefaultBank()[:1]
	s, err := NewSession(bank, failingWriter{err: broken})
	if err != nil {
		t.Fatal(err)
	}

	answer(t, s, bank[0].CorrectAnswer)
	if err := s.Advance(); !errors.Is(err, broken) {
		t.Fatalf("Advance err = %v, want wrapped %v", err, broken)
	}
	if s.State() != AwaitingAdvance {
		t.Fatalf("state = %s, want awaiting-advance", s.State())
	}
	if s.Score() != PointsPerCorrect {
		t.Fatalf("score = %d, want %d", s.Score(), PointsPerCorrect)
	}
}

func TestCompletedRejectsFurtherPlay(t *testing.T) {
	bank := DefaultBank()[:1]
	s, err := NewSession(bank, nil)
	if err != nil {
		t.Fatal(err)
	}
	answer(t, s, bank[0].CorrectAnswer)
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}

	if err := s.SelectAnswer(bank[0].CorrectAnswer); !errors.Is(err, ErrCompleted) {
		t.Errorf("SelectAnswer err = %v, want ErrCompleted", err)
	}
	if _, err := s.SubmitAnswer(); !errors.Is(err, ErrCompleted) {
		t.Errorf("SubmitAnswer err = %v, want ErrCompleted", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrCompleted) {
		t.Errorf("Advance err = %v, want ErrCompleted", err)
	}
}

func TestNewSessionValidatesBank(t *testing.T) {
	if _, err := NewSession(nil, nil); !errors.Is(err, ErrEmptyBank) {
		t.Errorf("empty bank err = %v, want ErrEmptyBank", err)
	}
	bad := []model.Question{{
		Prompt:        "?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "e",
	}}
	if _, err := NewSession(bad, nil); !errors.Is(err, ErrInvalidBank) {
		t.Errorf("invalid bank err = %v, want ErrInvalidBank", err)
	}
}

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

func TestPickTip(t *testing.T) {
	if got := PickTip(Tips, fixedSource(2)); got != Tips[2] {
		t.Errorf("PickTip = %q, want %q", got, Tips[2])
	}
	if got := PickTip(nil, fixedSource(0)); got != FallbackTip {
		t.Errorf("PickTip(nil) = %q, want fallback", got)
	}

	r := rand.New(rand.NewPCG(1, 2))
	want := PickTip(Tips, rand.New(rand.NewPCG(1, 2)))
	if got := PickTip(Tips, r); got != want {
		t.Errorf("seeded PickTip not deterministic: %q vs %q", got, want)
	}
}
