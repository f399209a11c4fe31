package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/carryover"
	"github.com/finfrenzy/finfrenzy/internal/model"
)

var _ carryover.Store = (*DB)(nil)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "finfrenzy.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProgressGetSetClear(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.Get(carryover.KeyQuizPoints); err != nil || ok {
		t.Fatalf("Get on empty db: ok=%v err=%v", ok, err)
	}

	if err := db.Set(carryover.KeyQuizPoints, 80); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set(carryover.KeyQuizPoints, 90); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := db.Set(carryover.KeyLevel, 3); err != nil {
		t.Fatalf("Set level: %v", err)
	}

	v, ok, err := db.Get(carryover.KeyQuizPoints)
	if err != nil || !ok || v != 90 {
		t.Fatalf("Get = %v, %v, %v; want 90, true, nil", v, ok, err)
	}

	if err := carryover.ResetProgress(db); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	for _, k := range carryover.ProgressKeys {
		if _, ok, _ := db.Get(k); ok {
			t.Errorf("key %s survived reset", k)
		}
	}
}

func TestBonusIncomeFromDB(t *testing.T) {
	db := openTestDB(t)
	bonus, err := carryover.BonusIncome(db)
	if err != nil || bonus != 0 {
		t.Fatalf("BonusIncome on empty db = %v, %v", bonus, err)
	}
	if err := db.Set(carryover.KeyQuizPoints, 60); err != nil {
		t.Fatal(err)
	}
	bonus, err = carryover.BonusIncome(db)
	if err != nil || bonus != 60 {
		t.Fatalf("BonusIncome = %v, %v; want 60", bonus, err)
	}
}

func TestProgressSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finfrenzy.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Set(carryover.KeyQuizPoints, 100); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	v, ok, err := db.Get(carryover.KeyQuizPoints)
	if err != nil || !ok || v != 100 {
		t.Fatalf("after reopen Get = %v, %v, %v", v, ok, err)
	}
}

func TestHistoryStats(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, score := range []int{40, 90, 70} {
		_, err := db.RecordQuiz(model.QuizResult{
			Score:       score,
			Questions:   10,
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("RecordQuiz: %v", err)
		}
	}
	for _, balanced := range []bool{true, false, true} {
		rec, err := db.RecordEvaluation(model.EvaluationRecord{
			TotalIncome:    1000,
			TotalAllocated: 1000,
			Balanced:       balanced,
		})
		if err != nil {
			t.Fatalf("RecordEvaluation: %v", err)
		}
		if rec.ID == "" || rec.SubmittedAt.IsZero() {
			t.Fatalf("RecordEvaluation did not fill defaults: %+v", rec)
		}
	}

	s, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.QuizzesCompleted != 3 || s.BestScore != 90 {
		t.Errorf("quiz stats = %d runs best %d, want 3 best 90", s.QuizzesCompleted, s.BestScore)
	}
	if s.EvaluationsSubmitted != 3 || s.BalancedBudgets != 2 {
		t.Errorf("evaluation stats = %d/%d, want 3/2", s.EvaluationsSubmitted, s.BalancedBudgets)
	}
	if s.LastQuizAt == nil || !s.LastQuizAt.Equal(base.Add(2*time.Hour)) {
		t.Errorf("LastQuizAt = %v, want %v", s.LastQuizAt, base.Add(2*time.Hour))
	}

	recent, err := db.RecentQuizzes(2)
	if err != nil {
		t.Fatalf("RecentQuizzes: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 70 || recent[1].Score != 90 {
		t.Fatalf("RecentQuizzes = %+v, want scores [70 90]", recent)
	}

	if err := db.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	s, err = db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.QuizzesCompleted != 0 || s.EvaluationsSubmitted != 0 || s.LastQuizAt != nil {
		t.Fatalf("stats after ClearHistory = %+v", s)
	}
}

func TestProgressTimestampsUseSortableLayout(t *testing.T) {
	db := openTestDB(t)
	at := time.Date(2026, 7, 9, 6, 5, 4, 3000, time.UTC)
	db.now = func() time.Time { return at }

	if err := db.Set(carryover.KeyLevel, 2); err != nil {
		t.Fatal(err)
	}
	var stored string
	err := db.db.QueryRow("SELECT updated_at FROM progress WHERE key = ?", carryover.KeyLevel).Scan(&stored)
	if err != nil {
		t.Fatal(err)
	}
	if want := "2026-07-09T06:05:04.000003000Z"; stored != want {
		t.Errorf("updated_at = %q, want %q", stored, want)
	}
	if len(stored) != len(timeLayout) {
		t.Errorf("updated_at %q is not fixed width", stored)
	}
}

func TestRecentQuizzesReportsCorruptTimestamps(t *testing.T) {
	db := openTestDB(t)
	_, err := db.db.Exec(`INSERT INTO quiz_results (id, score, questions, completed_at)
		VALUES ('bad', 50, 10, 'yesterday')`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.RecentQuizzes(5); err == nil {
		t.Fatal("RecentQuizzes accepted an unparseable completed_at")
	}
}
