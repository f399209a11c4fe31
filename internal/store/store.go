// Package store provides SQLite-backed persistence for progress values and
// game history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finfrenzy/finfrenzy/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB is the app database. It satisfies carryover.Store.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the stored value for key. ok is false when the key is absent.
func (d *DB) Get(key string) (float64, bool, error) {
	var v float64
	err := d.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (d *DB) Set(key string, value float64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT OR REPLACE INTO progress (key, value, updated_at)
		VALUES (?, ?, ?)`, key, value, d.stamp())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return tx.Commit()
}

// Clear deletes the given keys in a single transaction.
func (d *DB) Clear(keys ...string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.Exec("DELETE FROM progress WHERE key = ?", k); err != nil {
			return fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// RecordQuiz stores a completed quiz run. Missing ID and timestamp are
// filled in and the stored record is returned.
func (d *DB) RecordQuiz(r model.QuizResult) (model.QuizResult, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CompletedAt.IsZero() {
		r.CompletedAt = d.now()
	}
	_, err := d.db.Exec(`INSERT INTO quiz_results (id, score, questions, completed_at)
		VALUES (?, ?, ?, ?)`,
		r.ID, r.Score, r.Questions, r.CompletedAt.UTC().Format(timeLayout))
	if err != nil {
		return r, fmt.Errorf("recording quiz result: %w", err)
	}
	return r, nil
}

// RecordEvaluation stores a submitted budget evaluation.
func (d *DB) RecordEvaluation(r model.EvaluationRecord) (model.EvaluationRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = d.now()
	}
	balanced := 0
	if r.Balanced {
		balanced = 1
	}
	_, err := d.db.Exec(`INSERT INTO evaluations (id, total_income, total_allocated, balanced, submitted_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.TotalIncome, r.TotalAllocated, balanced, r.SubmittedAt.UTC().Format(timeLayout))
	if err != nil {
		return r, fmt.Errorf("recording evaluation: %w", err)
	}
	return r, nil
}

// RecentQuizzes returns up to limit quiz results, newest first.
func (d *DB) RecentQuizzes(limit int) ([]model.QuizResult, error) {
	rows, err := d.db.Query(`SELECT id, score, questions, completed_at
		FROM quiz_results ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent quizzes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.QuizResult
	for rows.Next() {
		var r model.QuizResult
		var completed string
		if err := rows.Scan(&r.ID, &r.Score, &r.Questions, &completed); err != nil {
			return nil, err
		}
		if r.CompletedAt, err = time.Parse(timeLayout, completed); err != nil {
			return nil, fmt.Errorf("parsing completed_at of quiz %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats summarizes the recorded history.
func (d *DB) Stats() (model.HistoryStats, error) {
	var s model.HistoryStats
	var last sql.NullString

	err := d.db.QueryRow(`SELECT COUNT(*), COALESCE(MAX(score), 0), MAX(completed_at)
		FROM quiz_results`).Scan(&s.QuizzesCompleted, &s.BestScore, &last)
	if err != nil {
		return s, fmt.Errorf("reading quiz stats: %w", err)
	}
	if last.Valid && last.String != "" {
		if t, err := time.Parse(timeLayout, last.String); err == nil {
			s.LastQuizAt = &t
		}
	}

	err = d.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(balanced), 0)
		FROM evaluations`).Scan(&s.EvaluationsSubmitted, &s.BalancedBudgets)
	if err != nil {
		return s, fmt.Errorf("reading evaluation stats: %w", err)
	}
	return s, nil
}

// ClearHistory deletes every quiz result and evaluation.
func (d *DB) ClearHistory() error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM quiz_results"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM evaluations"); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) stamp() string {
	return d.now().UTC().Format(timeLayout)
}
