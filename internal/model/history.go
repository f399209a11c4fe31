package model

import "time"

// QuizResult records a completed quiz run.
type QuizResult struct {
	ID          string    `json:"id" yaml:"id"`
	Score       int       `json:"score" yaml:"score"`
	Questions   int       `json:"questions" yaml:"questions"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
}

// EvaluationRecord records one submitted budget allocation.
type EvaluationRecord struct {
	ID             string
	TotalIncome    float64
	TotalAllocated float64
	Balanced       bool
	SubmittedAt    time.Time
}

// HistoryStats summarizes recorded quiz runs and budget submissions.
type HistoryStats struct {
	QuizzesCompleted     int        `json:"quizzes_completed" yaml:"quizzes_completed"`
	BestScore            int        `json:"best_score" yaml:"best_score"`
	EvaluationsSubmitted int        `json:"evaluations_submitted" yaml:"evaluations_submitted"`
	BalancedBudgets      int        `json:"balanced_budgets" yaml:"balanced_budgets"`
	LastQuizAt           *time.Time `json:"last_quiz_at,omitempty" yaml:"last_quiz_at,omitempty"`
}
