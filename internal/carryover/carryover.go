// Package carryover defines the persisted progress values shared between the
// quiz and the budget game. The quiz writes its final score under
// KeyQuizPoints; the budget game reads it back as bonus income.
package carryover

import (
	"fmt"
	"sort"
	"sync"
)

// Progress keys.
const (
	KeyQuizPoints   = "quizPoints"
	KeyLevel        = "level"
	KeyAchievements = "achievements"
	KeyStreak       = "streak"
)

// ProgressKeys are the keys erased by a progress reset.
var ProgressKeys = []string{KeyQuizPoints, KeyLevel, KeyAchievements, KeyStreak}

// Reader reads a persisted scalar. ok is false when the key has no value.
type Reader interface {
	Get(key string) (value float64, ok bool, err error)
}

// Writer persists a scalar.
type Writer interface {
	Set(key string, value float64) error
}

// Store is the full key/value contract used by the app.
type Store interface {
	Reader
	Writer
	Clear(keys ...string) error
}

// BonusIncome returns the carried-over quiz score, or 0 when none is stored.
func BonusIncome(r Reader) (float64, error) {
	if r == nil {
		return 0, nil
	}
	v, ok, err := r.Get(KeyQuizPoints)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", KeyQuizPoints, err)
	}
	if !ok {
		return 0, nil
	}
	return v, nil
}

// ResetProgress erases every progress key.
func ResetProgress(s Store) error {
	if err := s.Clear(ProgressKeys...); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	return nil
}

// Memory is an in-memory Store safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]float64)}
}

// Get implements Reader.
func (m *Memory) Get(key string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Writer.
func (m *Memory) Set(key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Clear implements Store.
func (m *Memory) Clear(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
