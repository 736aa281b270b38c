package game

import (
	"sync"

	"github.com/charmbracelet/log"
)

// BestStore persists the best score under a fixed key.
type BestStore interface {
	Best(key string) (int, error)
	PutBest(key string, score int) error
}

// MemoryBest is an in-process BestStore. A nil map is ready to use.
type MemoryBest struct {
	mu     sync.Mutex
	values map[string]int
}

// Best returns the stored value for key, or zero.
func (m *MemoryBest) Best(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// PutBest stores score under key if it beats the current value.
func (m *MemoryBest) PutBest(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]int)
	}
	if score > m.values[key] {
		m.values[key] = score
	}
	return nil
}

// Score tracks the current run's score and the persisted best.
type Score struct {
	current int
	best    int
	key     string
	store   BestStore
	logger  *log.Logger
}

// NewScore loads the best score from store once. A missing or unreadable
// value starts at zero. A nil store keeps the best in memory only.
func NewScore(store BestStore, key string, logger *log.Logger) *Score {
	if store == nil {
		store = &MemoryBest{}
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Score{key: key, store: store, logger: logger}

	best, err := store.Best(key)
	if err != nil {
		logger.Warn("could not load best score", "key", key, "err", err)
	} else if best > 0 {
		s.best = best
	}

	return s
}

// Current returns the score of the current run.
func (s *Score) Current() int { return s.current }

// Best returns the best score seen so far.
func (s *Score) Best() int { return s.best }

// RecordPass adds one passed obstacle to the current score.
func (s *Score) RecordPass() {
	s.current++
}

// Reset zeroes the current score. The best score is kept.
func (s *Score) Reset() {
	s.current = 0
}

// Finalize promotes the current score to best if it is strictly greater
// and persists it. A persist failure is logged and does not affect the
// in-memory best. Returns true when a new best was set.
func (s *Score) Finalize() bool {
	if s.current <= s.best {
		return false
	}

	s.best = s.current
	if err := s.store.PutBest(s.key, s.best); err != nil {
		s.logger.Warn("could not persist best score", "key", s.key, "score", s.best, "err", err)
	}
	return true
}
