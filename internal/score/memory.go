package score

import "sync"

// MemoryStore keeps the high score in process memory. It is the fallback
// when the durable store cannot be opened, and the test double.
type MemoryStore struct {
	mu     sync.Mutex
	score  int
	saves  int
	closed bool
}

// NewMemoryStore returns a store holding initial.
func NewMemoryStore(initial int) *MemoryStore {
	if initial < 0 {
		initial = 0
	}
	return &MemoryStore{score: initial}
}

func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, &Error{Op: "load", Err: ErrClosed}
	}
	return m.score, nil
}

func (m *MemoryStore) Save(score int) error {
	if score < 0 {
		return &Error{Op: "save", Err: ErrNegativeScore}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &Error{Op: "save", Err: ErrClosed}
	}
	if score > m.score {
		m.score = score
		m.saves++
	}
	return nil
}

// Saves returns how many Save calls changed the stored value.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
