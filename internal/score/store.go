// Package score persists the single high-score record.
package score

import (
	"errors"
	"fmt"
)

// Store persists one non-negative high score across process restarts.
// Implementations are safe for concurrent use.
type Store interface {
	// Load returns the persisted high score, or 0 on first run.
	Load() (int, error)
	// Save persists score only if it beats the stored value; otherwise it is
	// a no-op.
	Save(score int) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindIni    = "ini"
	KindMemory = "memory"
)

var (
	ErrNegativeScore = errors.New("score: negative score")
	ErrUnknownKind   = errors.New("score: unknown store kind")
	ErrClosed        = errors.New("score: store closed")
)

// Error reports a persistence failure.
type Error struct {
	Op   string // load, save, open
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("score %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("score %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Open returns the store of the given kind at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case KindSQLite:
		return OpenSQLite(path)
	case KindIni:
		return OpenFile(path)
	case KindMemory:
		return NewMemoryStore(0), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
