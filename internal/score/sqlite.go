package score

import (
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	createTable = `CREATE TABLE IF NOT EXISTS HighScore (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	score INTEGER NOT NULL
)`
	seedRow     = `INSERT INTO HighScore (score) SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM HighScore)`
	selectScore = `SELECT score FROM HighScore ORDER BY id LIMIT 1`
	updateScore = `UPDATE HighScore SET score = ? WHERE score < ?`
)

// SQLiteStore keeps the high score in a single-row sqlite table.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and makes sure
// the record exists. Opening an existing database never resets it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	// One connection: sqlite serialises writers anyway, and the store is
	// shared by every session of the process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	if _, err := db.Exec(seedRow); err != nil {
		db.Close()
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var score int
	err := s.db.QueryRow(selectScore).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, &Error{Op: "load", Path: s.path, Err: err}
	}
	return score, nil
}

func (s *SQLiteStore) Save(score int) error {
	if score < 0 {
		return &Error{Op: "save", Path: s.path, Err: ErrNegativeScore}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(updateScore, score, score); err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
