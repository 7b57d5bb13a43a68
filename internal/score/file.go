package score

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/ini.v1"
)

const (
	fileSection = "highscore"
	fileKey     = "score"
)

// FileStore keeps the high score in a small ini file:
//
//	[highscore]
//	score = 30
type FileStore struct {
	mu    sync.Mutex
	path  string
	score int
}

// OpenFile reads the file at path, creating it with a zero score when it
// does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.write(0); err != nil {
			return nil, &Error{Op: "open", Path: path, Err: err}
		}
		return s, nil
	case err != nil:
		return nil, &Error{Op: "open", Path: path, Err: err}
	}

	score, err := s.read()
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: err}
	}
	s.score = score
	return s, nil
}

// Load re-reads the file so scores saved by other processes are seen.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, err := s.read()
	if err != nil {
		return 0, &Error{Op: "load", Path: s.path, Err: err}
	}
	s.score = score
	return score, nil
}

func (s *FileStore) Save(score int) error {
	if score < 0 {
		return &Error{Op: "save", Path: s.path, Err: ErrNegativeScore}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another process may have written a better score since we last looked.
	if current, err := s.read(); err == nil {
		s.score = current
	}
	if score <= s.score {
		return nil
	}
	if err := s.write(score); err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	s.score = score
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (int, error) {
	file, err := ini.Load(s.path)
	if err != nil {
		return 0, err
	}
	score, err := file.Section(fileSection).Key(fileKey).Int()
	if err != nil {
		return 0, err
	}
	if score < 0 {
		return 0, ErrNegativeScore
	}
	return score, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *FileStore) write(score int) error {
	file := ini.Empty()
	file.Section(fileSection).Key(fileKey).SetValue(strconv.Itoa(score))

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := file.SaveTo(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
