// Package history keeps a JSON transcript of answered questions.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxEntries bounds the transcript; older entries are dropped first.
const MaxEntries = 500

// Entry is one answered question.
type Entry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Intent    string    `json:"intent"`
	Path      string    `json:"path"`
	Statement string    `json:"statement,omitempty"`
	Answer    string    `json:"answer"`
	Backend   string    `json:"backend,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists history to a JSON file with an append-then-trim strategy.
// A Store with an empty path keeps entries in memory only.
type Store struct {
	path string
	mu   sync.Mutex
	list []Entry
}

// Open loads the transcript at path. A missing file starts an empty history.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.list); err != nil {
			return nil, fmt.Errorf("parse history %s: %w", path, err)
		}
	}
	return s, nil
}

// Append stamps e with an ID and time if missing, adds it and saves.
func (s *Store) Append(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = append(s.list, e)
	if len(s.list) > MaxEntries {
		s.list = s.list[len(s.list)-MaxEntries:]
	}
	return e, s.save()
}

// Latest returns up to n most recent entries (newest first). n <= 0 returns
// everything.
func (s *Store) Latest(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.list) {
		n = len(s.list)
	}
	out := make([]Entry, 0, n)
	for i := len(s.list) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.list[i])
	}
	return out
}

// Get returns entry by ID.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].ID == id {
			return s.list[i], true
		}
	}
	return Entry{}, false
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
