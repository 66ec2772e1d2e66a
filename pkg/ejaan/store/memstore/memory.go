package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/report"
)

// Store is an in-memory implementation of store.Store for tests and file-only runs.
type Store struct {
	mu      sync.RWMutex
	words   []string
	index   map[string]int
	reports map[string]report.Report
}

// New creates a new in-memory store seeded with words.
func New(words ...string) *Store {
	s := &Store{
		index:   make(map[string]int),
		reports: make(map[string]report.Report),
	}
	s.AddWords(context.Background(), words)
	return s
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Words returns the dictionary in insertion order.
func (s *Store) Words(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.words))
	for _, w := range s.words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out, nil
}

// AddWords inserts words (lowercased, trimmed) and returns how many were new.
func (s *Store) AddWords(ctx context.Context, words []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := s.index[w]; ok {
			continue
		}
		s.index[w] = len(s.words)
		s.words = append(s.words, w)
		added++
	}
	return added, nil
}

// RemoveWord deletes a word. Its slot is blanked so insertion order is kept.
func (s *Store) RemoveWord(ctx context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	word = strings.ToLower(strings.TrimSpace(word))
	i, ok := s.index[word]
	if !ok {
		return fmt.Errorf("word %q: %w", word, internalerr.ErrNotFound)
	}
	s.words[i] = ""
	delete(s.index, word)
	return nil
}

// CountWords returns the dictionary size.
func (s *Store) CountWords(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index), nil
}

// SaveReport stores a copy of r keyed by its ID.
func (s *Store) SaveReport(ctx context.Context, r report.Report) error {
	if r.ID == "" {
		return fmt.Errorf("report without id: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = copyReport(r)
	return nil
}

// GetReport returns a saved report.
func (s *Store) GetReport(ctx context.Context, id string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return report.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	return copyReport(r), nil
}

func copyReport(r report.Report) report.Report {
	entries := make([]report.Entry, len(r.Entries))
	for i, e := range r.Entries {
		sugg := make([]string, len(e.Suggestions))
		copy(sugg, e.Suggestions)
		e.Suggestions = sugg
		entries[i] = e
	}
	r.Entries = entries
	return r
}
