package report

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/ejaan/pkg/ejaan/checker"
	"github.com/cognicore/ejaan/pkg/ejaan/suggest"
)

// Report summarizes the misspellings found in one document.
type Report struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Total     int       `json:"total"` // tokens checked
	Entries   []Entry   `json:"entries"`
}

// Entry is one distinct misspelled word.
type Entry struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"` // occurrences in the document
}

// Builder creates reports with monotonic ULID identifiers.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Build de-duplicates the invalid results by normalized form, keeping the order of
// first occurrence.
func (b *Builder) Build(source string, results []checker.Result, now time.Time) Report {
	b.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	r := Report{
		ID:        id,
		Source:    source,
		CreatedAt: now.UTC(),
		Total:     len(results),
		Entries:   []Entry{},
	}

	index := make(map[string]int)
	for _, res := range results {
		if res.Status != checker.StatusInvalid {
			continue
		}
		if i, ok := index[res.Normalized]; ok {
			r.Entries[i].Count++
			continue
		}
		index[res.Normalized] = len(r.Entries)
		r.Entries = append(r.Entries, Entry{
			Word:        res.Normalized,
			Suggestions: res.Suggestions.Words(),
			Count:       1,
		})
	}
	return r
}

// Clean reports whether no misspelling was found.
func (r Report) Clean() bool { return len(r.Entries) == 0 }

// WriteText writes one "word -> suggestions" line per entry.
func WriteText(w io.Writer, r Report) error {
	for _, e := range r.Entries {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", e.Word, e.SuggestionText()); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SuggestionText joins the suggestions, or returns the no-recommendation text.
func (e Entry) SuggestionText() string {
	return suggest.Suggestions{Items: toItems(e.Suggestions)}.String()
}

func toItems(words []string) []suggest.Suggestion {
	items := make([]suggest.Suggestion, len(words))
	for i, w := range words {
		items[i] = suggest.Suggestion{Word: w}
	}
	return items
}
