package lexicon

import (
	"os"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Lexicon is an immutable set of canonical word forms.
//
// Design principles:
// - Built once from a word list, never mutated afterwards (Refresh returns a new snapshot)
// - Exact lookup on the lowercase form
// - Stable iteration order (first-seen order of the input), used for tie-breaking
//
// An empty Lexicon is valid: every lookup misses and no suggestion is possible.
type Lexicon struct {
	words   map[string]struct{}
	ordered []string
	longest int
}

// New builds a lexicon from words.
// Entries are trimmed and lowercased; empty strings and duplicates are dropped.
func New(words []string) *Lexicon {
	l := &Lexicon{
		words:   make(map[string]struct{}, len(words)),
		ordered: make([]string, 0, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := l.words[w]; dup {
			continue
		}
		l.words[w] = struct{}{}
		l.ordered = append(l.ordered, w)
		if n := utf8.RuneCountInString(w); n > l.longest {
			l.longest = n
		}
	}
	return l
}

// LoadFromYAML loads a word list from a YAML file.
//
// Expected format:
//
//	words:
//	  - makan
//	  - minum
//	  - rumah
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Words []string `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return New(file.Words), nil
}

// Refresh returns a new snapshot built from words. The receiver is left untouched,
// so readers holding the old snapshot keep a consistent view.
func (l *Lexicon) Refresh(words []string) *Lexicon {
	return New(words)
}

// Contains reports whether word is a known form. The lookup is exact:
// callers are expected to pass normalized (lowercase) tokens.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// All returns every word in first-seen order. The slice is shared; do not modify it.
func (l *Lexicon) All() []string {
	if l == nil {
		return nil
	}
	return l.ordered
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ordered)
}

// Empty reports whether the lexicon has no words.
func (l *Lexicon) Empty() bool { return l.Len() == 0 }

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	if l == nil {
		return LexiconStats{}
	}
	return LexiconStats{
		Words:       len(l.ordered),
		LongestWord: l.longest,
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Words       int // Number of distinct words
	LongestWord int // Length of the longest word, in runes
}

// Holder keeps the current snapshot for concurrent readers.
// Writers replace the snapshot wholesale; nothing is mutated in place.
type Holder struct {
	current atomic.Pointer[Lexicon]
}

// NewHolder creates a holder. A nil lex is stored as an empty lexicon.
func NewHolder(lex *Lexicon) *Holder {
	h := &Holder{}
	h.Swap(lex)
	return h
}

// Current returns the snapshot in effect.
func (h *Holder) Current() *Lexicon {
	return h.current.Load()
}

// Swap installs lex and returns the previous snapshot.
func (h *Holder) Swap(lex *Lexicon) *Lexicon {
	if lex == nil {
		lex = New(nil)
	}
	return h.current.Swap(lex)
}
