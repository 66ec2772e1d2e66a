package checker

import (
	"context"
	"sync"

	"github.com/cognicore/ejaan/pkg/ejaan/affix"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/morph"
	"github.com/cognicore/ejaan/pkg/ejaan/suggest"
	"github.com/cognicore/ejaan/pkg/ejaan/textnorm"
)

// Status records whether a token has been checked and with what outcome.
type Status int

const (
	StatusUnchecked Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	}
	return "unchecked"
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome for one token.
type Result struct {
	Raw         string              `json:"raw"`
	Normalized  string              `json:"normalized"`
	Status      Status              `json:"status"`
	MatchedForm string              `json:"matched_form,omitempty"`
	Rule        string              `json:"rule,omitempty"`
	Suggestions suggest.Suggestions `json:"suggestions"`
}

// Valid reports whether the token was accepted.
func (r Result) Valid() bool { return r.Status == StatusValid }

// Config configures a Checker.
type Config struct {
	Workers int // >1 checks tokens in parallel; results keep input order
	Ranker  suggest.Options
}

// Checker runs normalization, validation and suggestion ranking over token sequences.
type Checker struct {
	validator *morph.Validator
	ranker    *suggest.Ranker
	workers   int
}

// New creates a checker over lex. A nil catalog selects affix.Default().
func New(lex *lexicon.Lexicon, cat *affix.Catalog, cfg Config) *Checker {
	if cat == nil {
		cat = affix.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Checker{
		validator: morph.New(lex, cat),
		ranker:    suggest.New(lex, cat, cfg.Ranker),
		workers:   workers,
	}
}

// Check normalizes each raw token, drops those that normalize to "", validates the
// rest and ranks suggestions for the invalid ones. Results are in input order;
// duplicates are checked independently. Cancellation is observed between tokens.
func (c *Checker) Check(ctx context.Context, raw []string) ([]Result, error) {
	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		n := textnorm.Normalize(r)
		if n == "" {
			continue
		}
		results = append(results, Result{Raw: r, Normalized: n})
	}

	if c.workers == 1 || len(results) < 2 {
		for i := range results {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			c.checkOne(&results[i])
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(c.workers, len(results)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// each index is written by exactly one worker
				c.checkOne(&results[i])
			}
		}()
	}

	var err error
feed:
	for i := range results {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

// CheckText tokenizes text into word runs and checks them.
func (c *Checker) CheckText(ctx context.Context, text string) ([]Result, error) {
	return c.Check(ctx, textnorm.Tokenize(text))
}

func (c *Checker) checkOne(res *Result) {
	v := c.validator.Validate(res.Normalized)
	if v.Valid {
		res.Status = StatusValid
		res.MatchedForm = v.MatchedForm
		if v.Rule != nil {
			res.Rule = v.Rule.String()
		}
		return
	}
	res.Status = StatusInvalid
	res.Suggestions = c.ranker.Suggest(res.Normalized)
}

// Misspelled returns the invalid results, keeping their order.
func Misspelled(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == StatusInvalid {
			out = append(out, r)
		}
	}
	return out
}
