package suggest

import (
	"sort"
	"strings"

	"github.com/cognicore/ejaan/pkg/ejaan/affix"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
	"github.com/cognicore/ejaan/pkg/ejaan/similarity"
)

// NoRecommendationText is shown when no dictionary word is close enough.
const NoRecommendationText = "Tidak ada rekomendasi"

// Defaults for Options.
const (
	DefaultMaxResults    = 3
	DefaultMinSimilarity = 0.6
)

// Options configures the ranker.
type Options struct {
	MaxResults    int               // cap on returned suggestions (default 3)
	MinSimilarity float64           // candidates below this score are dropped (default 0.6)
	Metric        similarity.Metric // default similarity.Ratio
}

// DefaultOptions returns the standard ranking options.
func DefaultOptions() Options {
	return Options{
		MaxResults:    DefaultMaxResults,
		MinSimilarity: DefaultMinSimilarity,
		Metric:        similarity.Ratio{},
	}
}

// withDefaults fills unset (zero or negative) fields.
func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	if o.Metric == nil {
		o.Metric = similarity.Ratio{}
	}
	return o
}

// Suggestion is one dictionary candidate with its similarity to the token.
type Suggestion struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
}

// Suggestions is the ranked outcome for one token. An empty Items list is the
// explicit "no recommendation" answer; it only exists after ranking has run.
type Suggestions struct {
	Items    []Suggestion `json:"items"`
	Fallback bool         `json:"fallback,omitempty"` // found via prefix-stripped query
}

// NoRecommendation reports whether ranking found nothing above the threshold.
func (s Suggestions) NoRecommendation() bool { return len(s.Items) == 0 }

// Words returns the suggested words in rank order.
func (s Suggestions) Words() []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Word
	}
	return out
}

// String joins the words with ", ", or returns NoRecommendationText.
func (s Suggestions) String() string {
	if s.NoRecommendation() {
		return NoRecommendationText
	}
	return strings.Join(s.Words(), ", ")
}

// Ranker proposes close dictionary words for invalid tokens.
// It is read-only after construction and safe for concurrent use.
type Ranker struct {
	lex  *lexicon.Lexicon
	cat  *affix.Catalog
	opts Options
}

// New creates a ranker. A nil catalog selects affix.Default().
func New(lex *lexicon.Lexicon, cat *affix.Catalog, opts Options) *Ranker {
	if cat == nil {
		cat = affix.Default()
	}
	return &Ranker{lex: lex, cat: cat, opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Ranker) Options() Options { return r.opts }

type scored struct {
	idx   int // position in lexicon order, breaks ties
	word  string
	score float64
}

// Suggest ranks dictionary words by similarity to token. When nothing clears the
// threshold, each prefix-stripped remainder of token is scanned and the results are
// merged, keeping the best score per word.
func (r *Ranker) Suggest(token string) Suggestions {
	if token == "" || r.lex.Empty() {
		return Suggestions{}
	}

	if hits := r.scan(token); len(hits) > 0 {
		return Suggestions{Items: r.top(hits)}
	}

	best := make(map[int]scored)
	for _, rest := range r.cat.StripPrefixes(token) {
		for _, h := range r.scan(rest) {
			if prev, ok := best[h.idx]; !ok || h.score > prev.score {
				best[h.idx] = h
			}
		}
	}
	if len(best) == 0 {
		return Suggestions{}
	}

	merged := make([]scored, 0, len(best))
	for _, h := range best {
		merged = append(merged, h)
	}
	return Suggestions{Items: r.top(merged), Fallback: true}
}

// scan scores every lexicon entry against query and keeps those at or above threshold.
// Bounded metrics skip entries whose upper bound is already below the threshold.
func (r *Ranker) scan(query string) []scored {
	bounded, _ := r.opts.Metric.(similarity.Bounded)
	threshold := r.opts.MinSimilarity

	var hits []scored
	for i, w := range r.lex.All() {
		// dictionary word first: the ratio is not symmetric
		if bounded != nil && bounded.UpperBound(w, query) < threshold {
			continue
		}
		s := r.opts.Metric.Score(w, query)
		if s >= threshold {
			hits = append(hits, scored{idx: i, word: w, score: s})
		}
	}
	return hits
}

// top sorts by score descending, lexicon order ascending, and truncates.
func (r *Ranker) top(hits []scored) []Suggestion {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	if len(hits) > r.opts.MaxResults {
		hits = hits[:r.opts.MaxResults]
	}

	out := make([]Suggestion, len(hits))
	for i, h := range hits {
		out[i] = Suggestion{Word: h.word, Similarity: h.score}
	}
	return out
}
