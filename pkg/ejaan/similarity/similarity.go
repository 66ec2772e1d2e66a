// Package similarity scores how close two words are on a [0,1] scale.
//
// The default metric is the sequence-matching ratio 2*M/T, where M is the number of
// characters in matching blocks found by recursive longest-common-substring search
// and T is the total length of both words. Edit-distance metrics are provided by
// go-edlib and normalized as 1 - distance/maxLen.
package similarity

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

// Metric scores two strings on [0,1]. Score need not be symmetric; rankers pass the
// dictionary word as a and the queried token as b.
type Metric interface {
	Name() string
	Score(a, b string) float64
}

// Bounded is implemented by metrics that can cheaply bound Score from above.
// Callers may skip the full computation when the bound is below their threshold.
type Bounded interface {
	Metric
	UpperBound(a, b string) float64
}

// Metric names accepted by ByName.
const (
	NameRatio              = "ratio"
	NameLevenshtein        = "levenshtein"
	NameDamerauLevenshtein = "damerau-levenshtein"
	NameJaroWinkler        = "jaro-winkler"
)

// ByName returns the metric registered under name. The empty name selects Ratio.
func ByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameRatio:
		return Ratio{}, nil
	case NameLevenshtein:
		return edlibMetric{name: NameLevenshtein, algo: edlib.Levenshtein}, nil
	case NameDamerauLevenshtein:
		return edlibMetric{name: NameDamerauLevenshtein, algo: edlib.OSADamerauLevenshtein}, nil
	case NameJaroWinkler:
		return edlibMetric{name: NameJaroWinkler, algo: edlib.JaroWinkler}, nil
	}
	return nil, fmt.Errorf("%w: unknown similarity metric %q", internalerr.ErrInvalidConfig, name)
}

// Ratio is the sequence-matching ratio.
type Ratio struct{}

func (Ratio) Name() string { return NameRatio }

// Score returns 2*M/T. Matching blocks are searched left to right in a, so the
// result can depend on argument order. Two empty strings are identical (1.0).
func (Ratio) Score(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(ra, rb)) / float64(total)
}

// UpperBound returns QuickRatio, which never underestimates Score.
func (Ratio) UpperBound(a, b string) float64 {
	if RealQuickRatio(a, b) == 0 {
		return 0
	}
	return QuickRatio(a, b)
}

// QuickRatio bounds Ratio from above using the multiset intersection of characters.
func QuickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	avail := make(map[rune]int, len(rb))
	for _, r := range rb {
		avail[r]++
	}
	matches := 0
	for _, r := range ra {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2.0 * float64(matches) / float64(total)
}

// RealQuickRatio bounds Ratio from above using lengths only.
func RealQuickRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	total := la + lb
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(min(la, lb)) / float64(total)
}

// matchingChars sums the sizes of the matching blocks between a and b: the longest
// common substring, then recursively the blocks to its left and to its right.
func matchingChars(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	total := 0

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return total
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside the given window.
// Among equal-length blocks the one starting earliest in a (then in b) wins.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, bestk := alo, blo, 0
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestk
}

type edlibMetric struct {
	name string
	algo edlib.Algorithm
}

func (m edlibMetric) Name() string { return m.name }

func (m edlibMetric) Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	s, err := edlib.StringsSimilarity(a, b, m.algo)
	if err != nil {
		return 0
	}
	return float64(s)
}
