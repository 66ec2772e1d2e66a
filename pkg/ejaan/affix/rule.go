package affix

import (
	"fmt"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// Kind identifies the shape of an affix rule.
type Kind int

const (
	Prefix Kind = iota
	Suffix
	Infix
	Circumfix
	PrefixSuffix
	NasalPrefix
)

func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Infix:
		return "infix"
	case Circumfix:
		return "circumfix"
	case PrefixSuffix:
		return "prefix+suffix"
	case NasalPrefix:
		return "nasal"
	}
	return "unknown"
}

// Rule is one morphological transformation that recovers a candidate root.
type Rule struct {
	Kind   Kind
	Prefix string // Prefix, Circumfix, PrefixSuffix, NasalPrefix
	Suffix string // Suffix, Circumfix, PrefixSuffix, optional for NasalPrefix
	Infix  string // Infix
	Offset int    // Infix: rune position where the infix must start
	Width  int    // NasalPrefix: runes stripped from the front
	MinLen int    // token must be longer than this many runes (0 = no limit)
}

// Apply strips the affix from token. It returns false when the token does not carry
// the affix, is too short for it, or when nothing would remain after stripping.
func (r Rule) Apply(token string) (string, bool) {
	if r.MinLen > 0 && utf8.RuneCountInString(token) <= r.MinLen {
		return "", false
	}

	var root string
	switch r.Kind {
	case Prefix:
		if !strings.HasPrefix(token, r.Prefix) {
			return "", false
		}
		root = token[len(r.Prefix):]

	case Suffix:
		if !strings.HasSuffix(token, r.Suffix) {
			return "", false
		}
		root = token[:len(token)-len(r.Suffix)]

	case Circumfix, PrefixSuffix:
		// prefix and suffix must not overlap
		if len(token) <= len(r.Prefix)+len(r.Suffix) {
			return "", false
		}
		if !strings.HasPrefix(token, r.Prefix) || !strings.HasSuffix(token, r.Suffix) {
			return "", false
		}
		root = token[len(r.Prefix) : len(token)-len(r.Suffix)]

	case Infix:
		runes := []rune(token)
		end := r.Offset + utf8.RuneCountInString(r.Infix)
		if r.Offset < 0 || end > len(runes) || string(runes[r.Offset:end]) != r.Infix {
			return "", false
		}
		root = string(runes[:r.Offset]) + string(runes[end:])

	case NasalPrefix:
		if !strings.HasPrefix(token, r.Prefix) {
			return "", false
		}
		runes := []rune(token)
		if len(runes) <= r.Width {
			return "", false
		}
		root = string(runes[r.Width:])
		if r.Suffix != "" {
			if len(root) <= len(r.Suffix) || !strings.HasSuffix(root, r.Suffix) {
				return "", false
			}
			root = root[:len(root)-len(r.Suffix)]
		}

	default:
		return "", false
	}

	if root == "" {
		return "", false
	}
	return root, true
}

// String renders the rule for reports, e.g. "prefix+suffix di-...-kan".
func (r Rule) String() string {
	switch r.Kind {
	case Prefix:
		return fmt.Sprintf("prefix %s-", r.Prefix)
	case Suffix:
		return fmt.Sprintf("suffix -%s", r.Suffix)
	case Infix:
		return fmt.Sprintf("infix -%s-@%d", r.Infix, r.Offset)
	case Circumfix, PrefixSuffix:
		return fmt.Sprintf("%s %s-...-%s", r.Kind, r.Prefix, r.Suffix)
	case NasalPrefix:
		if r.Suffix != "" {
			return fmt.Sprintf("nasal %s/%d...-%s", r.Prefix, r.Width, r.Suffix)
		}
		return fmt.Sprintf("nasal %s/%d", r.Prefix, r.Width)
	}
	return r.Kind.String()
}

// Candidate is a root recovered by a single rule.
type Candidate struct {
	Root string
	Rule Rule
}

// Generate applies every rule to token once (no recursion) and returns the distinct
// roots in rule order. The first rule producing a root is the one recorded for it.
func Generate(rules []Rule, token string) []Candidate {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []Candidate
	for _, r := range rules {
		root, ok := r.Apply(token)
		if !ok {
			continue
		}
		if !seen.Add(root) {
			continue
		}
		out = append(out, Candidate{Root: root, Rule: r})
	}
	return out
}
