package affix

import (
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

// Pair is a prefix/suffix combination applied together.
type Pair struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// Nasal describes an assimilating prefix approximated by fixed-length stripping:
// "pe" with widths 2, 3 and 4 covers pe-, pem-/pen-, and peng-/peny-.
type Nasal struct {
	Prefix string `yaml:"prefix"`
	Widths []int  `yaml:"widths"`
}

// Catalog is the affix data table. The rule order derived from it is fixed:
// prefixes, suffixes, infixes, circumfixes, prefix+suffix pairs, nasal forms.
type Catalog struct {
	Prefixes    []string `yaml:"prefixes"`
	Suffixes    []string `yaml:"suffixes"`
	Infixes     []string `yaml:"infixes"`
	InfixMinLen int      `yaml:"infix_min_len"`
	Circumfixes []Pair   `yaml:"circumfixes"`
	Nasals      []Nasal  `yaml:"nasals"`
}

// infix positions tried: at the token start, and after the root-initial consonant
var infixOffsets = []int{0, 1}

// Default returns the standard Indonesian affix catalog.
func Default() *Catalog {
	return &Catalog{
		Prefixes:    []string{"ber", "di", "ter", "me", "pe", "ke", "se"},
		Suffixes:    []string{"kan", "an", "i", "nya"},
		Infixes:     []string{"el", "em", "er", "in"},
		InfixMinLen: 4,
		Circumfixes: []Pair{
			{"ber", "an"},
			{"ke", "an"},
			{"pe", "an"},
			{"se", "nya"},
			{"di", "kan"},
			{"me", "kan"},
		},
		Nasals: []Nasal{
			{Prefix: "pe", Widths: []int{2, 3, 4}},
		},
	}
}

// LoadCatalog reads a catalog from a YAML file.
//
// Expected format:
//
//	prefixes: [ber, di, ter, me, pe, ke, se]
//	suffixes: [kan, an, i, nya]
//	infixes: [el, em, er, in]
//	infix_min_len: 4
//	circumfixes:
//	  - {prefix: ber, suffix: an}
//	nasals:
//	  - {prefix: pe, widths: [2, 3, 4]}
//
// Entries are lowercased. The catalog is validated before it is returned.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.lower()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) lower() {
	for _, list := range [][]string{c.Prefixes, c.Suffixes, c.Infixes} {
		for i := range list {
			list[i] = strings.ToLower(strings.TrimSpace(list[i]))
		}
	}
	for i := range c.Circumfixes {
		c.Circumfixes[i].Prefix = strings.ToLower(strings.TrimSpace(c.Circumfixes[i].Prefix))
		c.Circumfixes[i].Suffix = strings.ToLower(strings.TrimSpace(c.Circumfixes[i].Suffix))
	}
	for i := range c.Nasals {
		c.Nasals[i].Prefix = strings.ToLower(strings.TrimSpace(c.Nasals[i].Prefix))
	}
}

// Validate rejects catalogs containing empty affixes or non-positive strip widths.
func (c *Catalog) Validate() error {
	check := func(kind string, list []string) error {
		for i, a := range list {
			if a == "" {
				return fmt.Errorf("%w: empty %s at index %d", internalerr.ErrInvalidConfig, kind, i)
			}
		}
		return nil
	}
	if err := check("prefix", c.Prefixes); err != nil {
		return err
	}
	if err := check("suffix", c.Suffixes); err != nil {
		return err
	}
	if err := check("infix", c.Infixes); err != nil {
		return err
	}
	if c.InfixMinLen < 0 {
		return fmt.Errorf("%w: negative infix_min_len", internalerr.ErrInvalidConfig)
	}
	for i, p := range c.Circumfixes {
		if p.Prefix == "" || p.Suffix == "" {
			return fmt.Errorf("%w: incomplete circumfix at index %d", internalerr.ErrInvalidConfig, i)
		}
	}
	for i, n := range c.Nasals {
		if n.Prefix == "" {
			return fmt.Errorf("%w: empty nasal prefix at index %d", internalerr.ErrInvalidConfig, i)
		}
		for _, w := range n.Widths {
			if w <= 0 {
				return fmt.Errorf("%w: nasal %q width %d", internalerr.ErrInvalidConfig, n.Prefix, w)
			}
		}
	}
	return nil
}

// Rules expands the catalog into its ordered rule list.
func (c *Catalog) Rules() []Rule {
	var rules []Rule

	for _, p := range c.Prefixes {
		rules = append(rules, Rule{Kind: Prefix, Prefix: p})
	}
	for _, s := range c.Suffixes {
		rules = append(rules, Rule{Kind: Suffix, Suffix: s})
	}
	for _, in := range c.Infixes {
		for _, off := range infixOffsets {
			rules = append(rules, Rule{Kind: Infix, Infix: in, Offset: off, MinLen: c.InfixMinLen})
		}
	}
	for _, p := range c.Circumfixes {
		rules = append(rules, Rule{Kind: Circumfix, Prefix: p.Prefix, Suffix: p.Suffix})
	}
	for _, p := range c.Prefixes {
		for _, s := range c.Suffixes {
			rules = append(rules, Rule{Kind: PrefixSuffix, Prefix: p, Suffix: s})
		}
	}
	for _, n := range c.Nasals {
		for _, w := range n.Widths {
			rules = append(rules, Rule{Kind: NasalPrefix, Prefix: n.Prefix, Width: w})
		}
		for _, w := range n.Widths {
			for _, s := range c.Suffixes {
				rules = append(rules, Rule{Kind: NasalPrefix, Prefix: n.Prefix, Width: w, Suffix: s})
			}
		}
	}

	return rules
}

// Candidates returns the distinct roots obtainable from token with one rule.
func (c *Catalog) Candidates(token string) []Candidate {
	return Generate(c.Rules(), token)
}

// StripPrefixes returns the distinct non-empty remainders left after removing each
// catalog prefix that token starts with.
func (c *Catalog) StripPrefixes(token string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []string
	for _, p := range c.Prefixes {
		if len(token) <= len(p) || !strings.HasPrefix(token, p) {
			continue
		}
		rest := token[len(p):]
		if seen.Add(rest) {
			out = append(out, rest)
		}
	}
	return out
}
