// Package morph decides whether a normalized token is a valid Indonesian word form.
//
// A token is valid when it is a dictionary word, or when stripping one affix pattern
// from the catalog (prefix, suffix, infix, circumfix, prefix+suffix, nasal prefix)
// leaves a dictionary word. Stripping is a single level: recovered roots are never
// decomposed further.
//
// The catalog is a fixed-length heuristic. It can over-strip short words and miss
// irregular assimilated forms; both are accepted in exchange for constant work per rule.
package morph

import (
	"github.com/cognicore/ejaan/pkg/ejaan/affix"
	"github.com/cognicore/ejaan/pkg/ejaan/lexicon"
)

// Validator checks tokens against a lexicon. It holds no mutable state and is safe
// for concurrent use.
type Validator struct {
	lex   *lexicon.Lexicon
	rules []affix.Rule
}

// Result explains a validation decision.
type Result struct {
	Token       string
	Valid       bool
	MatchedForm string      // lexicon entry that satisfied validity
	Rule        *affix.Rule // nil for a direct hit
}

// New creates a validator. A nil catalog selects affix.Default().
func New(lex *lexicon.Lexicon, cat *affix.Catalog) *Validator {
	if cat == nil {
		cat = affix.Default()
	}
	return &Validator{
		lex:   lex,
		rules: cat.Rules(),
	}
}

// IsValid reports whether token is a dictionary word or an affixed form of one.
func (v *Validator) IsValid(token string) bool {
	return v.Validate(token).Valid
}

// Validate returns the decision for token together with the form that matched.
// The first candidate root in rule order that the lexicon contains wins.
func (v *Validator) Validate(token string) Result {
	res := Result{Token: token}
	if token == "" {
		return res
	}

	if v.lex.Contains(token) {
		res.Valid = true
		res.MatchedForm = token
		return res
	}

	if v.lex.Empty() {
		return res
	}

	for _, c := range affix.Generate(v.rules, token) {
		if v.lex.Contains(c.Root) {
			rule := c.Rule
			res.Valid = true
			res.MatchedForm = c.Root
			res.Rule = &rule
			return res
		}
	}
	return res
}
