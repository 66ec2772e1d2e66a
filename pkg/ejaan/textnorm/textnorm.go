package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize turns a raw token into its lookup form: NFC-composed, lowercased, with
// every non-letter removed (punctuation, digits, symbols, underscores, spaces).
// It never fails; a token made only of such characters normalizes to "".
func Normalize(raw string) string {
	s := norm.NFC.String(raw)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Tokenize splits text into maximal runs of word characters (letters, digits,
// underscore, combining marks). Tokens keep their raw form.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Fields splits text on whitespace only, so raw tokens keep attached punctuation
// ("Makan," stays one token).
func Fields(text string) []string {
	return strings.Fields(text)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r)
}
