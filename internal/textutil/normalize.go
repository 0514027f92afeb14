package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// NormalizeToken folds case and drops every rune that is not a letter or
// digit. Pure punctuation normalizes to "".
func NormalizeToken(token string) string {
	if token == "" {
		return ""
	}
	folded := folder.String(token)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizedFields splits text on whitespace and returns the normalized form
// of every field that keeps at least one letter or digit.
func NormalizedFields(text string) []string {
	raw := strings.Fields(text)
	out := make([]string, 0, len(raw))
	for _, field := range raw {
		if norm := NormalizeToken(field); norm != "" {
			out = append(out, norm)
		}
	}
	return out
}
