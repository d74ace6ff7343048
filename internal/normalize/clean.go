package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	punctuationPattern   = regexp.MustCompile(`[^a-z0-9 \t\n\v\f\r]`)
	articlePattern       = regexp.MustCompile(`\b(the|a|an)\b`)
)

// Clean lowercases a value and strips parentheticals, punctuation, and
// English articles, collapsing whitespace. It does not resolve dates or
// synonyms.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	value := strings.Map(spaceToBlank, strings.TrimSpace(strings.ToLower(raw)))
	value = parentheticalPattern.ReplaceAllString(value, "")
	value = punctuationPattern.ReplaceAllString(value, "")
	value = articlePattern.ReplaceAllString(value, "")
	return strings.Join(strings.Fields(value), " ")
}

// spaceToBlank folds every Unicode space, such as NBSP or an em space, into
// an ASCII blank so it survives punctuation stripping as a word break.
func spaceToBlank(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}
