package packing

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeDestination folds a destination for identity comparison:
// trimmed, lowercased, with internal whitespace collapsed to single spaces.
// Saved lists are unique by this form.
func NormalizeDestination(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}
