package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeQuery trims surrounding whitespace and lower-cases s.
// Lower-casing is Unicode aware so "ÉCRAN" and "écran" compare equal.
func NormalizeQuery(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return lower(s)
}

// ContainsFold reports whether the lower-cased haystack contains needle.
// needle must already be normalized with NormalizeQuery.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(lower(haystack), needle)
}

// lower uses a fresh Caser per call: cases.Caser is stateful and not safe
// for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
