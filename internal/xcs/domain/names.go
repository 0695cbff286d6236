package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeName is the case-insensitive comparison key for unique names.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LenBetween reports whether s has between min and max runes after trimming.
func LenBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}
