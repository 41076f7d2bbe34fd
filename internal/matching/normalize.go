// Package matching implements the contact-to-text entity matching core:
// name normalization, a nickname/alias table, token-sort string similarity,
// last-name and first-name-variant indexes for candidate pruning, a staged
// matcher, and per-scan deduplication.
package matching

import (
	"strings"
	"unicode"
)

// Normalize lowercases and trims a name fragment. Every comparison and
// index key goes through this first.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stripToken removes non-letter, non-digit runes from a token so that
// "Downey," and "Downey" index identically.
func stripToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
