package question

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswerText trims surrounding whitespace and applies Unicode NFC so
// composed and decomposed umlauts compare equal. Case is preserved.
func NormalizeAnswerText(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// MatchFreeText reports whether a typed answer matches an accepted literal.
// Matching is case-sensitive: "berlin" does not match "Berlin".
func MatchFreeText(accepted, answer string) bool {
	normalized := NormalizeAnswerText(answer)
	if normalized == "" {
		return false
	}
	return NormalizeAnswerText(accepted) == normalized
}

// IsBlank reports whether an answer is empty after trimming.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
