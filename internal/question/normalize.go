package question

import "strings"

// normalizeKind maps a bank type string onto a Kind.
func normalizeKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(KindMultipleChoice):
		return KindMultipleChoice, true
	case string(KindFreeText), kindAliasText:
		return KindFreeText, true
	default:
		return "", false
	}
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}

// dedupeStrings drops blanks and repeated values, keeping first occurrences.
func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
