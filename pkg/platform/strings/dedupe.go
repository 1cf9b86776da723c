// Package strings provides string slice utilities shared across services.
package strings

import "strings"

// DedupeAndTrim removes duplicates and blank entries from a slice, trimming
// whitespace from each element. Order is preserved. Identifier lists from
// callers pass through this before any per-element validation so a repeated
// membership id is stored once.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
