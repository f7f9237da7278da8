package models

import "strings"

// ParseAdditives splits a comma-separated additive string into codes.
// Surrounding whitespace is trimmed and empty tokens are dropped; order and
// repeated codes are kept.
func ParseAdditives(raw string) []string {
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		codes = append(codes, p)
	}
	return codes
}
