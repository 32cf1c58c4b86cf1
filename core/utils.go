package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SearchPattern wraps a cleaned search term for a contains-style LIKE match.
func SearchPattern(s string) string {
	return "%" + CleanString(s) + "%"
}
