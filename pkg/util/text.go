package util

import "strings"

// TruncateWords clamps s to at most n words, appending an ellipsis when
// anything was cut. Non-positive n returns s unchanged.
func TruncateWords(s string, n int) string {
	if n <= 0 {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ") + "..."
}

// CompactWhitespace collapses runs of whitespace into single spaces.
func CompactWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstNonEmpty returns the first non-empty string of its arguments.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
