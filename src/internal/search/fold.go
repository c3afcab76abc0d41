package search

import "strings"

// Fold returns the comparison form of s used for substring matching. It must
// be a pure function of s: folding an already-folded string is a no-op.
func Fold(s string) string {
	return strings.ToLower(s)
}
