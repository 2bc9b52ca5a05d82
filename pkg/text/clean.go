// Package text normalizes free-text fields before they reach the dataset.
package text

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`(?:https?|ftp)://\S+`)
	specialPattern    = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean removes URLs and special characters from tweet text, collapses runs of
// whitespace to a single space and trims the result. It is pure and
// idempotent: Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = urlPattern.ReplaceAllString(s, "")
	s = specialPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
