package books

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	isbnJunkPattern   = regexp.MustCompile(`[^a-zA-Z0-9\-]`)
)

// SanitizeString strips HTML tags, collapses runs of whitespace to a
// single space, and trims the result.
func SanitizeString(value string) string {
	sanitized := tagPattern.ReplaceAllString(value, "")
	sanitized = whitespacePattern.ReplaceAllString(sanitized, " ")
	return strings.TrimSpace(sanitized)
}

// SanitizeISBN sanitizes and then drops every character that is not
// alphanumeric or a hyphen.
func SanitizeISBN(value string) string {
	return isbnJunkPattern.ReplaceAllString(SanitizeString(value), "")
}
