// Package extract resolves loosely-structured listing-page text into typed
// values: whitespace normalization, storage capacity, model and version
// classification, availability, and delivery dates. Every resolver is total
// over its input; "no match" is a nil result, never an error.
package extract

import (
	"regexp"
	"strings"
)

var multiWhitespace = regexp.MustCompile(`\s\s+`)

// CollapseWhitespace removes newlines, collapses any run of two or more
// whitespace characters to a single space, and trims the result. A nil
// input stays nil. Idempotent.
func CollapseWhitespace(text *string) *string {
	if text == nil {
		return nil
	}
	s := CollapseWhitespaceString(*text)
	return &s
}

// CollapseWhitespaceString is CollapseWhitespace for a plain string.
func CollapseWhitespaceString(text string) string {
	s := strings.ReplaceAll(text, "\n", "")
	s = multiWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
