package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips every HTML element from s and returns the plain text, trimmed.
func Text(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "</p>", "\n")
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// Flatten is Text with all whitespace runs collapsed to one space.
func Flatten(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}
