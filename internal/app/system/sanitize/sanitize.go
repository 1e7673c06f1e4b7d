// internal/app/system/sanitize/sanitize.go

// Package sanitize scrubs user-supplied free text before it is persisted.
// Names and notes are plain text in this application, so everything
// HTML-shaped is stripped rather than escaped.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips all markup from s, unescapes the entities bluemonday leaves
// behind, and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
