// Package htmlsanitize strips markup from user-supplied free text
// (drive descriptions, comments) before it is persisted.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML elements from s and trims surrounding
// whitespace. The text content of removed elements is kept.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
