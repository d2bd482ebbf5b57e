// Package plaintext reduces HTML fragments to their visible text.
// Summary length limits apply to this plain-text form, not the raw markup.
package plaintext

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Extract strips all markup from s, decodes entities, and trims surrounding
// whitespace. "<b>hi</b> " becomes "hi".
func Extract(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
