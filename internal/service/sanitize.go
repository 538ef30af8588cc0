package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// markupPolicy strips every HTML element and attribute. Event text is
// frequently pasted from rich sources; only its plain text reaches the
// generation backend.
var markupPolicy = bluemonday.StrictPolicy()

// sanitizeText removes markup and surrounding whitespace. The sanitizer
// entity-escapes its output, so the escaping is undone to get plain text
// back.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(markupPolicy.Sanitize(s)))
}
