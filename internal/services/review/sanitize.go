package review

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy
)

// sanitizeBody strips any markup from a review body and returns plain text
func sanitizeBody(raw string) string {
	bodyPolicyOnce.Do(func() {
		bodyPolicy = bluemonday.StrictPolicy()
	})
	// The body is plain text, so an ampersand is never an entity. Escaping
	// it first makes the one unescape below undo exactly what the policy
	// encoded, and text like "&amp;" is stored as typed.
	escaped := strings.ReplaceAll(raw, "&", "&amp;")
	return strings.TrimSpace(html.UnescapeString(bodyPolicy.Sanitize(escaped)))
}
