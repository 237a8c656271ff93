// Package sanitize strips markup from user-supplied text before it is
// persisted or echoed back. Request fields like display names come from
// browsers and must never carry HTML into room listings.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from a free-text field and trims the result.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
