// Package htmlsanitize cleans user-supplied flag text before it is stored.
// Names are reduced to plain text; descriptions keep a small set of inline
// formatting tags.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     *bluemonday.Policy
	inline     *bluemonday.Policy
	policyOnce sync.Once
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		strict = bluemonday.StrictPolicy()

		inline = bluemonday.NewPolicy()
		inline.AllowElements("b", "strong", "i", "em", "u", "code", "br")
		inline.AllowStandardURLs()
		inline.AllowAttrs("href").OnElements("a")
		inline.RequireNoFollowOnLinks(true)
		inline.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return strict, inline
}

// StripTags removes all markup and returns trimmed plain text with
// whitespace runs collapsed to single spaces.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	p, _ := policies()
	// StrictPolicy escapes entities; undo that so stored text is plain.
	return strings.Join(strings.Fields(html.UnescapeString(p.Sanitize(s))), " ")
}

// Inline sanitizes a description, keeping only inline formatting and links.
func Inline(s string) string {
	if s == "" {
		return ""
	}
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
