// Package inline expands markdown-style [text](url) links inside free text.
// It is the only inline construct recognized; everything else is plain text.
package inline

import (
	"html"
	"regexp"
	"strings"
)

// LinkClass is the styling class carried by every expanded anchor.
const LinkClass = "article-link"

// linkRegex matches [text](url). Either part may be empty.
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

// allowedPrefixes are the URL forms an anchor may point at.
var allowedPrefixes = []string{"http://", "https://", "/", "./", "../"}

// LinkMatch is one [text](url) occurrence.
type LinkMatch struct {
	DisplayText string
	TargetURL   string
	// Start and End are byte offsets of the whole span in the input.
	Start, End int
	// Allowed reports whether TargetURL passed the allowlist.
	Allowed bool
}

// IsAllowedURL reports whether url starts with an allowlisted prefix.
// Only the prefix is examined; the rest of the URL is not parsed.
func IsAllowedURL(url string) bool {
	for _, p := range allowedPrefixes {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}

// Scan returns every link occurrence in text, left to right.
func Scan(text string) []LinkMatch {
	locs := linkRegex.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]LinkMatch, 0, len(locs))
	for _, loc := range locs {
		target := text[loc[4]:loc[5]]
		matches = append(matches, LinkMatch{
			DisplayText: text[loc[2]:loc[3]],
			TargetURL:   target,
			Start:       loc[0],
			End:         loc[1],
			Allowed:     IsAllowedURL(target),
		})
	}
	return matches
}

// Expand HTML-escapes text and replaces every allowed link with an anchor.
// Rejected links stay as (escaped) literal text. Label and href are escaped
// too, so only the anchor tags themselves are markup. Expand is not
// idempotent: applied to its own output it escapes that output again. Use
// ExpandRaw on text that is already markup.
func Expand(text string) string {
	return expand(text, html.EscapeString)
}

// ExpandRaw replaces allowed links with anchors and copies everything else,
// including the label, verbatim. Use it only on text that is already safe
// markup.
func ExpandRaw(text string) string {
	return expand(text, func(s string) string { return s })
}

func expand(text string, escape func(string) string) string {
	matches := Scan(text)
	if len(matches) == 0 {
		return escape(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*96)

	last := 0
	for _, m := range matches {
		b.WriteString(escape(text[last:m.Start]))
		if m.Allowed {
			writeAnchor(&b, escape(m.TargetURL), escape(m.DisplayText))
		} else {
			b.WriteString(escape(text[m.Start:m.End]))
		}
		last = m.End
	}
	b.WriteString(escape(text[last:]))
	return b.String()
}

func writeAnchor(b *strings.Builder, href, label string) {
	b.WriteString(`<a href="`)
	b.WriteString(href)
	b.WriteString(`" class="` + LinkClass + `" target="_blank" rel="noopener noreferrer">`)
	b.WriteString(label)
	b.WriteString(`</a>`)
}
