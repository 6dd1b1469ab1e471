// Package sanitize provides the optional HTML policy applied to each
// rendered fragment before it is mounted.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// dimension matches the width and height values an image block may carry,
// e.g. "300", "300px", "50%" or "2.5em".
var dimension = regexp.MustCompile(`^[0-9.]+(px|%|em|rem)?$`)

// NewPolicy returns a UGC policy that keeps the markup the block renderer
// emits: class attributes, image dimensions and new-tab links. Link rel
// values stay as rendered; nofollow is not added.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoReferrerOnLinks(true)
	p.AllowAttrs("width", "height").Matching(dimension).OnElements("img")
	return p
}
