package sanitize

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_KeepsRenderedMarkup(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<p class="paragraph content-block">hello</p>`)
	assert.Equal(t, `<p class="paragraph content-block">hello</p>`, out)

	out = p.Sanitize(`<h2 class="heading heading-level-2">T</h2>`)
	assert.Contains(t, out, `class="heading heading-level-2"`)
}

func TestPolicy_StripsScripts(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<p>x<script>alert(1)</script></p>`)
	assert.NotContains(t, out, "script")

	out = p.Sanitize(`<a href="javascript:alert(1)">click</a>`)
	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, "click")

	out = p.Sanitize(`<img src="/a.png" onerror="alert(1)">`)
	assert.NotContains(t, out, "onerror")
}

func TestPolicy_KeepsImageDimensions(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<img src="/a.png" width="300px" height="50%">`)
	assert.Contains(t, out, `width="300px"`)
	assert.Contains(t, out, `height="50%"`)

	out = p.Sanitize(`<img src="/a.png" width="2.5rem" height="120">`)
	assert.Contains(t, out, `width="2.5rem"`)
	assert.Contains(t, out, `height="120"`)

	out = p.Sanitize(`<img src="/a.png" width="calc(100% - 1px)">`)
	assert.NotContains(t, out, "width")
}

func TestPolicy_LinksKeepRel(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<p>See <a href="https://example.com" class="article-link" target="_blank" rel="noopener noreferrer">docs</a></p>`)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	a := doc.Find("a.article-link")
	require.Equal(t, 1, a.Length())
	assert.Equal(t, "_blank", a.AttrOr("target", ""))

	rel := strings.Fields(a.AttrOr("rel", ""))
	assert.Contains(t, rel, "noopener")
	assert.Contains(t, rel, "noreferrer")
	assert.NotContains(t, rel, "nofollow")
}
