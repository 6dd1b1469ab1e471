package highlight

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageWithCode = `<html><head><title>t</title></head><body><div class="article">
<div class="code-container content-block"><div class="code-content"><pre><code class="language-go">package main

func main() { println(&#34;hi&#34;) }</code></pre></div></div>
<div class="code-container content-block"><div class="code-content"><pre><code class="language-text">plain &lt;text&gt;</code></pre></div></div>
</div></body></html>`

func TestHighlightAll(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageWithCode))
	require.NoError(t, err)

	before := doc.Find("code.language-go").Text()

	require.NoError(t, New("github").HighlightAll(doc))

	goCode := doc.Find("code.language-go")
	assert.True(t, goCode.HasClass("chroma"))
	assert.Greater(t, goCode.Find("span").Length(), 0)
	assert.Equal(t, strings.TrimSpace(before), strings.TrimSpace(goCode.Text()), "highlighting must not change the code text")

	textCode := doc.Find("code.language-text")
	assert.Equal(t, "plain <text>", strings.TrimSpace(textCode.Text()))

	assert.Equal(t, 1, doc.Find("head style.chroma-style").Length())
}

func TestHighlightAll_NoCode(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head></head><body><p>x</p></body></html>`))
	require.NoError(t, err)

	require.NoError(t, New("").HighlightAll(doc))
	assert.Equal(t, 0, doc.Find("style").Length())
}

func TestLanguage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<pre><code class="chroma language-python extra">x</code></pre><pre><code>y</code></pre>`))
	require.NoError(t, err)

	codes := doc.Find("code")
	assert.Equal(t, "python", Language(codes.Eq(0)))
	assert.Equal(t, "", Language(codes.Eq(1)))
}

func TestStylesheet(t *testing.T) {
	css, err := New("monokai").Stylesheet()
	require.NoError(t, err)
	assert.Contains(t, css, ".chroma")
}
