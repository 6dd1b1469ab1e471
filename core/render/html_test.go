package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/highlight"
)

// recordingHighlighter notes how often it ran and whether the footer was
// already mounted at that point.
type recordingHighlighter struct {
	calls     int
	sawFooter bool
	fail      error
}

func (h *recordingHighlighter) HighlightAll(doc *goquery.Document) error {
	h.calls++
	h.sawFooter = doc.Find(".article > .footer").Length() == 1 &&
		doc.Find(".article").Children().Last().HasClass("footer")
	return h.fail
}

func TestHTMLRenderer_MountsFragments(t *testing.T) {
	hl := &recordingHighlighter{}
	r := NewHTMLRenderer(newTestRenderer(t, false), hl)

	out, err := r.Render(testDoc(
		core.Heading{Level: 2, Text: "Intro"},
		core.Unknown{Name: "banner"},
		core.Paragraph{Text: "end"},
	))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)

	assert.Equal(t, "测试文章", doc.Find("head title").Text())

	children := doc.Find(".article").Children()
	require.Equal(t, 5, children.Length())
	assert.True(t, children.First().HasClass("article-header"))
	assert.True(t, children.Last().HasClass("footer"))
	assert.Contains(t, children.Eq(2).Text(), "banner")

	assert.Equal(t, 1, hl.calls)
	assert.True(t, hl.sawFooter)
}

func TestHTMLRenderer_HighlightsCode(t *testing.T) {
	r := NewHTMLRenderer(newTestRenderer(t, false), highlight.New("github"))

	out, err := r.Render(testDoc(core.Code{Code: "x := 1", Language: "go"}))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.True(t, doc.Find("code.language-go").HasClass("chroma"))
	assert.Equal(t, 1, doc.Find("head style").Length())
}

func TestHTMLRenderer_StrictAbortSkipsHook(t *testing.T) {
	hl := &recordingHighlighter{}
	r := NewHTMLRenderer(newTestRenderer(t, true), hl)

	var diags []core.Diagnostic
	r.OnDiagnostic = func(d core.Diagnostic) { diags = append(diags, d) }

	_, err := r.Render(testDoc(
		core.Unknown{Name: "banner"},
		core.Invalid{Name: "list", Missing: []string{"items"}},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingField))
	assert.Equal(t, 0, hl.calls)
	require.Len(t, diags, 1)
	assert.Equal(t, core.KindUnknownType, diags[0].Kind)
}

func TestHTMLRenderer_HookErrorDoesNotFail(t *testing.T) {
	hl := &recordingHighlighter{fail: errors.New("boom")}
	r := NewHTMLRenderer(newTestRenderer(t, false), hl)

	var hookErr error
	r.OnHookError = func(err error) { hookErr = err }

	out, err := r.Render(testDoc(core.Divider{}))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.EqualError(t, hookErr, "boom")
}

func TestHTMLRenderer_CustomShell(t *testing.T) {
	r := NewHTMLRenderer(newTestRenderer(t, false), nil)
	r.Shell = `<html><head></head><body><main id="post"></main></body></html>`
	r.Selector = "#post"
	r.Lang = "zh-CN"

	out, err := r.Render(testDoc(core.Divider{}))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Find("#post").Children().Length())
	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "zh-CN", lang)
	assert.Equal(t, ".html", r.Extension())
}
