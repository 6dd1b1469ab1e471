// Package highlight decorates rendered code blocks with syntax highlighting.
// It runs once over a finished page, after every fragment is mounted.
package highlight

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/hashicorp/go-multierror"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// codeSelector matches the code elements emitted by the block renderer.
const codeSelector = `pre > code[class*="language-"]`

// Highlighter tokenizes code blocks with chroma and replaces their
// contents with class-annotated spans.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter. Unknown style names fall back to chroma's default.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// HighlightAll highlights every code block in doc and, if any were found,
// adds the matching stylesheet to <head>. A block that fails to tokenize
// keeps its plain contents; the failures are returned together.
func (h *Highlighter) HighlightAll(doc *goquery.Document) error {
	var result *multierror.Error
	count := 0

	doc.Find(codeSelector).Each(func(i int, s *goquery.Selection) {
		lang := Language(s)
		out, err := h.highlight(lang, s.Text())
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("code block %d (%s): %w", i, lang, err))
			return
		}
		s.SetHtml(out)
		s.AddClass("chroma")
		count++
	})

	if count > 0 {
		css, err := h.Stylesheet()
		if err != nil {
			result = multierror.Append(result, err)
		} else {
			doc.Find("head").AppendHtml(`<style class="chroma-style">` + css + `</style>`)
		}
	}

	return result.ErrorOrNil()
}

// Stylesheet returns the CSS for the configured style.
func (h *Highlighter) Stylesheet() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

func (h *Highlighter) highlight(lang, code string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenizing: %w", err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", fmt.Errorf("formatting: %w", err)
	}
	return buf.String(), nil
}

// Language returns the name in the first language-* class of s.
func Language(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	for _, c := range strings.Fields(class) {
		if name, ok := strings.CutPrefix(c, "language-"); ok {
			return name
		}
	}
	return ""
}
