// Package page hosts rendered fragments in an HTML document.
// It locates the article container by selector in a page shell and
// appends fragments to it one at a time, the way a browser host would.
package page

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// DefaultSelector finds the container that receives article fragments.
const DefaultSelector = ".article"

// DefaultShell is the page used when no shell template is configured.
const DefaultShell = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title></title>
</head>
<body>
<div class="article"></div>
</body>
</html>`

// ErrNoContainer is returned when the shell has no element matching the selector.
var ErrNoContainer = errors.New("no article container found in page shell")

// Page is a parsed shell with a located container. It implements core.Sink.
type Page struct {
	doc       *goquery.Document
	container *goquery.Selection
}

// New parses shell and locates the first element matching selector.
// Empty arguments fall back to DefaultShell and DefaultSelector.
func New(shell, selector string) (*Page, error) {
	if shell == "" {
		shell = DefaultShell
	}
	if selector == "" {
		selector = DefaultSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("parsing page shell: %w", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: selector %q", ErrNoContainer, selector)
	}

	return &Page{doc: doc, container: sel.First()}, nil
}

// LoadShell reads a shell template from disk. An empty path yields DefaultShell.
func LoadShell(path string) (string, error) {
	if path == "" {
		return DefaultShell, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading page shell: %w", err)
	}
	return string(data), nil
}

// Append adds one fragment to the end of the container.
func (p *Page) Append(f core.Fragment) {
	p.container.AppendHtml(f.HTML)
}

// SetTitle sets the document title, creating <title> if the shell lacks one.
func (p *Page) SetTitle(title string) {
	t := p.doc.Find("head title")
	if t.Length() == 0 {
		node := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		p.doc.Find("head").AppendNodes(node)
		t = p.doc.Find("head title")
	}
	t.First().SetText(title)
}

// SetLang sets the lang attribute of the root element.
func (p *Page) SetLang(lang string) {
	if lang == "" {
		return
	}
	p.doc.Find("html").SetAttr("lang", lang)
}

// Document exposes the whole tree, e.g. for post-render passes.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Container returns the selection that receives fragments.
func (p *Page) Container() *goquery.Selection {
	return p.container
}

// HTML serializes the whole page.
func (p *Page) HTML() (string, error) {
	out, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing page: %w", err)
	}
	return out, nil
}
