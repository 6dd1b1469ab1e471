// Package render — HTML page renderer.
// Mounts the block renderer's fragments into a page shell, sets the page
// title, then runs the post-render hook (syntax highlighting) over the page.
package render

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/page"
)

// Highlighter decorates a finished page. *highlight.Highlighter satisfies it.
type Highlighter interface {
	HighlightAll(doc *goquery.Document) error
}

// HTMLRenderer produces a complete HTML page.
type HTMLRenderer struct {
	Blocks   *BlockRenderer
	Shell    string
	Selector string
	Lang     string
	// Highlighter runs once after the footer is mounted. Nil disables it.
	Highlighter Highlighter
	// OnDiagnostic, if set, receives each recovered render diagnostic.
	OnDiagnostic func(core.Diagnostic)
	// OnHookError, if set, receives a post-render hook failure. Hook
	// failures never fail the render.
	OnHookError func(error)
}

// NewHTMLRenderer creates an HTMLRenderer with the default shell and selector.
func NewHTMLRenderer(blocks *BlockRenderer, hl Highlighter) *HTMLRenderer {
	return &HTMLRenderer{Blocks: blocks, Highlighter: hl}
}

// Render mounts doc into a fresh page and serializes it.
func (r *HTMLRenderer) Render(doc *core.ArticleDocument) ([]byte, error) {
	pg, err := r.Mount(doc)
	if err != nil {
		return nil, err
	}
	out, err := pg.HTML()
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Mount renders doc into a new page and returns it for further processing.
func (r *HTMLRenderer) Mount(doc *core.ArticleDocument) (*page.Page, error) {
	pg, err := page.New(r.Shell, r.Selector)
	if err != nil {
		return nil, err
	}
	pg.SetTitle(doc.Meta.Title)
	pg.SetLang(r.Lang)

	diags, err := r.Blocks.RenderTo(doc, pg)
	for _, d := range diags {
		if r.OnDiagnostic != nil {
			r.OnDiagnostic(d)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rendering blocks: %w", err)
	}

	if r.Highlighter != nil {
		if err := r.Highlighter.HighlightAll(pg.Document()); err != nil && r.OnHookError != nil {
			r.OnHookError(err)
		}
	}
	return pg, nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
