// Package render — Markdown renderer.
// Renders the article fragments to HTML, then converts that HTML to
// Markdown with html-to-markdown.
package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// MarkdownRenderer writes an article as Markdown.
type MarkdownRenderer struct {
	Blocks *BlockRenderer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(blocks *BlockRenderer) *MarkdownRenderer {
	return &MarkdownRenderer{Blocks: blocks}
}

// Render converts the rendered fragments to Markdown.
func (r *MarkdownRenderer) Render(doc *core.ArticleDocument) ([]byte, error) {
	res, err := r.Blocks.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering blocks: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(res.HTML())
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
