// Package core defines the article model and the pipeline interfaces for ArticlePipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FragmentKind identifies which part of the article a fragment renders.
type FragmentKind int

const (
	FragmentHeader FragmentKind = iota
	FragmentBlock
	FragmentFooter
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentHeader:
		return "header"
	case FragmentBlock:
		return "block"
	case FragmentFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Fragment is one self-contained unit of rendered markup: the header,
// one block, or the footer.
type Fragment struct {
	Kind FragmentKind
	// Index is the block position in the document; -1 for header and footer.
	Index int
	// Type is the block type name; empty for header and footer.
	Type string
	HTML string
}

// Sink receives fragments in render order. A render pass is its only writer.
type Sink interface {
	Append(f Fragment)
}

// Loader retrieves and decodes an article document from a source
// (file path or URL).
type Loader interface {
	Load(ctx context.Context, source string) (*ArticleDocument, error)
}

// DateFormatter turns a timestamp into a localized display date.
type DateFormatter interface {
	Format(ts Timestamp) string
}

// Renderer converts an article document into a final output format.
type Renderer interface {
	Render(doc *ArticleDocument) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
