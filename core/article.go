package core

import "time"

// ArticleDocument is the complete input to a render pass.
// It is never mutated after decoding.
type ArticleDocument struct {
	Meta    ArticleMeta
	Content []Block
}

// ArticleMeta holds the document-level metadata rendered in the header.
type ArticleMeta struct {
	Title         string
	Authors       []string
	PublishedDate Timestamp
	UpdatedDate   Timestamp
	Summary       string // empty means absent
}

// Timestamp is a date value as it appeared in the source plus its parsed form.
// Valid is false when Raw could not be interpreted as a date.
type Timestamp struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// Block variant type names as they appear in source documents.
const (
	TypeHeading   = "heading"
	TypeParagraph = "paragraph"
	TypeCenter    = "center"
	TypeList      = "list"
	TypeImage     = "image"
	TypeCode      = "code"
	TypeQuote     = "quote"
	TypeDivider   = "divider"
	TypeEmbed     = "embed"
)

// KnownTypes lists every recognized block type in a stable order.
var KnownTypes = []string{
	TypeHeading, TypeParagraph, TypeCenter, TypeList, TypeImage,
	TypeCode, TypeQuote, TypeDivider, TypeEmbed,
}

// Block is one unit of article content. The set of implementations is
// closed: only types in this package satisfy it.
type Block interface {
	// Type returns the source type name of the block.
	Type() string
	block()
}

// Heading is a section title of the given level.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

// Center is a paragraph rendered centered.
type Center struct {
	Text string
}

// ListStyleOrdered selects a numbered list; any other style is bulleted.
const ListStyleOrdered = "ordered"

// List is a flat list of text items.
type List struct {
	Style string
	Items []string
}

// Ordered reports whether the list renders numbered.
func (l List) Ordered() bool { return l.Style == ListStyleOrdered }

// Image is a picture with optional dimensions and caption.
// Width and Height are raw attribute text; empty means absent.
type Image struct {
	URL     string
	Alt     string
	Width   string
	Height  string
	Caption string
}

// DefaultCodeLanguage is used when a code block names no language.
const DefaultCodeLanguage = "text"

// Code is a verbatim source listing.
type Code struct {
	Code     string
	Language string
}

// Lang returns the block language or DefaultCodeLanguage.
func (c Code) Lang() string {
	if c.Language == "" {
		return DefaultCodeLanguage
	}
	return c.Language
}

// Quote is a quotation with an optional attribution.
type Quote struct {
	Text   string
	Author string
}

// Divider is a horizontal rule.
type Divider struct{}

// DefaultEmbedTitle is the label shown for an embed without a title.
const DefaultEmbedTitle = "空信息"

// Embed is a reference to external content. Both fields are optional.
type Embed struct {
	URL   string
	Title string
}

// Label returns the embed title or DefaultEmbedTitle.
func (e Embed) Label() string {
	if e.Title == "" {
		return DefaultEmbedTitle
	}
	return e.Title
}

// Unknown is a block whose type is not recognized.
type Unknown struct {
	Name string
}

// Invalid is a block of a recognized type that lacks required fields.
type Invalid struct {
	Name    string
	Missing []string
}

func (Heading) Type() string   { return TypeHeading }
func (Paragraph) Type() string { return TypeParagraph }
func (Center) Type() string    { return TypeCenter }
func (List) Type() string      { return TypeList }
func (Image) Type() string     { return TypeImage }
func (Code) Type() string      { return TypeCode }
func (Quote) Type() string     { return TypeQuote }
func (Divider) Type() string   { return TypeDivider }
func (Embed) Type() string     { return TypeEmbed }
func (u Unknown) Type() string { return u.Name }
func (i Invalid) Type() string { return i.Name }

func (Heading) block()   {}
func (Paragraph) block() {}
func (Center) block()    {}
func (List) block()      {}
func (Image) block()     {}
func (Code) block()      {}
func (Quote) block()     {}
func (Divider) block()   {}
func (Embed) block()     {}
func (Unknown) block()   {}
func (Invalid) block()   {}
