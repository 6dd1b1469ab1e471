// Package render turns article documents into output formats.
// This file implements the block renderer: the header, one HTML fragment
// per content block, and the footer. Every other renderer builds on it.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/inline"
)

// DefaultFooter is the footer text used when none is configured.
const DefaultFooter = "© 2025 ShitHub | JuX"

// Sanitizer filters a rendered fragment before it reaches the sink.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// Options configure a BlockRenderer.
type Options struct {
	Dates  core.DateFormatter
	Labels Labels
	Footer string
	// Strict aborts the pass at the first block with missing required
	// fields instead of rendering a diagnostic fragment.
	Strict    bool
	Sanitizer Sanitizer
}

// BlockRenderer renders article documents into HTML fragments.
// It holds no per-render state and is safe for concurrent use.
type BlockRenderer struct {
	opts Options
}

// NewBlockRenderer creates a BlockRenderer. Empty label and footer
// options fall back to ChineseLabels and DefaultFooter.
func NewBlockRenderer(opts Options) *BlockRenderer {
	if opts.Labels == (Labels{}) {
		opts.Labels = ChineseLabels
	}
	if opts.Footer == "" {
		opts.Footer = DefaultFooter
	}
	return &BlockRenderer{opts: opts}
}

// Render runs one pass into a fresh Result. On a strict-mode abort the
// partial result is returned together with the error.
func (r *BlockRenderer) Render(doc *core.ArticleDocument) (*Result, error) {
	res := &Result{Title: doc.Meta.Title}
	diags, err := r.RenderTo(doc, res)
	res.Diagnostics = diags
	return res, err
}

// RenderTo appends the header, one fragment per block and the footer to
// sink, in that order. It returns the recovered diagnostics. In strict mode
// a block with missing fields stops the pass with a *core.MissingFieldError
// and nothing after it, the footer included, is appended.
func (r *BlockRenderer) RenderTo(doc *core.ArticleDocument, sink core.Sink) ([]core.Diagnostic, error) {
	p := &pass{opts: r.opts}

	r.emit(sink, core.Fragment{Kind: core.FragmentHeader, Index: -1, HTML: p.header(doc.Meta)})

	for i, b := range doc.Content {
		p.index = i
		p.typ = b.Type()

		if err := strictCheck(r.opts.Strict, i, b); err != nil {
			return p.diags, err
		}

		r.emit(sink, core.Fragment{
			Kind:  core.FragmentBlock,
			Index: i,
			Type:  b.Type(),
			HTML:  p.block(b),
		})
	}

	r.emit(sink, core.Fragment{Kind: core.FragmentFooter, Index: -1, HTML: p.footer()})
	return p.diags, nil
}

func (r *BlockRenderer) emit(sink core.Sink, f core.Fragment) {
	if r.opts.Sanitizer != nil {
		f.HTML = r.opts.Sanitizer.Sanitize(f.HTML)
	}
	sink.Append(f)
}

// pass carries the position and diagnostics of a single render.
type pass struct {
	opts  Options
	index int
	typ   string
	diags []core.Diagnostic
}

func (p *pass) note(kind core.DiagnosticKind, detail string) {
	p.diags = append(p.diags, core.Diagnostic{Kind: kind, Block: p.index, Type: p.typ, Detail: detail})
}

// expand runs inline link expansion and records rejected link targets.
func (p *pass) expand(text string) string {
	for _, m := range inline.Scan(text) {
		if !m.Allowed {
			p.note(core.KindLinkRejected, fmt.Sprintf("link target %q not allowed", m.TargetURL))
		}
	}
	return inline.Expand(text)
}

func (p *pass) date(ts core.Timestamp) string {
	if p.opts.Dates == nil {
		return html.EscapeString(ts.Raw)
	}
	return html.EscapeString(p.opts.Dates.Format(ts))
}

func (p *pass) header(meta core.ArticleMeta) string {
	p.index, p.typ = -1, "header"
	l := p.opts.Labels

	authors := make([]string, len(meta.Authors))
	for i, a := range meta.Authors {
		authors[i] = html.EscapeString(a)
	}

	var b strings.Builder
	b.WriteString(`<div class="article-header">`)
	fmt.Fprintf(&b, `<h1 class="article-title">%s</h1>`, html.EscapeString(meta.Title))
	b.WriteString(`<div class="article-meta">`)
	fmt.Fprintf(&b, `<div class="authors">%s: %s</div>`, l.Authors, strings.Join(authors, ", "))
	fmt.Fprintf(&b, `<div class="dates">%s: %s | %s: %s</div>`,
		l.Published, p.date(meta.PublishedDate), l.Updated, p.date(meta.UpdatedDate))
	b.WriteString(`</div>`)
	if meta.Summary != "" {
		fmt.Fprintf(&b, `<div class="article-summary">%s</div>`, html.EscapeString(meta.Summary))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (p *pass) footer() string {
	return fmt.Sprintf(`<div class="footer"><p>%s</p></div>`, html.EscapeString(p.opts.Footer))
}

// block dispatches on the block variant.
func (p *pass) block(b core.Block) string {
	switch v := b.(type) {
	case core.Heading:
		level := strconv.Itoa(clampLevel(v.Level))
		return `<h` + level + ` class="heading heading-level-` + level + `">` + p.expand(v.Text) + `</h` + level + `>`

	case core.Paragraph:
		return `<p class="paragraph content-block">` + p.expand(v.Text) + `</p>`

	case core.Center:
		return `<p class="center paragraph content-block">` + p.expand(v.Text) + `</p>`

	case core.List:
		return p.list(v)

	case core.Image:
		return p.image(v)

	case core.Code:
		lang := html.EscapeString(v.Lang())
		var sb strings.Builder
		sb.WriteString(`<div class="code-container content-block">`)
		fmt.Fprintf(&sb, `<div class="code-header"><span>%s</span><span class="language">%s</span></div>`, p.opts.Labels.CodeHeader, lang)
		fmt.Fprintf(&sb, `<div class="code-content"><pre><code class="language-%s">%s</code></pre></div>`, lang, html.EscapeString(v.Code))
		sb.WriteString(`</div>`)
		return sb.String()

	case core.Quote:
		var sb strings.Builder
		sb.WriteString(`<div class="quote-container content-block">`)
		sb.WriteString(`<div class="quote-text">"` + p.expand(v.Text) + `"</div>`)
		if v.Author != "" {
			sb.WriteString(`<div class="quote-author">— ` + p.expand(v.Author) + `</div>`)
		}
		sb.WriteString(`</div>`)
		return sb.String()

	case core.Divider:
		return `<hr class="divider content-block">`

	case core.Embed:
		return p.embed(v)

	case core.Invalid:
		p.note(core.KindMissingField, "missing "+strings.Join(v.Missing, ", "))
		return fmt.Sprintf(`<div class="content-block content-invalid">%s: %s (%s)</div>`,
			p.opts.Labels.Invalid, html.EscapeString(v.Name), html.EscapeString(strings.Join(v.Missing, ", ")))

	case core.Unknown:
		p.note(core.KindUnknownType, fmt.Sprintf("unknown content type %q", v.Name))
		return unknownFragment(p.opts.Labels, v.Name)

	default:
		return unknownFragment(p.opts.Labels, b.Type())
	}
}

func unknownFragment(l Labels, name string) string {
	return fmt.Sprintf(`<div class="content-block">%s: %s</div>`, l.Unknown, html.EscapeString(name))
}

func (p *pass) list(l core.List) string {
	tag, class := "ul", "list-unordered"
	if l.Ordered() {
		tag, class = "ol", "list-ordered"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="content-block"><%s class="list-container %s">`, tag, class)
	for _, item := range l.Items {
		sb.WriteString(`<li class="list-item">` + p.expand(item) + `</li>`)
	}
	fmt.Fprintf(&sb, `</%s></div>`, tag)
	return sb.String()
}

func (p *pass) image(img core.Image) string {
	var sb strings.Builder
	sb.WriteString(`<div class="image-container content-block">`)
	fmt.Fprintf(&sb, `<img src="%s" alt="%s" class="article-image"`, html.EscapeString(img.URL), html.EscapeString(img.Alt))
	if img.Width != "" {
		fmt.Fprintf(&sb, ` width="%s"`, html.EscapeString(img.Width))
	}
	if img.Height != "" {
		fmt.Fprintf(&sb, ` height="%s"`, html.EscapeString(img.Height))
	}
	sb.WriteString(`>`)
	if img.Caption != "" {
		fmt.Fprintf(&sb, `<div class="image-caption">%s</div>`, html.EscapeString(img.Caption))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// embed renders a link only when the URL passes the inline allowlist.
func (p *pass) embed(e core.Embed) string {
	label := html.EscapeString(e.Label())
	anchor := `<a class="` + inline.LinkClass + `" target="_blank">` + label + `</a>`
	switch {
	case e.URL == "":
	case inline.IsAllowedURL(e.URL):
		anchor = fmt.Sprintf(`<a href="%s" class="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			html.EscapeString(e.URL), inline.LinkClass, label)
	default:
		p.note(core.KindLinkRejected, fmt.Sprintf("embed target %q not allowed", e.URL))
	}
	return `<div class="embed-container content-block"><div class="embed-placeholder">` + anchor + `</div></div>`
}

// strictCheck returns a *core.MissingFieldError for an Invalid block when
// strict is set.
func strictCheck(strict bool, index int, b core.Block) error {
	inv, ok := b.(core.Invalid)
	if !ok || !strict {
		return nil
	}
	return &core.MissingFieldError{Block: index, Type: inv.Name, Fields: inv.Missing}
}

// clampLevel keeps heading levels within h1..h6.
func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
