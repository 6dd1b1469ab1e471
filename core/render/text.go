// Package render — plain-text renderer.
// Writes the article for terminals, using display width so that CJK text
// lines up with its underline rules and wrap column.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// DefaultTextWidth is the wrap column used when Width is zero.
const DefaultTextWidth = 80

// TextRenderer renders an article as plain text.
type TextRenderer struct {
	Dates  core.DateFormatter
	Labels Labels
	Footer string
	Width  int
	// Strict stops at the first block with missing required fields.
	Strict bool
}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer(dates core.DateFormatter, labels Labels, footer string) *TextRenderer {
	if labels == (Labels{}) {
		labels = ChineseLabels
	}
	if footer == "" {
		footer = DefaultFooter
	}
	return &TextRenderer{Dates: dates, Labels: labels, Footer: footer, Width: DefaultTextWidth}
}

// Render converts doc into wrapped plain text.
func (r *TextRenderer) Render(doc *core.ArticleDocument) ([]byte, error) {
	var b strings.Builder
	meta := doc.Meta

	b.WriteString(meta.Title + "\n")
	b.WriteString(strings.Repeat("=", runewidth.StringWidth(meta.Title)) + "\n")
	fmt.Fprintf(&b, "%s: %s\n", r.Labels.Authors, strings.Join(meta.Authors, ", "))
	fmt.Fprintf(&b, "%s: %s | %s: %s\n",
		r.Labels.Published, r.date(meta.PublishedDate),
		r.Labels.Updated, r.date(meta.UpdatedDate))
	if meta.Summary != "" {
		b.WriteString("\n" + r.wrap(meta.Summary, "") + "\n")
	}

	for i, blk := range doc.Content {
		if err := strictCheck(r.Strict, i, blk); err != nil {
			return nil, err
		}
		b.WriteString("\n")
		b.WriteString(r.block(blk))
	}

	b.WriteString("\n" + strings.Repeat("-", r.width()) + "\n")
	b.WriteString(r.Footer + "\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

func (r *TextRenderer) width() int {
	if r.Width <= 0 {
		return DefaultTextWidth
	}
	return r.Width
}

func (r *TextRenderer) date(ts core.Timestamp) string {
	if r.Dates == nil {
		return ts.Raw
	}
	return r.Dates.Format(ts)
}

func (r *TextRenderer) block(b core.Block) string {
	switch v := b.(type) {
	case core.Heading:
		text := plainLinks(v.Text)
		rule := "-"
		if clampLevel(v.Level) == 1 {
			rule = "="
		}
		return text + "\n" + strings.Repeat(rule, runewidth.StringWidth(text)) + "\n"

	case core.Paragraph:
		return r.wrap(plainLinks(v.Text), "") + "\n"

	case core.Center:
		var out []string
		for _, line := range strings.Split(r.wrap(plainLinks(v.Text), ""), "\n") {
			pad := (r.width() - runewidth.StringWidth(line)) / 2
			if pad < 0 {
				pad = 0
			}
			out = append(out, strings.Repeat(" ", pad)+line)
		}
		return strings.Join(out, "\n") + "\n"

	case core.List:
		var sb strings.Builder
		for i, item := range v.Items {
			marker := "  - "
			if v.Ordered() {
				marker = fmt.Sprintf("  %d. ", i+1)
			}
			indent := strings.Repeat(" ", runewidth.StringWidth(marker))
			wrapped := r.wrap(plainLinks(item), indent)
			sb.WriteString(marker + strings.TrimPrefix(wrapped, indent) + "\n")
		}
		return sb.String()

	case core.Image:
		label := v.Alt
		if v.Caption != "" {
			label = v.Caption
		}
		return fmt.Sprintf("[%s] %s\n", label, v.URL)

	case core.Code:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s):\n", r.Labels.CodeHeader, v.Lang())
		for _, line := range strings.Split(v.Code, "\n") {
			sb.WriteString("    " + line + "\n")
		}
		return sb.String()

	case core.Quote:
		out := r.wrap(`"`+plainLinks(v.Text)+`"`, "  > ")
		if v.Author != "" {
			out += "\n  > — " + plainLinks(v.Author)
		}
		return out + "\n"

	case core.Divider:
		return strings.Repeat("*", 3) + "\n"

	case core.Embed:
		if v.URL == "" {
			return "[" + v.Label() + "]\n"
		}
		return fmt.Sprintf("[%s] <%s>\n", v.Label(), v.URL)

	case core.Invalid:
		return fmt.Sprintf("%s: %s (%s)\n", r.Labels.Invalid, v.Name, strings.Join(v.Missing, ", "))

	default:
		return r.Labels.Unknown + ": " + b.Type() + "\n"
	}
}

// wrap breaks text into lines no wider than the renderer width, measured
// in display cells. Words wider than a line are split by cell.
func (r *TextRenderer) wrap(text, indent string) string {
	limit := r.width() - runewidth.StringWidth(indent)
	if limit < 1 {
		limit = 1
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, indent+strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	for _, para := range strings.Split(text, "\n") {
		for _, word := range splitWords(para) {
			w := runewidth.StringWidth(word)
			if lineWidth > 0 && lineWidth+w > limit {
				flush()
				if word == " " {
					continue
				}
			}
			for w > limit {
				head := runewidth.Truncate(word, limit, "")
				if head == "" {
					break
				}
				line.WriteString(head)
				flush()
				word = strings.TrimPrefix(word, head)
				w = runewidth.StringWidth(word)
			}
			line.WriteString(word)
			lineWidth += w
		}
		flush()
	}
	return strings.Join(lines, "\n")
}

// splitWords breaks text into words, single spaces and individual wide
// runes, so CJK text can wrap between any two characters.
func splitWords(text string) []string {
	var words []string
	var cur strings.Builder
	emit := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == ' ' || r == '\t':
			emit()
			words = append(words, " ")
		case runewidth.RuneWidth(r) > 1:
			emit()
			words = append(words, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	emit()
	return words
}
