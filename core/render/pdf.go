// Package render — PDF renderer.
// Lays out the article blocks as a PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, lists, quotes, code
// blocks and captions. Images are drawn as their caption/alt text only.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/datefmt"
	"github.com/gaurav-prasanna/articlepipe/core/inline"
)

// PDFRenderer renders an article as a PDF document.
type PDFRenderer struct {
	Dates  core.DateFormatter
	Labels Labels
	Footer string
	// FontPath optionally names a UTF-8 TrueType font. Without it the core
	// Helvetica/Courier fonts are used, labels switch to English and dates
	// to an English long form, since cp1252 cannot show CJK text.
	FontPath string
	// Strict stops at the first block with missing required fields.
	Strict bool
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(dates core.DateFormatter, labels Labels, footer string) *PDFRenderer {
	if labels == (Labels{}) {
		labels = ChineseLabels
	}
	if footer == "" {
		footer = DefaultFooter
	}
	return &PDFRenderer{Dates: dates, Labels: labels, Footer: footer}
}

// pdfWriter wraps gofpdf with the chosen font families.
type pdfWriter struct {
	pdf       *gofpdf.Fpdf
	sans      string
	mono      string
	translate func(string) string
}

func (w *pdfWriter) font(mono bool, style string, size float64) {
	family := w.sans
	if mono {
		family = w.mono
	}
	if family == "article" {
		style = "" // the UTF-8 font is registered without style variants
	}
	w.pdf.SetFont(family, style, size)
}

func (w *pdfWriter) text(h float64, s string, fill bool) {
	w.pdf.MultiCell(0, h, w.translate(s), "", "L", fill)
}

// Render converts doc into PDF bytes.
func (r *PDFRenderer) Render(doc *core.ArticleDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetAuthor(strings.Join(doc.Meta.Authors, ", "), true)

	for i, b := range doc.Content {
		if err := strictCheck(r.Strict, i, b); err != nil {
			return nil, err
		}
	}

	w := &pdfWriter{pdf: pdf, sans: "Helvetica", mono: "Courier"}
	if r.FontPath != "" {
		pdf.AddUTF8Font("article", "", r.FontPath)
		w.sans, w.mono = "article", "article"
		w.translate = func(s string) string { return s }
	} else {
		w.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	r.header(w, doc.Meta)
	for _, b := range doc.Content {
		r.block(w, b)
	}

	// Footer.
	pdf.Ln(6)
	w.font(false, "I", 8)
	pdf.SetTextColor(120, 120, 120)
	w.text(4, r.Footer, false)
	pdf.SetTextColor(0, 0, 0)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (r *PDFRenderer) header(w *pdfWriter, meta core.ArticleMeta) {
	if meta.Title != "" {
		w.font(false, "B", 18)
		w.text(8, meta.Title, false)
		w.pdf.Ln(2)
	}

	w.font(false, "I", 9)
	w.pdf.SetTextColor(100, 100, 100)
	l := r.labels()
	w.text(5, l.Authors+": "+strings.Join(meta.Authors, ", "), false)
	w.text(5, fmt.Sprintf("%s: %s | %s: %s",
		l.Published, r.date(meta.PublishedDate),
		l.Updated, r.date(meta.UpdatedDate)), false)
	w.pdf.SetTextColor(0, 0, 0)

	if meta.Summary != "" {
		w.pdf.Ln(2)
		w.font(false, "I", 10)
		w.text(5, meta.Summary, false)
	}
	w.pdf.Ln(6)
}

// labels returns the label set the active font can display.
func (r *PDFRenderer) labels() Labels {
	if r.FontPath == "" {
		return EnglishLabels
	}
	return r.Labels
}

func (r *PDFRenderer) date(ts core.Timestamp) string {
	if r.FontPath == "" {
		if !ts.Valid {
			return datefmt.InvalidDate
		}
		return ts.Time.UTC().Format("January 2, 2006")
	}
	if r.Dates == nil {
		return ts.Raw
	}
	return r.Dates.Format(ts)
}

func (r *PDFRenderer) block(w *pdfWriter, b core.Block) {
	switch v := b.(type) {
	case core.Heading:
		renderHeading(w, plainLinks(v.Text), clampLevel(v.Level))

	case core.Paragraph:
		w.font(false, "", 10)
		w.text(5, plainLinks(v.Text), false)
		w.pdf.Ln(3)

	case core.Center:
		w.font(false, "", 10)
		w.pdf.MultiCell(0, 5, w.translate(plainLinks(v.Text)), "", "C", false)
		w.pdf.Ln(3)

	case core.List:
		w.font(false, "", 10)
		for i, item := range v.Items {
			marker := "- "
			if v.Ordered() {
				marker = fmt.Sprintf("%d. ", i+1)
			}
			w.text(5, marker+plainLinks(item), false)
		}
		w.pdf.Ln(3)

	case core.Image:
		w.font(false, "I", 9)
		label := v.Caption
		if label == "" {
			label = v.Alt
		}
		w.text(5, "["+label+"] "+v.URL, false)
		w.pdf.Ln(3)

	case core.Code:
		w.pdf.Ln(2)
		w.font(false, "B", 8)
		w.text(4, r.labels().CodeHeader+" ("+v.Lang()+")", false)
		w.font(true, "", 9)
		w.pdf.SetFillColor(245, 245, 245)
		for _, line := range strings.Split(v.Code, "\n") {
			w.text(4.5, line, true)
		}
		w.pdf.Ln(3)

	case core.Quote:
		w.font(false, "I", 10)
		w.text(5, `"`+plainLinks(v.Text)+`"`, false)
		if v.Author != "" {
			w.text(5, "— "+plainLinks(v.Author), false)
		}
		w.pdf.Ln(3)

	case core.Divider:
		y := w.pdf.GetY() + 2
		left, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		w.pdf.Line(left, y, pageW-right, y)
		w.pdf.Ln(6)

	case core.Embed:
		w.font(false, "U", 10)
		w.text(5, v.Label(), false)
		if v.URL != "" {
			w.font(false, "I", 8)
			w.text(4, v.URL, false)
		}
		w.pdf.Ln(3)

	case core.Invalid:
		w.font(false, "I", 9)
		w.text(5, fmt.Sprintf("%s: %s (%s)", r.labels().Invalid, v.Name, strings.Join(v.Missing, ", ")), false)

	default:
		w.font(false, "I", 9)
		w.text(5, r.labels().Unknown+": "+b.Type(), false)
	}
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(w *pdfWriter, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.font(false, "B", size)
	w.text(size*0.6, text, false)
	w.pdf.Ln(2)
}

// plainLinks replaces allowed links with their label. Rejected links stay literal.
func plainLinks(text string) string {
	matches := inline.Scan(text)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		if m.Allowed {
			b.WriteString(m.DisplayText)
		} else {
			b.WriteString(text[m.Start:m.End])
		}
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}
