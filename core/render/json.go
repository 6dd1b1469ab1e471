// Package render — JSON renderer.
// Builds a structured JSON view of a rendered article: metadata, the
// fragments in order, and an outline of headings, links and block counts
// taken from the rendered markup.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// ArticleMetadata is the JSON form of the article header.
type ArticleMetadata struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date"`
	UpdatedDate   string   `json:"updated_date"`
	PublishedAt   string   `json:"published_at,omitempty"` // RFC3339
	UpdatedAt     string   `json:"updated_at,omitempty"`   // RFC3339
	Summary       string   `json:"summary,omitempty"`
}

// FragmentJSON is one rendered fragment.
type FragmentJSON struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Type  string `json:"type,omitempty"`
	HTML  string `json:"html"`
}

// ArticleContent holds the rendered markup and its plain text.
type ArticleContent struct {
	Text      string         `json:"text"`
	Fragments []FragmentJSON `json:"fragments"`
}

// Heading is a heading found in the rendered article.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is an anchor found in the rendered article.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// ArticleStructure is an outline of the rendered article.
type ArticleStructure struct {
	Headings   []Heading      `json:"headings"`
	Links      []Link         `json:"links"`
	BlockTypes map[string]int `json:"block_types"`
	CodeBlocks int            `json:"code_blocks"`
	Lists      int            `json:"lists"`
	Images     int            `json:"images"`
}

// DiagnosticJSON is a recovered render problem.
type DiagnosticJSON struct {
	Kind   string `json:"kind"`
	Block  int    `json:"block"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// ArticleJSON is the complete JSON output for one article.
type ArticleJSON struct {
	Metadata    ArticleMetadata  `json:"metadata"`
	Content     ArticleContent   `json:"content"`
	Structure   ArticleStructure `json:"structure"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct {
	Blocks *BlockRenderer
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(blocks *BlockRenderer) *JSONRenderer {
	return &JSONRenderer{Blocks: blocks}
}

// Render converts doc into the ArticleJSON structure.
func (r *JSONRenderer) Render(doc *core.ArticleDocument) ([]byte, error) {
	res, err := r.Blocks.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering blocks: %w", err)
	}

	article, err := r.build(doc, res)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func (r *JSONRenderer) build(doc *core.ArticleDocument, res *Result) (*ArticleJSON, error) {
	body, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML()))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered HTML: %w", err)
	}

	article := &ArticleJSON{
		Metadata: r.metadata(doc.Meta),
		Content: ArticleContent{
			Text:      collapseText(body.Text()),
			Fragments: make([]FragmentJSON, 0, len(res.Fragments)),
		},
		Structure: ArticleStructure{
			Headings:   extractHeadings(body),
			Links:      extractLinks(body),
			BlockTypes: make(map[string]int),
		},
	}

	for _, f := range res.Fragments {
		article.Content.Fragments = append(article.Content.Fragments, FragmentJSON{
			Kind:  f.Kind.String(),
			Index: f.Index,
			Type:  f.Type,
			HTML:  f.HTML,
		})
	}

	for _, b := range doc.Content {
		article.Structure.BlockTypes[b.Type()]++
		switch b.(type) {
		case core.Code:
			article.Structure.CodeBlocks++
		case core.List:
			article.Structure.Lists++
		case core.Image:
			article.Structure.Images++
		}
	}

	for _, d := range res.Diagnostics {
		article.Diagnostics = append(article.Diagnostics, DiagnosticJSON{
			Kind:   d.Kind.String(),
			Block:  d.Block,
			Type:   d.Type,
			Detail: d.Detail,
		})
	}
	return article, nil
}

func (r *JSONRenderer) metadata(meta core.ArticleMeta) ArticleMetadata {
	m := ArticleMetadata{
		Title:         meta.Title,
		Authors:       meta.Authors,
		PublishedDate: meta.PublishedDate.Raw,
		UpdatedDate:   meta.UpdatedDate.Raw,
		Summary:       meta.Summary,
	}
	if m.Authors == nil {
		m.Authors = []string{}
	}
	if dates := r.Blocks.opts.Dates; dates != nil {
		m.PublishedDate = dates.Format(meta.PublishedDate)
		m.UpdatedDate = dates.Format(meta.UpdatedDate)
	}
	if meta.PublishedDate.Valid {
		m.PublishedAt = meta.PublishedDate.Time.Format(time.RFC3339)
	}
	if meta.UpdatedDate.Valid {
		m.UpdatedAt = meta.UpdatedDate.Time.Format(time.RFC3339)
	}
	return m
}

// --- Markup outline helpers ---

func extractHeadings(body *goquery.Document) []Heading {
	headings := []Heading{}
	body.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		headings = append(headings, Heading{
			Level: int(tag[1] - '0'),
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return headings
}

func extractLinks(body *goquery.Document) []Link {
	links := []Link{}
	body.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, Link{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})
	return links
}

// collapseText joins the text content into single-spaced lines.
func collapseText(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
