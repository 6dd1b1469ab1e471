package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Source document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrMissingTitle      = errors.New("meta.title is required")
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// rawDocument mirrors the JSON shape of an article before the blocks are
// resolved into their variants.
type rawDocument struct {
	Meta    rawMeta    `json:"meta"`
	Content []rawBlock `json:"content"`
}

type rawMeta struct {
	Title         string          `json:"title"`
	Authors       []string        `json:"authors"`
	PublishedDate json.RawMessage `json:"publishedDate"`
	UpdatedDate   json.RawMessage `json:"updatedDate"`
	Summary       string          `json:"summary"`
}

type rawBlock struct {
	Type string                     `json:"type"`
	Data map[string]json.RawMessage `json:"data"`
}

// Decode parses an article document in the given format.
// YAML and TOML are normalized through JSON so all formats share one schema.
func Decode(data []byte, format string) (*ArticleDocument, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalizing YAML: %w", err)
		}
		data = b
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalizing TOML: %w", err)
		}
		data = b
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var raw rawDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	doc := &ArticleDocument{
		Meta: ArticleMeta{
			Title:         raw.Meta.Title,
			Authors:       raw.Meta.Authors,
			PublishedDate: parseTimestamp(raw.Meta.PublishedDate),
			UpdatedDate:   parseTimestamp(raw.Meta.UpdatedDate),
			Summary:       raw.Meta.Summary,
		},
		Content: make([]Block, 0, len(raw.Content)),
	}
	for _, rb := range raw.Content {
		doc.Content = append(doc.Content, resolveBlock(rb))
	}
	return doc, nil
}

// resolveBlock maps a raw block to its variant. Recognized types with
// missing required fields become Invalid; unrecognized types become Unknown.
func resolveBlock(rb rawBlock) Block {
	d := fields(rb.Data)

	switch rb.Type {
	case TypeHeading:
		level, okLevel := d.integer("level")
		text, okText := d.str("text")
		var req required
		req.need(okLevel, "level")
		req.need(okText, "text")
		if len(req) > 0 {
			return Invalid{Name: rb.Type, Missing: req}
		}
		return Heading{Level: level, Text: text}

	case TypeParagraph, TypeCenter:
		text, ok := d.str("text")
		if !ok {
			return Invalid{Name: rb.Type, Missing: []string{"text"}}
		}
		if rb.Type == TypeCenter {
			return Center{Text: text}
		}
		return Paragraph{Text: text}

	case TypeList:
		items, ok := d.strs("items")
		if !ok {
			return Invalid{Name: rb.Type, Missing: []string{"items"}}
		}
		style, _ := d.str("style")
		return List{Style: style, Items: items}

	case TypeImage:
		url, okURL := d.str("url")
		alt, okAlt := d.str("alt")
		var req required
		req.need(okURL, "url")
		req.need(okAlt, "alt")
		if len(req) > 0 {
			return Invalid{Name: rb.Type, Missing: req}
		}
		width, _ := d.str("width")
		height, _ := d.str("height")
		caption, _ := d.str("caption")
		return Image{
			URL:     url,
			Alt:     alt,
			Width:   dimension(width),
			Height:  dimension(height),
			Caption: caption,
		}

	case TypeCode:
		code, ok := d.str("code")
		if !ok {
			return Invalid{Name: rb.Type, Missing: []string{"code"}}
		}
		lang, _ := d.str("language")
		return Code{Code: code, Language: lang}

	case TypeQuote:
		text, ok := d.str("text")
		if !ok {
			return Invalid{Name: rb.Type, Missing: []string{"text"}}
		}
		author, _ := d.str("author")
		return Quote{Text: text, Author: author}

	case TypeDivider:
		return Divider{}

	case TypeEmbed:
		url, _ := d.str("url")
		title, _ := d.str("title")
		return Embed{URL: url, Title: title}

	default:
		return Unknown{Name: rb.Type}
	}
}

// dimension drops falsy pixel values so they are treated as absent.
func dimension(v string) string {
	if v == "0" || v == "false" {
		return ""
	}
	return v
}

type fields map[string]json.RawMessage

// str returns a scalar field as text. Numbers and booleans keep their
// literal spelling. Null, absent and structured values report false.
func (f fields) str(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	return scalar(raw)
}

func (f fields) integer(key string) (int, bool) {
	s, ok := f.str(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (f fields) strs(key string) ([]string, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, _ := scalar(it)
		out = append(out, s)
	}
	return out, true
}

// required collects the names of absent required fields in field order.
type required []string

func (r *required) need(ok bool, name string) {
	if !ok {
		*r = append(*r, name)
	}
}

func scalar(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	default:
		return string(trimmed), true
	}
}

// parseTimestamp accepts date strings in any common layout and numbers as
// epoch milliseconds. Strings without a zone are read as UTC.
func parseTimestamp(raw json.RawMessage) Timestamp {
	s, ok := scalar(raw)
	if !ok {
		return Timestamp{}
	}
	ts := Timestamp{Raw: s}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '"' {
		ms, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ts
		}
		ts.Time = time.UnixMilli(int64(ms)).UTC()
		ts.Valid = true
		return ts
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return ts
	}
	ts.Time = t
	ts.Valid = true
	return ts
}

// Validate reports every structural problem in doc at once.
// A nil result means every block renders without diagnostics.
func Validate(doc *ArticleDocument) error {
	var result *multierror.Error

	if doc.Meta.Title == "" {
		result = multierror.Append(result, ErrMissingTitle)
	}
	for i, b := range doc.Content {
		switch v := b.(type) {
		case Invalid:
			result = multierror.Append(result, &MissingFieldError{Block: i, Type: v.Name, Fields: v.Missing})
		case Unknown:
			result = multierror.Append(result, fmt.Errorf("block %d: unknown content type %q (known: %s)",
				i, v.Name, strings.Join(KnownTypes, ", ")))
		}
	}
	return result.ErrorOrNil()
}
