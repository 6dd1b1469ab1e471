// Package load implements the Loader interface for files and URLs, and
// discovers documents under a directory for --all mode.
package load

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// FileLoader reads article documents from disk.
type FileLoader struct{}

// Load reads path and decodes it according to its extension.
func (FileLoader) Load(_ context.Context, path string) (*core.ArticleDocument, error) {
	format, err := core.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := core.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// Loader dispatches to HTTP for http(s) URLs and to the filesystem otherwise.
type Loader struct {
	File FileLoader
	HTTP *HTTPLoader
}

// New creates a Loader with default HTTP settings.
func New() *Loader {
	return &Loader{HTTP: NewHTTPLoader()}
}

// Load implements core.Loader.
func (l *Loader) Load(ctx context.Context, source string) (*core.ArticleDocument, error) {
	if IsURL(source) {
		return l.HTTP.Load(ctx, source)
	}
	return l.File.Load(ctx, source)
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
