package load

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/gaurav-prasanna/articlepipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "ArticlePipe/1.0 (https://github.com/gaurav-prasanna/articlepipe)"
	maxDocumentSize  = 16 << 20
)

// HTTPLoader fetches article documents over HTTP.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates an HTTPLoader with a sensible timeout.
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Load retrieves and decodes the document at rawURL. The format comes from
// the response Content-Type, then the URL path extension, then JSON.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string) (*core.ArticleDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	doc, err := core.Decode(body, FormatFor(resp.Header.Get("Content-Type"), rawURL))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return doc, nil
}

// FormatFor picks a document format from a Content-Type header, falling
// back to the extension of rawURL and then to JSON.
func FormatFor(contentType, rawURL string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "application/json":
			return core.FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return core.FormatYAML
		case "application/toml", "text/toml":
			return core.FormatTOML
		}
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		if format, err := core.FormatFromPath(path.Base(parsed.Path)); err == nil {
			return format
		}
	}
	return core.FormatJSON
}
