package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/datefmt"
	"github.com/gaurav-prasanna/articlepipe/core/highlight"
	"github.com/gaurav-prasanna/articlepipe/core/page"
	"github.com/gaurav-prasanna/articlepipe/core/render"
	"github.com/gaurav-prasanna/articlepipe/core/sanitize"
	"github.com/gaurav-prasanna/articlepipe/internal/config"
	"github.com/gaurav-prasanna/articlepipe/internal/logger"
)

// contentTypes maps an output format to its HTTP media type.
var contentTypes = map[string]string{
	"html":     "text/html; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"json":     "application/json; charset=utf-8",
	"pdf":      "application/pdf",
	"text":     "text/plain; charset=utf-8",
}

// newRenderer builds the Renderer for format from the effective config.
// The returned renderer holds no per-document state and may be shared.
func newRenderer(c *config.Config, format string, l *logger.Logger) (core.Renderer, error) {
	dates, err := datefmt.New(c.Locale, nil)
	if err != nil {
		return nil, fmt.Errorf("configuring dates: %w", err)
	}
	labels := render.LabelsFor(c.Locale)

	opts := render.Options{
		Dates:  dates,
		Labels: labels,
		Footer: c.Render.Footer,
		Strict: c.Render.Strict,
	}
	if c.Render.Sanitize {
		opts.Sanitizer = sanitize.NewPolicy()
	}
	blocks := render.NewBlockRenderer(opts)

	switch format {
	case "html":
		var hl render.Highlighter
		if c.Highlight.Enabled {
			hl = highlight.New(c.Highlight.Style)
		}
		shell, err := page.LoadShell(c.Render.ShellTemplate)
		if err != nil {
			return nil, err
		}
		r := render.NewHTMLRenderer(blocks, hl)
		r.Shell = shell
		r.Selector = c.Render.ContainerSelector
		r.Lang = dates.Locale()
		r.OnDiagnostic = l.Diagnostic
		r.OnHookError = l.HookError
		return r, nil
	case "markdown":
		return render.NewMarkdownRenderer(blocks), nil
	case "json":
		return render.NewJSONRenderer(blocks), nil
	case "pdf":
		r := render.NewPDFRenderer(dates, labels, c.Render.Footer)
		r.FontPath = c.Render.PDFFont
		r.Strict = c.Render.Strict
		return r, nil
	case "text":
		r := render.NewTextRenderer(dates, labels, c.Render.Footer)
		r.Strict = c.Render.Strict
		return r, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
