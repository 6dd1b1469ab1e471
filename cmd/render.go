// Package cmd — render command.
// This is the main command that orchestrates the pipeline:
// load → decode → render → mount → highlight → write.
//
// It handles flag validation, renderer selection, and single / --all modes.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/load"
	"github.com/gaurav-prasanna/articlepipe/core/output"
)

// Flag variables.
var (
	flagAll         bool
	flagHTML        bool
	flagMarkdown    bool
	flagJSON        bool
	flagPDF         bool
	flagText        bool
	flagOutputDir   string
	flagStrict      bool
	flagNoHighlight bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file|url|dir>",
	Short: "Render an article document to the specified output format",
	Long: `Render loads a structured article document, renders its header, content
blocks and footer, and writes the result in the chosen format (HTML by default).

Examples:
  articlepipe render post.json
  articlepipe render post.yaml --markdown --output_dir ./out
  articlepipe render https://example.com/posts/intro.json --pdf
  articlepipe render ./content --all --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Mode flags.
	renderCmd.Flags().BoolVar(&flagAll, "all", false, "Render every document under the given directory")

	// Output format flags (mutually exclusive).
	renderCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML page")
	renderCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	renderCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	renderCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	renderCmd.Flags().BoolVar(&flagText, "text", false, "Output plain text")

	// Render behavior.
	renderCmd.Flags().BoolVar(&flagStrict, "strict", false, "Abort on blocks with missing required fields")
	renderCmd.Flags().BoolVar(&flagNoHighlight, "no-highlight", false, "Skip syntax highlighting of code blocks")

	// Output directory.
	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runRender(cmd *cobra.Command, args []string) error {
	source := args[0]

	// --- Validate flags ---
	format, err := selectFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if flagAll && load.IsURL(source) {
		return fmt.Errorf("--all requires a local directory, got %s", source)
	}

	if cmd.Flags().Changed("strict") {
		cfg.Render.Strict = flagStrict
	}
	if flagNoHighlight {
		cfg.Highlight.Enabled = false
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}

	renderer, err := newRenderer(cfg, format, log)
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loader := load.New()

	if flagAll {
		return runAll(ctx, source, loader, renderer, writer)
	}
	return runOnly(ctx, source, loader, renderer, writer)
}

// runOnly renders a single document.
func runOnly(
	ctx context.Context,
	source string,
	loader core.Loader,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Rendering %s...\n", source)

	doc, data, err := processSource(ctx, source, loader, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteOne(doc.Meta.Title, source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll renders every document found under root, mirroring its layout.
// A failing document is reported and skipped.
func runAll(
	ctx context.Context,
	root string,
	loader core.Loader,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering documents under %s...\n", root)

	sources, err := load.Discover(root)
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d documents to render\n", len(sources))

	var errCount int
	for i, source := range sources {
		fmt.Fprintf(os.Stdout, "[%d/%d] Rendering %s\n", i+1, len(sources), source)

		_, data, err := processSource(ctx, source, loader, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteTree(root, source, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d documents failed", errCount, len(sources))
	}
	return nil
}

// processSource runs a single document through the pipeline.
func processSource(
	ctx context.Context,
	source string,
	loader core.Loader,
	renderer core.Renderer,
) (*core.ArticleDocument, []byte, error) {
	// 1. Load and decode
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}

	// 2. Render to output format
	data, err := renderer.Render(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}

	return doc, data, nil
}

// selectFormat returns the output format chosen by flags, or fallback when
// no format flag is set. At most one format flag may be given.
func selectFormat(fallback string) (string, error) {
	chosen := map[string]bool{
		"html":     flagHTML,
		"markdown": flagMarkdown,
		"json":     flagJSON,
		"pdf":      flagPDF,
		"text":     flagText,
	}

	var format string
	formatCount := 0
	for name, on := range chosen {
		if on {
			format = name
			formatCount++
		}
	}

	if formatCount > 1 {
		return "", fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if formatCount == 0 {
		if fallback == "" {
			return "html", nil
		}
		return fallback, nil
	}
	return format, nil
}
