// Package output handles file naming and writing for rendered articles.
// Single documents are named after their slugged title (e.g. hello-world.html).
// In --all mode, filenames mirror the source tree under the input directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// fallbackName is used when neither title nor source yields a usable name.
const fallbackName = "article"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOne writes output for a single document.
// The filename is the slugged title, or the source's base name when the
// title slugs to nothing.
func (w *Writer) WriteOne(title, source string, data []byte, ext string) (string, error) {
	name := Name(title, source)
	full := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", full, err)
	}
	return full, nil
}

// WriteTree writes output for --all mode, mirroring source's path relative
// to root. Example: posts/2025/intro.yaml → <out>/2025/intro.html
func (w *Writer) WriteTree(root, source string, data []byte, ext string) (string, error) {
	rel, err := filepath.Rel(root, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", source, root)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	full := filepath.Join(w.OutputDir, rel+ext)

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", full, err)
	}
	return full, nil
}

// Name derives a flat, filesystem-safe base name for a document.
// Example: "Hello, World!" → hello-world; "" from /x/intro.json → intro
func Name(title, source string) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	if s := slug.Make(baseName(source)); s != "" {
		return s
	}
	return fallbackName
}

// baseName returns the final path element of a file path or URL, without
// its extension.
func baseName(source string) string {
	if parsed, err := url.Parse(source); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		p := strings.Trim(parsed.Path, "/")
		if p == "" {
			return parsed.Host
		}
		base := path.Base(p)
		return strings.TrimSuffix(base, path.Ext(base))
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
