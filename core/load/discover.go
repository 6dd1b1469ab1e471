package load

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// maxDocuments bounds a single --all run.
const maxDocuments = 1000

// Discover returns every article document under root, in lexical order.
// Hidden files and directories are skipped, as are files whose extension
// has no decoder. Symlinked paths resolving to an already queued file are
// reported once.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDocument(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	queue := NewQueue()
	resolved := make(map[string]bool)
	for _, path := range paths {
		if queue.Len() >= maxDocuments {
			break
		}
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			continue // Dangling link, nothing to render.
		}
		if resolved[target] {
			continue
		}
		resolved[target] = true
		queue.Add(path)
	}
	return queue.All(), nil
}

// IsDocument reports whether path has an extension Decode understands.
func IsDocument(path string) bool {
	_, err := core.FormatFromPath(path)
	return err == nil
}
