package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		title  string
		source string
		want   string
	}{
		{"Hello, World!", "x.json", "hello-world"},
		{"", "/posts/intro.yaml", "intro"},
		{"  ", "https://example.com/feed/Launch%20Day.json", "launch-day"},
		{"", "https://example.com/", "example-com"},
		{"", "", fallbackName},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.title, tt.source), tt.title+"|"+tt.source)
	}

	assert.NotEmpty(t, Name("测试文章", ""))
}

func TestWriter_WriteOne(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteOne("Go Tips", "ignored.json", []byte("<p>x</p>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "go-tips.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", string(data))
}

func TestWriter_WriteTree(t *testing.T) {
	out := t.TempDir()
	w, err := New(out)
	require.NoError(t, err)

	root := filepath.Join("content", "posts")
	path, err := w.WriteTree(root, filepath.Join(root, "2025", "intro.yaml"), []byte("# hi"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "2025", "intro.md"), path)
	assert.FileExists(t, path)

	_, err = w.WriteTree(root, filepath.Join("elsewhere", "x.json"), nil, ".md")
	assert.Error(t, err)
}
