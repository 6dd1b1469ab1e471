package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/load"
	"github.com/gaurav-prasanna/articlepipe/core/output"
	"github.com/gaurav-prasanna/articlepipe/core/render"
	"github.com/gaurav-prasanna/articlepipe/internal/config"
	"github.com/gaurav-prasanna/articlepipe/internal/logger"
)

const articleJSON = `{
  "meta": {"title": "Preview", "authors": ["Alice"], "publishedDate": "2025-01-15"},
  "content": [
    {"type": "heading", "data": {"level": 2, "text": "See [docs](/docs)"}},
    {"type": "code", "data": {"code": "x := 1", "language": "go"}}
  ]
}`

const brokenJSON = `{
  "meta": {"title": "Broken"},
  "content": [{"type": "list", "data": {"style": "ordered"}}]
}`

func quietLogger() *logger.Logger {
	return logger.New(io.Discard, "error")
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestRouter(t *testing.T, strict bool) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	writeDoc(t, filepath.Join(dir, "intro.json"), articleJSON)
	writeDoc(t, filepath.Join(dir, "drafts", "broken.json"), brokenJSON)

	c := config.Default()
	c.Serve.ContentDir = dir
	c.Render.Strict = strict
	return newRouter(c, quietLogger()), dir
}

func serve(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestServe_ListArticles(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := serve(r, http.MethodGet, "/articles", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Articles []string `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"drafts/broken.json", "intro.json"}, resp.Articles)
}

func TestServe_GetArticleHTML(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := serve(r, http.MethodGet, "/articles/intro.json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Preview", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find(".article h2 a.article-link").Length())
	assert.True(t, doc.Find("code.language-go").HasClass("chroma"))
	assert.True(t, doc.Find(".article").Children().Last().HasClass("footer"))
}

func TestServe_GetArticleFormats(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := serve(r, http.MethodGet, "/articles/intro.json?format=markdown", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# Preview")

	w = serve(r, http.MethodGet, "/articles/intro.json?format=docx", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServe_GetArticleNotFound(t *testing.T) {
	r, _ := newTestRouter(t, false)

	for _, target := range []string{
		"/articles/missing.json",
		"/articles/../secret.json",
		"/articles/notes.txt",
	} {
		w := serve(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestServe_StrictMissingField(t *testing.T) {
	r, _ := newTestRouter(t, true)

	w := serve(r, http.MethodGet, "/articles/drafts/broken.json", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Type   string   `json:"type"`
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Type)
	assert.Equal(t, []string{"items"}, resp.Fields)
}

func TestServe_RenderBody(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := serve(r, http.MethodPost, "/render?format=text", "application/json", articleJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Preview\n"))

	yamlBody := "meta:\n  title: From YAML\ncontent: []\n"
	w = serve(r, http.MethodPost, "/render", "application/yaml", yamlBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>From YAML</title>")

	w = serve(r, http.MethodPost, "/render", "application/json", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServe_RenderBodyTooLarge(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := serve(r, http.MethodPost, "/render", "application/json", strings.Repeat("a", maxBodySize+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	body := `{"meta":{"title":"Edge"},"content":[]}`
	body += strings.Repeat(" ", maxBodySize-len(body))
	w = serve(r, http.MethodPost, "/render?format=json", "application/json", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServe_StrictAppliesToEveryFormat(t *testing.T) {
	r, _ := newTestRouter(t, true)

	for _, format := range []string{"html", "markdown", "json", "pdf", "text"} {
		w := serve(r, http.MethodGet, "/articles/drafts/broken.json?format="+format, "", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, format)
	}
}

func TestSafeJoin(t *testing.T) {
	root := filepath.Join("content")

	full, ok := safeJoin(root, "a/b.json")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "b.json"), full)

	for _, rel := range []string{"", "../x.json", "a/../../x.json"} {
		_, ok := safeJoin(root, rel)
		assert.False(t, ok, rel)
	}
}

func resetFormatFlags() {
	flagHTML, flagMarkdown, flagJSON, flagPDF, flagText = false, false, false, false, false
}

func TestSelectFormat(t *testing.T) {
	t.Cleanup(resetFormatFlags)

	resetFormatFlags()
	got, err := selectFormat("")
	require.NoError(t, err)
	assert.Equal(t, "html", got)

	got, err = selectFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "json", got)

	flagText = true
	got, err = selectFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "text", got)

	flagPDF = true
	_, err = selectFormat("")
	assert.Error(t, err)
}

func TestNewRenderer(t *testing.T) {
	c := config.Default()
	for format := range contentTypes {
		r, err := newRenderer(c, format, quietLogger())
		require.NoError(t, err, format)
		assert.NotEmpty(t, r.Extension(), format)
	}

	_, err := newRenderer(c, "docx", quietLogger())
	assert.Error(t, err)

	c.Render.ShellTemplate = filepath.Join(t.TempDir(), "missing.html")
	_, err = newRenderer(c, "html", quietLogger())
	assert.Error(t, err)
}

func TestRunAll(t *testing.T) {
	src := t.TempDir()
	writeDoc(t, filepath.Join(src, "intro.json"), articleJSON)
	writeDoc(t, filepath.Join(src, "2025", "notes.yaml"), "meta:\n  title: Notes\ncontent: []\n")

	out := t.TempDir()
	writer, err := output.New(out)
	require.NoError(t, err)

	renderer, err := newRenderer(config.Default(), "markdown", quietLogger())
	require.NoError(t, err)

	require.NoError(t, runAll(context.Background(), src, load.New(), renderer, writer))
	assert.FileExists(t, filepath.Join(out, "intro.md"))
	assert.FileExists(t, filepath.Join(out, "2025", "notes.md"))
}

func TestRunOnly_NamesBySlug(t *testing.T) {
	src := filepath.Join(t.TempDir(), "intro.json")
	writeDoc(t, src, articleJSON)

	out := t.TempDir()
	writer, err := output.New(out)
	require.NoError(t, err)

	renderer, err := newRenderer(config.Default(), "json", quietLogger())
	require.NoError(t, err)

	require.NoError(t, runOnly(context.Background(), src, load.New(), renderer, writer))
	assert.FileExists(t, filepath.Join(out, "preview.json"))
}

func TestProblems(t *testing.T) {
	doc := `{"meta":{},"content":[{"type":"banner","data":{}},{"type":"quote","data":{}}]}`
	path := filepath.Join(t.TempDir(), "bad.json")
	writeDoc(t, path, doc)

	err := validateSource(context.Background(), load.New(), path)
	require.Error(t, err)
	assert.Len(t, problems(err), 3)

	writeDoc(t, path, articleJSON)
	assert.NoError(t, validateSource(context.Background(), load.New(), path))
}

func TestNewRenderer_StrictAndFontReachEveryFormat(t *testing.T) {
	c := config.Default()
	c.Render.Strict = true
	c.Render.PDFFont = "/fonts/NotoSansSC.ttf"

	r, err := newRenderer(c, "pdf", quietLogger())
	require.NoError(t, err)
	pdf, ok := r.(*render.PDFRenderer)
	require.True(t, ok)
	assert.Equal(t, "/fonts/NotoSansSC.ttf", pdf.FontPath)
	assert.True(t, pdf.Strict)

	broken, err := core.Decode([]byte(brokenJSON), core.FormatJSON)
	require.NoError(t, err)

	for _, format := range []string{"html", "markdown", "json", "text"} {
		r, err := newRenderer(c, format, quietLogger())
		require.NoError(t, err, format)

		_, err = r.Render(broken)
		var mfe *core.MissingFieldError
		assert.True(t, errors.As(err, &mfe), format)
	}
}
