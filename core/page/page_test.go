package page

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/articlepipe/core"
)

func TestNew_DefaultShell(t *testing.T) {
	p, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Container().Length())
	assert.True(t, p.Container().HasClass("article"))
}

func TestNew_NoContainer(t *testing.T) {
	_, err := New("<html><body><main></main></body></html>", ".article")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContainer))
}

func TestAppend_PreservesOrder(t *testing.T) {
	p, err := New("", "")
	require.NoError(t, err)

	p.Append(core.Fragment{Kind: core.FragmentHeader, HTML: `<div class="article-header">h</div>`})
	p.Append(core.Fragment{Kind: core.FragmentBlock, HTML: `<p class="paragraph">one</p>`})
	p.Append(core.Fragment{Kind: core.FragmentBlock, HTML: `<p class="paragraph">two</p>`})
	p.Append(core.Fragment{Kind: core.FragmentFooter, HTML: `<div class="footer">f</div>`})

	children := p.Container().Children()
	require.Equal(t, 4, children.Length())
	assert.True(t, children.Eq(0).HasClass("article-header"))
	assert.Equal(t, "one", children.Eq(1).Text())
	assert.Equal(t, "two", children.Eq(2).Text())
	assert.True(t, children.Eq(3).HasClass("footer"))
}

func TestSetTitle(t *testing.T) {
	p, err := New("", "")
	require.NoError(t, err)
	p.SetTitle("标题 & <more>")
	assert.Equal(t, "标题 & <more>", p.Document().Find("title").Text())

	out, err := p.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, "<title>标题 &amp; &lt;more&gt;</title>")
}

func TestSetTitle_CreatesTitleElement(t *testing.T) {
	p, err := New(`<html><head></head><body><section id="post"></section></body></html>`, "#post")
	require.NoError(t, err)
	p.SetTitle("New")
	assert.Equal(t, 1, p.Document().Find("head title").Length())
	assert.Equal(t, "New", p.Document().Find("head title").Text())
}

func TestSetLang(t *testing.T) {
	p, err := New("", "")
	require.NoError(t, err)
	p.SetLang("en-US")
	lang, _ := p.Document().Find("html").Attr("lang")
	assert.Equal(t, "en-US", lang)
}

func TestLoadShell(t *testing.T) {
	shell, err := LoadShell("")
	require.NoError(t, err)
	assert.Equal(t, DefaultShell, shell)

	path := filepath.Join(t.TempDir(), "shell.html")
	require.NoError(t, os.WriteFile(path, []byte("<div class=\"article\"></div>"), 0644))
	shell, err = LoadShell(path)
	require.NoError(t, err)
	assert.Equal(t, `<div class="article"></div>`, shell)

	_, err = LoadShell(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
