package cmd

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/articlepipe/core"
	"github.com/gaurav-prasanna/articlepipe/core/load"
	"github.com/gaurav-prasanna/articlepipe/internal/config"
	"github.com/gaurav-prasanna/articlepipe/internal/logger"
)

// maxBodySize bounds POST /render request bodies.
const maxBodySize = 4 << 20

var (
	flagAddr       string
	flagContentDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview rendered articles over HTTP",
	Long: `Serve starts a local preview server.

Routes:
  GET  /articles          list documents under the content directory
  GET  /articles/*path    render a document (?format=html|markdown|json|pdf|text)
  POST /render            render the request body (JSON, YAML or TOML by Content-Type)

Examples:
  articlepipe serve --content_dir ./content
  articlepipe serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&flagContentDir, "content_dir", "", "Directory of article documents (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagAddr != "" {
		cfg.Serve.Addr = flagAddr
	}
	if flagContentDir != "" {
		cfg.Serve.ContentDir = flagContentDir
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(cfg, log)

	log.Info("serving articles", "addr", cfg.Serve.Addr, "content_dir", cfg.Serve.ContentDir)
	return r.Run(cfg.Serve.Addr)
}

// server holds the handlers' shared, read-only state. Each request builds
// its own render pass.
type server struct {
	cfg    *config.Config
	log    *logger.Logger
	loader *load.Loader
}

// newRouter wires the preview routes.
func newRouter(c *config.Config, l *logger.Logger) *gin.Engine {
	s := &server{cfg: c, log: l, loader: load.New()}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/articles", s.listArticles)
	r.GET("/articles/*path", s.getArticle)
	r.POST("/render", s.renderBody)
	return r
}

func (s *server) listArticles(c *gin.Context) {
	sources, err := load.Discover(s.cfg.Serve.ContentDir)
	if err != nil {
		s.log.Error("listing articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		rel, err := filepath.Rel(s.cfg.Serve.ContentDir, src)
		if err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	c.JSON(http.StatusOK, gin.H{"articles": paths})
}

func (s *server) getArticle(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	full, ok := safeJoin(s.cfg.Serve.ContentDir, rel)
	if !ok || !load.IsDocument(full) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	doc, err := s.loader.File.Load(c.Request.Context(), full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		s.log.Warn("loading article", "path", rel, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.respond(c, doc)
}

func (s *server) renderBody(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	doc, err := core.Decode(body, load.FormatFor(c.ContentType(), ""))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.respond(c, doc)
}

// respond renders doc in the format named by the "format" query parameter.
func (s *server) respond(c *gin.Context, doc *core.ArticleDocument) {
	format := c.DefaultQuery("format", "html")
	contentType, ok := contentTypes[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown format: " + format})
		return
	}

	renderer, err := newRenderer(s.cfg, format, s.log)
	if err != nil {
		s.log.Error("building renderer", "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Renderer unavailable"})
		return
	}

	data, err := renderer.Render(doc)
	if err != nil {
		var mf *core.MissingFieldError
		if errors.As(err, &mf) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  err.Error(),
				"block":  mf.Block,
				"type":   mf.Type,
				"fields": mf.Fields,
			})
			return
		}
		s.log.Error("rendering article", "title", doc.Meta.Title, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render failed"})
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// safeJoin joins rel under root, rejecting paths that escape it.
func safeJoin(root, rel string) (string, bool) {
	if rel == "" {
		return "", false
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	inside, err := filepath.Rel(root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
