// Package config provides configuration management for articlepipe.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvLocale         = "ARTICLEPIPE_LOCALE"
	EnvStrict         = "ARTICLEPIPE_STRICT"
	EnvHighlightStyle = "ARTICLEPIPE_HIGHLIGHT_STYLE"
	EnvOutputDir      = "ARTICLEPIPE_OUTPUT_DIR"
	EnvLogLevel       = "ARTICLEPIPE_LOG_LEVEL"
	EnvPDFFont        = "ARTICLEPIPE_PDF_FONT"
)

// Output formats accepted by output.format.
var Formats = []string{"html", "markdown", "json", "pdf", "text"}

// Configuration validation errors.
var (
	ErrInvalidLocale       = errors.New("locale must be a valid BCP 47 tag")
	ErrMissingSelector     = errors.New("render.container_selector is required")
	ErrInvalidOutputFormat = errors.New("output.format must be one of: html, markdown, json, pdf, text")
	ErrMissingServeAddr    = errors.New("serve.addr is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidEnvValue     = errors.New("invalid environment override")
)

// Config represents the complete articlepipe configuration.
type Config struct {
	Locale    string          `yaml:"locale"`
	Render    RenderConfig    `yaml:"render"`
	Highlight HighlightConfig `yaml:"highlight"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Serve     ServeConfig     `yaml:"serve"`
}

// RenderConfig controls the block renderer and page host.
type RenderConfig struct {
	ContainerSelector string `yaml:"container_selector"`
	Footer            string `yaml:"footer"`
	ShellTemplate     string `yaml:"shell_template"`
	Strict            bool   `yaml:"strict"`
	Sanitize          bool   `yaml:"sanitize"`

	// PDFFont is a UTF-8 TrueType font used for PDF output. Without it PDF
	// text is limited to Latin characters.
	PDFFont string `yaml:"pdf_font"`
}

// HighlightConfig controls the post-render syntax highlighting pass.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
}

// OutputConfig defines where and how rendered files are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr       string `yaml:"addr"`
	ContentDir string `yaml:"content_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Locale: "zh-CN",
		Render: RenderConfig{
			ContainerSelector: ".article",
			Footer:            "© 2025 ShitHub | JuX",
		},
		Highlight: HighlightConfig{
			Enabled: true,
			Style:   "github",
		},
		Output: OutputConfig{
			Format: "html",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Serve: ServeConfig{
			Addr:       "127.0.0.1:8080",
			ContentDir: ".",
		},
	}
}

// LoadConfig loads configuration from a YAML file layered over Default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the file at path
// if non-empty, then a .env file in the working directory if present, then
// ARTICLEPIPE_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from ARTICLEPIPE_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLocale); v != "" {
		c.Locale = v
	}
	if v := getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvStrict, v)
		}
		c.Render.Strict = strict
	}
	if v := getenv(EnvHighlightStyle); v != "" {
		c.Highlight.Style = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
	if v := getenv(EnvPDFFont); v != "" {
		c.Render.PDFFont = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}

	if strings.TrimSpace(c.Render.ContainerSelector) == "" {
		return ErrMissingSelector
	}

	validFormat := false
	for _, f := range Formats {
		if c.Output.Format == f {
			validFormat = true
		}
	}
	if !validFormat {
		return ErrInvalidOutputFormat
	}

	if c.Serve.Addr == "" {
		return ErrMissingServeAddr
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Locale: %s, Strict: %t, Format: %s, Highlight: %t}",
		c.Locale,
		c.Render.Strict,
		c.Output.Format,
		c.Highlight.Enabled,
	)
}
