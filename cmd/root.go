// Package cmd implements the CLI commands for ArticlePipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/articlepipe/internal/config"
	"github.com/gaurav-prasanna/articlepipe/internal/logger"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "articlepipe",
	Short: "ArticlePipe — render structured article documents",
	Long: `ArticlePipe is a deterministic rendering pipeline that turns structured
article documents (JSON, YAML or TOML) into HTML, Markdown, JSON, PDF, or text.

Usage:
  articlepipe render <file|url|dir> [flags]
  articlepipe validate <file|url>...
  articlepipe serve [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves the effective configuration and logger before any
// subcommand runs.
func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	log = logger.NewLogger(cfg.Logging.Level)
	log.Debug("configuration loaded", "config", cfg.String())
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
