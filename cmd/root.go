// Package cmd implements the CLI commands for PageStat using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaurav-prasanna/pagestat/config"
)

var (
	// Global flags
	flagConfig  string
	flagVerbose bool

	logger = zap.NewNop()

	// newLogger builds the run's logger; tests swap it for a no-op.
	newLogger = func(verbose bool) (*zap.Logger, error) {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return cfg.Build()
	}
)

var rootCmd = &cobra.Command{
	Use:   "pagestat",
	Short: "PageStat — text statistics for web pages, files and stdin",
	Long: `PageStat counts characters, words, lines, sentences, paragraphs and
character classes in text, and reports word and character frequencies.

Text can come from web pages (main content only), local files or globs, or
standard input. Reports are printed as terminal tables or written as JSON,
YAML, Markdown or PDF.

Usage:
  pagestat analyze <source>... [flags]
  pagestat watch <file>... [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(flagVerbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file named by --config (or the default
// location) and applies environment overrides.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", zap.String("path", path))
	return cfg, nil
}
