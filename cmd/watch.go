// Package cmd — watch command.
// Re-analyzes local files whenever they change and prints a fresh table.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/pipeline"
	"github.com/gaurav-prasanna/pagestat/core/render"
	"github.com/gaurav-prasanna/pagestat/core/source"
	"github.com/gaurav-prasanna/pagestat/watch"
)

var flagDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Re-analyze files whenever they change",
	Long: `Watch prints a statistics table for each file, then prints a new one every
time a file is saved, until interrupted with Ctrl-C.

Examples:
  pagestat watch draft.md
  pagestat watch 'chapters/*.txt' --top 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	f := watchCmd.Flags()
	f.IntVar(&flagTop, "top", 10, "Number of most frequent words and characters to list (0 = all)")
	f.BoolVar(&flagCaseSensitive, "case_sensitive", false, "Count word frequencies case-sensitively")
	f.BoolVar(&flagNFC, "nfc", false, "Apply Unicode NFC normalization before counting")
	f.DurationVar(&flagDebounce, "debounce", 0, "Quiet period before re-analyzing (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = flagDebounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var paths []string
	for _, arg := range args {
		if kind := source.Classify(arg); kind != core.KindFile {
			return fmt.Errorf("cannot watch %s source %q", kind, arg)
		}
		matched, err := source.Expand(arg)
		if err != nil {
			return err
		}
		paths = append(paths, matched...)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := newPipeline(nil, cfg)
	renderer := render.NewTableRenderer()
	out := cmd.OutOrStdout()

	for _, path := range paths {
		if err := analyzeFile(out, p, renderer, path); err != nil {
			return err
		}
	}

	w, err := watch.New(paths, cfg.Watch.Debounce, logger, func(changed []string) {
		for _, path := range changed {
			if err := analyzeFile(out, p, renderer, path); err != nil {
				logger.Warn("re-analysis failed", zap.String("path", path), zap.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s: %v\n", path, err)
			}
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %d file(s). Press Ctrl-C to stop.\n", len(paths))

	<-ctx.Done()
	if err := w.Stop(); err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func analyzeFile(out io.Writer, p *pipeline.Pipeline, renderer core.Renderer, path string) error {
	text, err := source.ReadFile(path)
	if err != nil {
		return err
	}
	report := p.Analyze(&core.Document{Source: path, Kind: core.KindFile, Text: &text})
	data, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = out.Write(data)
	return err
}
