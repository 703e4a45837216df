// Package cmd — analyze command.
// This is the main command that orchestrates the pipeline:
// resolve sources → (fetch → extract → normalize) → analyze → render → write.
//
// It handles flag validation, renderer selection, and crawling with --all.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/pagestat/config"
	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/extract"
	"github.com/gaurav-prasanna/pagestat/core/fetch"
	"github.com/gaurav-prasanna/pagestat/core/normalize"
	"github.com/gaurav-prasanna/pagestat/core/output"
	"github.com/gaurav-prasanna/pagestat/core/pipeline"
	"github.com/gaurav-prasanna/pagestat/core/render"
	"github.com/gaurav-prasanna/pagestat/core/source"
	"github.com/gaurav-prasanna/pagestat/crawl"
)

// Flag variables.
var (
	flagAll           bool
	flagJSON          bool
	flagYAML          bool
	flagMarkdown      bool
	flagPDF           bool
	flagTable         bool
	flagTop           int
	flagCaseSensitive bool
	flagPlain         bool
	flagNFC           bool
	flagChunkSize     int
	flagChars         []string
	flagSubstrings    []string
	flagOutputDir     string
	flagWorkers       int
)

// errAllFailed is returned when no document could be analyzed.
var errAllFailed = errors.New("every document failed")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source>...",
	Short: "Report text statistics for URLs, files or stdin",
	Long: `Analyze counts characters, words, lines, sentences, paragraphs, character
classes and word/character frequencies for each source.

A source is an http(s) URL (main page content is analyzed), a file path or
doublestar glob ("docs/**/*.md"), or "-" for standard input.

Examples:
  pagestat analyze notes.txt
  cat notes.txt | pagestat analyze - --json
  pagestat analyze 'docs/**/*.md' --markdown --output_dir ./stats
  pagestat analyze https://example.com --all --yaml --top 20
  pagestat analyze essay.txt --char e --substring the --chunk_size 200`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()

	// Mode flags.
	f.BoolVar(&flagAll, "all", false, "Analyze every same-domain page discovered from each URL")

	// Output format flags (mutually exclusive).
	f.BoolVar(&flagJSON, "json", false, "Write JSON reports")
	f.BoolVar(&flagYAML, "yaml", false, "Write YAML reports")
	f.BoolVar(&flagMarkdown, "markdown", false, "Write Markdown reports")
	f.BoolVar(&flagPDF, "pdf", false, "Write PDF reports")
	f.BoolVar(&flagTable, "table", false, "Print reports as tables on stdout")
	analyzeCmd.MarkFlagsMutuallyExclusive("json", "yaml", "markdown", "pdf", "table")

	// Analysis flags.
	f.IntVar(&flagTop, "top", 10, "Number of most frequent words and characters to list (0 = all)")
	f.BoolVar(&flagCaseSensitive, "case_sensitive", false, "Count word frequencies case-sensitively")
	f.BoolVar(&flagPlain, "plain", true, "Strip Markdown syntax from page text before counting")
	f.BoolVar(&flagNFC, "nfc", false, "Apply Unicode NFC normalization before counting")
	f.IntVar(&flagChunkSize, "chunk_size", 0, "Also report stats per chunk of N words (0 = off)")
	f.StringArrayVar(&flagChars, "char", nil, "Count occurrences of a single character (repeatable)")
	f.StringArrayVar(&flagSubstrings, "substring", nil, "Count occurrences of a substring (repeatable)")

	// Output and concurrency.
	f.StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	f.IntVar(&flagWorkers, "workers", 4, "Documents analyzed concurrently")
}

// applyAnalyzeFlags overlays explicitly set flags on the loaded config.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	formats := map[string]*bool{
		config.FormatJSON:     &flagJSON,
		config.FormatYAML:     &flagYAML,
		config.FormatMarkdown: &flagMarkdown,
		config.FormatPDF:      &flagPDF,
		config.FormatTable:    &flagTable,
	}
	for name, set := range formats {
		if f.Changed(name) && *set {
			cfg.Output.Format = name
		}
	}

	if f.Changed("top") {
		cfg.Analysis.Top = flagTop
	}
	if f.Changed("case_sensitive") {
		cfg.Analysis.CaseSensitive = flagCaseSensitive
	}
	if f.Changed("plain") {
		cfg.Analysis.Plain = flagPlain
	}
	if f.Changed("nfc") {
		cfg.Analysis.NFC = flagNFC
	}
	if f.Changed("chunk_size") {
		cfg.Analysis.ChunkSize = flagChunkSize
	}
	if f.Changed("char") {
		cfg.Analysis.Characters = flagChars
	}
	if f.Changed("substring") {
		cfg.Analysis.Substrings = flagSubstrings
	}
	if f.Changed("output_dir") {
		cfg.Output.Dir = flagOutputDir
	}
	if f.Changed("workers") {
		cfg.Workers = flagWorkers
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	renderer, err := selectRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	fetcher := fetch.New(fetch.WithTimeout(cfg.Fetch.Timeout), fetch.WithUserAgent(cfg.Fetch.UserAgent))
	p := newPipeline(fetcher, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobs, crawled, failed := resolveJobs(ctx, cmd, args, fetcher, cfg)
	if len(jobs) == 0 {
		return fmt.Errorf("no documents to analyze: %w", errAllFailed)
	}

	var writer *output.Writer
	if cfg.Output.Format != config.FormatTable {
		writer, err = output.New(cfg.Output.Dir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	total := len(jobs) + failed
	logger.Info("analyzing", zap.String("run_id", p.RunID()), zap.Int("documents", len(jobs)), zap.String("format", cfg.Output.Format))

	err = p.Run(ctx, jobs, func(r pipeline.Result) {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s: %v\n", r.Source(), r.Err)
			failed++
			return
		}
		if err := emit(out, r.Report, renderer, writer, crawled[r.Source()]); err != nil {
			logger.Warn("output failed", zap.String("source", r.Source()), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s: %v\n", r.Source(), err)
			failed++
		}
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d/%d documents failed\n", failed, total)
	}
	if failed == total {
		return errAllFailed
	}
	return nil
}

// resolveJobs expands the arguments into pipeline jobs. Files and stdin are
// read up front; URLs are loaded by the pipeline. Sources that cannot be
// resolved are reported and counted in failed.
func resolveJobs(ctx context.Context, cmd *cobra.Command, args []string, fetcher core.Fetcher, cfg *config.Config) (jobs []pipeline.Job, crawled map[string]bool, failed int) {
	crawled = make(map[string]bool)
	stdinRead := false
	fail := func(arg string, err error) {
		logger.Warn("source failed", zap.String("source", arg), zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s: %v\n", arg, err)
		failed++
	}

	for _, arg := range args {
		switch source.Classify(arg) {
		case core.KindStdin:
			if stdinRead {
				fail(arg, errors.New("standard input given more than once"))
				continue
			}
			stdinRead = true
			text, err := source.ReadAll(cmd.InOrStdin())
			if err != nil {
				fail(arg, err)
				continue
			}
			jobs = append(jobs, pipeline.Job{Document: &core.Document{Source: source.Stdin, Kind: core.KindStdin, Text: &text}})

		case core.KindURL:
			if !flagAll {
				jobs = append(jobs, pipeline.Job{URL: arg})
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Discovering pages from %s...\n", arg)
			urls, err := crawl.DiscoverAll(ctx, arg, fetcher, crawl.Options{MaxPages: cfg.Crawl.MaxPages, Logger: logger})
			if err != nil {
				fail(arg, fmt.Errorf("discovering pages: %w", err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d pages to analyze\n", len(urls))
			for _, u := range urls {
				crawled[u] = true
				jobs = append(jobs, pipeline.Job{URL: u})
			}

		default:
			paths, err := source.Expand(arg)
			if err != nil {
				fail(arg, err)
				continue
			}
			for _, path := range paths {
				text, err := source.ReadFile(path)
				if err != nil {
					fail(path, err)
					continue
				}
				jobs = append(jobs, pipeline.Job{Document: &core.Document{Source: path, Kind: core.KindFile, Text: &text}})
			}
		}
	}
	return jobs, crawled, failed
}

// emit renders one report and either prints it (table format) or writes it
// to the output directory.
func emit(out io.Writer, report *core.Report, renderer core.Renderer, writer *output.Writer, mirrored bool) error {
	data, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if writer == nil {
		_, err := out.Write(data)
		return err
	}

	var path string
	if mirrored {
		path, err = writer.WriteAll(report.Metadata.Source, data, renderer.Extension())
	} else {
		path, err = writer.WriteOnly(report.Metadata.Source, report.Metadata.Kind, data, renderer.Extension())
	}
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(out, "✓ Written: %s\n", path)
	return nil
}

func newPipeline(fetcher core.Fetcher, cfg *config.Config) *pipeline.Pipeline {
	opts := pipeline.Options{
		Top:           cfg.Analysis.Top,
		CaseSensitive: cfg.Analysis.CaseSensitive,
		Plain:         cfg.Analysis.Plain,
		NFC:           cfg.Analysis.NFC,
		ChunkSize:     cfg.Analysis.ChunkSize,
		Characters:    cfg.Analysis.Characters,
		Substrings:    cfg.Analysis.Substrings,
		Workers:       cfg.Workers,
	}
	return pipeline.New(fetcher, extract.New(), normalize.New(), opts, logger)
}

// selectRenderer creates the Renderer for an output format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case config.FormatJSON:
		return render.NewJSONRenderer(), nil
	case config.FormatYAML:
		return render.NewYAMLRenderer(), nil
	case config.FormatMarkdown:
		return render.NewMarkdownRenderer(language.English), nil
	case config.FormatPDF:
		return render.NewPDFRenderer(), nil
	case config.FormatTable:
		return render.NewTableRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: no renderer for format %q", config.ErrInvalid, format)
	}
}
