// Package pipeline turns sources into statistics reports.
// For pages it runs fetch → extract → normalize → analyze; for files and
// stdin it analyzes the decoded text directly. Documents are independent,
// so Run analyzes several of them at once with a bounded worker group.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/chunk"
	"github.com/gaurav-prasanna/pagestat/core/count"
	"github.com/gaurav-prasanna/pagestat/core/normalize"
)

// Options control report contents.
type Options struct {
	Top           int
	CaseSensitive bool
	Plain         bool
	NFC           bool
	ChunkSize     int
	Characters    []string
	Substrings    []string
	Workers       int
}

// Pipeline wires the page stages together.
type Pipeline struct {
	Fetcher    core.Fetcher
	Extractor  core.Extractor
	Normalizer core.Normalizer
	Options    Options
	Logger     *zap.Logger

	runID string
	now   func() time.Time
}

// New creates a Pipeline. Every report it produces carries the same run ID.
func New(fetcher core.Fetcher, extractor core.Extractor, normalizer core.Normalizer, opts Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		Fetcher:    fetcher,
		Extractor:  extractor,
		Normalizer: normalizer,
		Options:    opts,
		Logger:     logger,
		runID:      uuid.NewString(),
		now:        time.Now,
	}
}

// RunID returns the identifier stamped on this pipeline's reports.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Load turns a page URL into a Document: fetch, extract, normalize and,
// when Options.Plain is set, strip Markdown syntax.
func (p *Pipeline) Load(ctx context.Context, rawURL string) (*core.Document, error) {
	// 1. Fetch
	result, err := p.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc := &core.Document{Source: rawURL, Kind: core.KindURL}
	if result.HTML == nil {
		p.Logger.Debug("page has no body", zap.String("url", rawURL), zap.Int("status", result.StatusCode))
		return doc, nil
	}

	// 2. Extract main content
	content, err := p.Extractor.Extract(*result.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	doc.Title = content.Title
	doc.Language = content.Language

	// 3. Normalize to Markdown
	text, err := p.Normalizer.Normalize(content.HTML)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	if p.Options.Plain {
		text = normalize.PlainText(text)
	}
	doc.Text = &text
	return doc, nil
}

// Analyze builds the report for one document.
func (p *Pipeline) Analyze(doc *core.Document) *core.Report {
	started := p.now()

	text := doc.Text
	if text != nil && p.Options.NFC {
		composed := normalize.NFC(*text)
		text = &composed
	}

	stats := count.AnalyzeOptional(text)
	if p.Options.CaseSensitive && text != nil {
		stats.WordFrequency = count.WordFrequency(*text, true)
	}

	report := &core.Report{
		Metadata: core.DocumentMetadata{
			Source:     doc.Source,
			Kind:       doc.Kind,
			Title:      doc.Title,
			Language:   doc.Language,
			RunID:      p.runID,
			AnalyzedAt: started.UTC().Format(time.RFC3339),
		},
		Stats:         stats,
		TopWords:      stats.WordFrequency.Top(p.Options.Top),
		TopCharacters: stats.CharacterFrequency.Top(p.Options.Top),
	}

	var body string
	if text != nil {
		body = *text
	}
	for _, c := range p.Options.Characters {
		report.Targets = append(report.Targets, core.TargetCount{
			Kind: "character", Target: c, Count: count.Character(body, c),
		})
	}
	for _, s := range p.Options.Substrings {
		report.Targets = append(report.Targets, core.TargetCount{
			Kind: "substring", Target: s, Count: count.Substring(body, s),
		})
	}

	if p.Options.ChunkSize > 0 {
		for i, part := range chunk.New(p.Options.ChunkSize).Chunk(body) {
			report.Chunks = append(report.Chunks, core.ChunkStats{
				Index:      i + 1,
				Words:      count.Words(part),
				Characters: count.Characters(part),
				Sentences:  count.Sentences(part),
			})
		}
	}

	report.Metadata.ElapsedMS = float64(p.now().Sub(started)) / float64(time.Millisecond)
	return report
}

// Job is one unit of work for Run: either a URL to load or a ready Document.
type Job struct {
	URL      string
	Document *core.Document
}

// Result pairs a job with its report or the error that stopped it.
type Result struct {
	Job    Job
	Report *core.Report
	Err    error
}

// Source returns the URL or document source the result belongs to.
func (r Result) Source() string {
	if r.Job.Document != nil {
		return r.Job.Document.Source
	}
	return r.Job.URL
}

// Run processes jobs with at most Options.Workers in flight and calls fn
// for every result as it completes. fn is never called concurrently.
// Per-job failures are delivered to fn; Run itself only returns the
// context's error when the run is canceled.
func (p *Pipeline) Run(ctx context.Context, jobs []Job, fn func(Result)) error {
	workers := p.Options.Workers
	if workers < 1 {
		workers = 1
	}

	results := make(chan Result)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// Collector: serializes callbacks.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			fn(r)
		}
	}()

	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := p.process(gctx, job)
			select {
			case results <- r:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	err := g.Wait()
	close(results)
	<-done

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (p *Pipeline) process(ctx context.Context, job Job) Result {
	doc := job.Document
	if doc == nil {
		loaded, err := p.Load(ctx, job.URL)
		if err != nil {
			p.Logger.Warn("document failed", zap.String("source", job.URL), zap.Error(err))
			return Result{Job: job, Err: err}
		}
		doc = loaded
	}

	report := p.Analyze(doc)
	p.Logger.Debug("document analyzed",
		zap.String("source", doc.Source),
		zap.Int("words", report.Stats.Words),
		zap.Duration("elapsed", report.Elapsed()))
	return Result{Job: job, Report: report}
}
