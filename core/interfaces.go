// Package core defines the pipeline interfaces and report types for PageStat.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/pagestat/core/count"
)

// SourceKind identifies where a document's text came from.
type SourceKind string

const (
	KindURL   SourceKind = "url"
	KindFile  SourceKind = "file"
	KindStdin SourceKind = "stdin"
)

// FetchResult holds the decoded body and response metadata from a fetch.
// HTML is nil when the server answered without a body (e.g. 204).
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	HTML        *string
}

// Content is the main content isolated from a page by an Extractor.
type Content struct {
	HTML     string
	Title    string
	Language string
}

// Document is one unit of text to analyze.
type Document struct {
	Source string
	Kind   SourceKind
	// Text is nil for a source that produced no body at all.
	Text     *string
	Title    string
	Language string
}

// DocumentMetadata describes the analyzed document and the run.
type DocumentMetadata struct {
	Source     string     `json:"source" yaml:"source"`
	Kind       SourceKind `json:"kind" yaml:"kind"`
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Language   string     `json:"language,omitempty" yaml:"language,omitempty"`
	RunID      string     `json:"run_id" yaml:"run_id"`
	AnalyzedAt string     `json:"analyzed_at" yaml:"analyzed_at"` // ISO8601
	ElapsedMS  float64    `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// TargetCount is the result of one targeted counter (a character or a substring).
type TargetCount struct {
	Kind   string `json:"kind" yaml:"kind"` // "character" or "substring"
	Target string `json:"target" yaml:"target"`
	Count  int    `json:"count" yaml:"count"`
}

// ChunkStats holds the headline counts for one word chunk of the document.
type ChunkStats struct {
	Index      int `json:"index" yaml:"index"`
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
	Sentences  int `json:"sentences" yaml:"sentences"`
}

// Report is the complete statistics output for a single document.
type Report struct {
	Metadata      DocumentMetadata `json:"metadata" yaml:"metadata"`
	Stats         count.Stats      `json:"stats" yaml:"stats"`
	TopWords      []count.Entry    `json:"top_words" yaml:"top_words"`
	TopCharacters []count.Entry    `json:"top_characters" yaml:"top_characters"`
	Targets       []TargetCount    `json:"targets,omitempty" yaml:"targets,omitempty"`
	Chunks        []ChunkStats     `json:"chunks,omitempty" yaml:"chunks,omitempty"`
}

// Elapsed returns the analysis duration recorded in the metadata.
func (r *Report) Elapsed() time.Duration {
	return time.Duration(r.Metadata.ElapsedMS * float64(time.Millisecond))
}

// Fetcher retrieves a page body from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (*Content, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical text format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a Report into a final output format.
type Renderer interface {
	Render(report *Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
