// Package output handles file naming and writing for PageStat reports.
// Single sources get a flat name derived from the source (example_com_docs.json,
// notes_txt.json). Crawled pages mirror the URL path under the host directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/pagestat/core"
)

// StdinName is the base filename used for reports read from standard input.
const StdinName = "stdin"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes one report under a flat filename derived from its source.
func (w *Writer) WriteOnly(source string, kind core.SourceKind, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FlatName(source, kind)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes a crawled page's report, mirroring the URL path structure.
// Example: https://site.com/docs/intro → <dir>/site_com/docs/intro.json
func (w *Writer) WriteAll(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	urlPath := strings.Trim(parsed.Path, "/")
	if urlPath == "" {
		urlPath = "index"
	}
	segments := []string{w.OutputDir, sanitize(parsed.Host)}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segments = append(segments, sanitize(seg))
	}

	fullPath := filepath.Join(segments...) + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FlatName converts a source into a flat filename without extension.
// Example: https://example.com/docs/intro → example_com_docs_intro,
// docs/intro.md → docs_intro_md.
func FlatName(source string, kind core.SourceKind) string {
	switch kind {
	case core.KindStdin:
		return StdinName
	case core.KindFile:
		rel := filepath.ToSlash(filepath.Clean(source))
		rel = strings.TrimLeft(rel, "./")
		return joinSegments(strings.Split(rel, "/"))
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return sanitize(source)
	}
	parts := []string{parsed.Host}
	parts = append(parts, strings.Split(strings.Trim(parsed.Path, "/"), "/")...)
	return joinSegments(parts)
}

func joinSegments(segs []string) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		if seg == "" || seg == ".." {
			continue
		}
		parts = append(parts, sanitize(seg))
	}
	if len(parts) == 0 {
		return "index"
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
