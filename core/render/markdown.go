// Package render provides output renderers for the PageStat pipeline.
// This file implements the Markdown renderer: a human-readable report with
// one table per section and locale-grouped numbers ("12,345").
package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/count"
)

// MarkdownRenderer writes the report as a Markdown document.
type MarkdownRenderer struct {
	printer *message.Printer
}

// NewMarkdownRenderer creates a MarkdownRenderer formatting numbers for
// the given locale. The zero language.Tag falls back to English.
func NewMarkdownRenderer(lang language.Tag) *MarkdownRenderer {
	if lang == language.Und {
		lang = language.English
	}
	return &MarkdownRenderer{printer: message.NewPrinter(lang)}
}

// Render builds the Markdown report.
func (r *MarkdownRenderer) Render(report *core.Report) ([]byte, error) {
	var b strings.Builder
	p := r.printer
	meta := report.Metadata

	title := meta.Title
	if title == "" {
		title = meta.Source
	}
	p.Fprintf(&b, "# Text statistics: %s\n\n", escapeCell(title))
	p.Fprintf(&b, "- **Source:** %s (%s)\n", meta.Source, meta.Kind)
	if meta.Language != "" {
		p.Fprintf(&b, "- **Language:** %s\n", meta.Language)
	}
	p.Fprintf(&b, "- **Analyzed:** %s in %.2f ms\n", meta.AnalyzedAt, meta.ElapsedMS)
	p.Fprintf(&b, "- **Run:** `%s`\n\n", meta.RunID)

	b.WriteString("## Counts\n\n| Metric | Count |\n|---|---:|\n")
	for _, row := range statRows(report.Stats) {
		p.Fprintf(&b, "| %s | %d |\n", row.label, row.value)
	}

	writeEntries(&b, p, "Top words", "Word", report.TopWords)
	writeEntries(&b, p, "Top characters", "Character", report.TopCharacters)

	if len(report.Targets) > 0 {
		b.WriteString("\n## Targeted counts\n\n| Kind | Target | Count |\n|---|---|---:|\n")
		for _, t := range report.Targets {
			p.Fprintf(&b, "| %s | `%s` | %d |\n", t.Kind, escapeCell(t.Target), t.Count)
		}
	}

	if len(report.Chunks) > 0 {
		b.WriteString("\n## Chunks\n\n| # | Words | Characters | Sentences |\n|---:|---:|---:|---:|\n")
		for _, c := range report.Chunks {
			p.Fprintf(&b, "| %d | %d | %d | %d |\n", c.Index, c.Words, c.Characters, c.Sentences)
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func writeEntries(b *strings.Builder, p *message.Printer, heading, column string, entries []count.Entry) {
	if len(entries) == 0 {
		return
	}
	p.Fprintf(b, "\n## %s\n\n| %s | Count |\n|---|---:|\n", heading, column)
	for _, e := range entries {
		p.Fprintf(b, "| %s | %d |\n", displayKey(e.Key), e.Count)
	}
}

// escapeCell keeps pipes and newlines from breaking a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
