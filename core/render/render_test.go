package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/pagestat/core"
	"github.com/gaurav-prasanna/pagestat/core/count"
)

func sampleReport() *core.Report {
	text := "The quick brown fox. The lazy dog!\nIt sleeps."
	stats := count.Analyze(text)
	stats.Characters = 12345
	return &core.Report{
		Metadata: core.DocumentMetadata{
			Source:     "https://example.com/docs",
			Kind:       core.KindURL,
			Title:      "Docs | Example",
			Language:   "en",
			RunID:      "3f1c9f3e-0000-4000-8000-000000000000",
			AnalyzedAt: "2026-01-02T03:04:05Z",
			ElapsedMS:  1.5,
		},
		Stats:         stats,
		TopWords:      stats.WordFrequency.Top(2),
		TopCharacters: []count.Entry{{Key: " ", Count: 7}, {Key: "e", Count: 5}},
		Targets:       []core.TargetCount{{Kind: "substring", Target: "the", Count: 2}},
		Chunks:        []core.ChunkStats{{Index: 1, Words: 9, Characters: 46, Sentences: 3}},
	}
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	assert.Equal(t, ".json", r.Extension())

	data, err := r.Render(sampleReport())
	require.NoError(t, err)

	var got core.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 12345, got.Stats.Characters)
	assert.Equal(t, 2, got.Stats.WordFrequency["the"])
	assert.Equal(t, "en", got.Metadata.Language)
	assert.Contains(t, string(data), `"word_frequency"`)
}

func TestYAMLRenderer(t *testing.T) {
	r := NewYAMLRenderer()
	assert.Equal(t, ".yaml", r.Extension())

	data, err := r.Render(sampleReport())
	require.NoError(t, err)

	var got core.Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 3, got.Stats.Sentences)
	assert.Equal(t, []core.TargetCount{{Kind: "substring", Target: "the", Count: 2}}, got.Targets)
	assert.Contains(t, string(data), "run_id: 3f1c9f3e")
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(language.English)
	assert.Equal(t, ".md", r.Extension())

	data, err := r.Render(sampleReport())
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, `# Text statistics: Docs \| Example`)
	assert.Contains(t, md, "| Characters | 12,345 |")
	assert.Contains(t, md, "| Sentences | 3 |")
	assert.Contains(t, md, "## Top words")
	assert.Contains(t, md, "| ␠ | 7 |")
	assert.Contains(t, md, "| substring | `the` | 2 |")
	assert.Contains(t, md, "| 1 | 9 | 46 | 3 |")
}

func TestMarkdownRendererOmitsEmptySections(t *testing.T) {
	report := &core.Report{
		Metadata: core.DocumentMetadata{Source: "-", Kind: core.KindStdin},
		Stats:    count.AnalyzeOptional(nil),
	}
	data, err := NewMarkdownRenderer(language.Und).Render(report)
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# Text statistics: -")
	assert.Contains(t, md, "| Lines | 0 |")
	assert.NotContains(t, md, "## Top words")
	assert.NotContains(t, md, "## Chunks")
}

func TestTableRenderer(t *testing.T) {
	r := NewTableRenderer()
	assert.Equal(t, ".txt", r.Extension())

	data, err := r.Render(sampleReport())
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{"https://example.com/docs", "Metric", "Punctuation", "12345", "Word", "Chunk", `"the"`} {
		assert.Contains(t, out, want)
	}
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	data, err := r.Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Greater(t, len(data), 500)
}

func TestDisplayKey(t *testing.T) {
	tests := map[string]string{
		" ":  "␠",
		"\n": `\n`,
		"\t": `\t`,
		"|":  `\|`,
		"é":  "é",
	}
	for in, want := range tests {
		assert.Equal(t, want, displayKey(in), "key %q", in)
	}
}
