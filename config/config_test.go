package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  format: json
  dir: out
analysis:
  top: 3
  case_sensitive: true
  characters: ["e", "("]
  substrings: ["the"]
fetch:
  timeout: 5s
watch:
  debounce: 1s
workers: 8
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 3, cfg.Analysis.Top)
	assert.True(t, cfg.Analysis.CaseSensitive)
	assert.True(t, cfg.Analysis.Plain, "unset keys keep their defaults")
	assert.Equal(t, []string{"e", "("}, cfg.Analysis.Characters)
	assert.Equal(t, []string{"the"}, cfg.Analysis.Substrings)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 100, cfg.Crawl.MaxPages)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [nope"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PAGESTAT_FORMAT", "PDF")
	t.Setenv("PAGESTAT_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("PAGESTAT_WORKERS", "2")
	t.Setenv("PAGESTAT_USER_AGENT", "bot/1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, cfg.Output.Format)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "bot/1", cfg.Fetch.UserAgent)
}

func TestEnvOverrideBadWorkers(t *testing.T) {
	t.Setenv("PAGESTAT_WORKERS", "many")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "docx" }},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }},
		{name: "negative top", mutate: func(c *Config) { c.Analysis.Top = -1 }},
		{name: "negative chunk size", mutate: func(c *Config) { c.Analysis.ChunkSize = -5 }},
		{name: "zero max pages", mutate: func(c *Config) { c.Crawl.MaxPages = 0 }},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Analysis.Substrings = []string{"#"}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
