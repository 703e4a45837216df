// Package config loads PageStat settings from a YAML file and the
// environment. Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatTable    = "table"
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatYAML, FormatMarkdown, FormatPDF, FormatTable}

// Config holds all PageStat configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Crawl    CrawlConfig    `yaml:"crawl"`
	Watch    WatchConfig    `yaml:"watch"`

	// Workers bounds how many documents are analyzed concurrently.
	Workers int `yaml:"workers"`
}

// OutputConfig selects the report format and destination.
type OutputConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"` // empty: current directory
}

// AnalysisConfig controls what goes into each report.
type AnalysisConfig struct {
	Top           int  `yaml:"top"`
	CaseSensitive bool `yaml:"case_sensitive"`
	// Plain strips Markdown syntax from page text before counting.
	Plain bool `yaml:"plain"`
	// NFC composes combining sequences before counting.
	NFC        bool     `yaml:"nfc"`
	ChunkSize  int      `yaml:"chunk_size"` // 0 disables chunk stats
	Characters []string `yaml:"characters,omitempty"`
	Substrings []string `yaml:"substrings,omitempty"`
}

// FetchConfig configures HTTP fetching.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CrawlConfig bounds --all discovery.
type CrawlConfig struct {
	MaxPages int `yaml:"max_pages"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatTable,
		},
		Analysis: AnalysisConfig{
			Top:   10,
			Plain: true,
		},
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
		},
		Crawl: CrawlConfig{
			MaxPages: 100,
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Workers: 4,
	}
}

// DefaultPath returns the per-user config location (~/.config/pagestat/config.yaml).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pagestat", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults (plus environment overrides) are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies PAGESTAT_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PAGESTAT_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("PAGESTAT_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("PAGESTAT_USER_AGENT"); v != "" {
		c.Fetch.UserAgent = v
	}
	if v := os.Getenv("PAGESTAT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PAGESTAT_WORKERS=%q is not a number", ErrInvalid, v)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks value ranges and the output format.
func (c *Config) Validate() error {
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("%w: unknown output format %q (want one of %s)",
			ErrInvalid, c.Output.Format, strings.Join(Formats, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1 (got %d)", ErrInvalid, c.Workers)
	}
	if c.Analysis.Top < 0 {
		return fmt.Errorf("%w: top must not be negative (got %d)", ErrInvalid, c.Analysis.Top)
	}
	if c.Analysis.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must not be negative (got %d)", ErrInvalid, c.Analysis.ChunkSize)
	}
	if c.Crawl.MaxPages < 1 {
		return fmt.Errorf("%w: crawl.max_pages must be at least 1 (got %d)", ErrInvalid, c.Crawl.MaxPages)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
