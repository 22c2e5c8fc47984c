// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied by MergeWithDefaults when nothing else is set
const (
	DefaultWordLimit             = 22
	DefaultMeasureTimeoutSeconds = 30
	MaxWordLimit                 = 200
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input        string `json:"input,omitempty"`         // Path to the resume HTML
	Output       string `json:"output,omitempty"`        // Where to write the fitted HTML ("" = stdout)
	Report       string `json:"report,omitempty"`        // Where to write the JSON fit report
	KeywordsFile string `json:"keywords_file,omitempty"` // Keyword list, one per line or comma-separated

	// Targeting
	Keywords   []string `json:"keywords,omitempty"`    // Target keywords
	Context    string   `json:"context,omitempty"`     // Role context passed to generation
	WordLimit  int      `json:"word_limit,omitempty"`  // Maximum words per generated bullet
	FullTailor bool     `json:"full_tailor,omitempty"` // Rewrite existing bullets before filling

	// Behavior
	APIKey                string `json:"api_key,omitempty"`                 // Gemini API key
	DatabaseURL           string `json:"database_url,omitempty"`            // PostgreSQL connection URL
	Verbose               bool   `json:"verbose,omitempty"`                 // Print detailed debug information
	MeasureTimeoutSeconds int    `json:"measure_timeout_seconds,omitempty"` // Per-measurement browser timeout
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.WordLimit < 0 || c.WordLimit > MaxWordLimit {
		return fmt.Errorf("config error: 'word_limit' must be between 0 and %d", MaxWordLimit)
	}
	if c.MeasureTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'measure_timeout_seconds' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}
	if c.KeywordsFile != "" {
		if _, err := os.Stat(c.KeywordsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: keywords file not found: %s", c.KeywordsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Report == "" {
		result.Report = defaults.Report
	}
	if result.KeywordsFile == "" {
		result.KeywordsFile = defaults.KeywordsFile
	}
	if result.Context == "" {
		result.Context = defaults.Context
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.Keywords) == 0 {
		result.Keywords = defaults.Keywords
	}

	// Int fields: use default if zero, then the built-in default
	if result.WordLimit == 0 {
		result.WordLimit = defaults.WordLimit
	}
	if result.WordLimit == 0 {
		result.WordLimit = DefaultWordLimit
	}
	if result.MeasureTimeoutSeconds == 0 {
		result.MeasureTimeoutSeconds = defaults.MeasureTimeoutSeconds
	}
	if result.MeasureTimeoutSeconds == 0 {
		result.MeasureTimeoutSeconds = DefaultMeasureTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// MeasureTimeout returns the per-measurement timeout as a duration
func (c *Config) MeasureTimeout() time.Duration {
	return time.Duration(c.MeasureTimeoutSeconds) * time.Second
}
