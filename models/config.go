// Package models defines configuration and result types shared across packages.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a benchmark run. Values come from
// CLI flags, optionally seeded from a yaml config file (flags win).
type Config struct {
	// Input is the path to the source document (.docx, .html or .txt).
	Input string `yaml:"input"`

	// OutputDir is the root directory for sessions, CSV tables and the index.
	OutputDir string `yaml:"output_dir"`

	// CorpusPath overrides where the intermediate plain-text corpus is
	// written. Empty means "inside the session directory".
	CorpusPath string `yaml:"corpus_path"`

	// TopN is the number of rows kept in the frequency and pair tables.
	TopN int `yaml:"top_n"`

	Quiet bool `yaml:"quiet"`
}

// DefaultConfig returns a Config with the defaults applied.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "results",
		TopN:      20,
	}
}

// LoadConfig reads a yaml config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config describes a runnable job.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input document provided")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top must be positive, got %d", c.TopN)
	}
	return nil
}
