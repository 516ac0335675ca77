// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is read when DataBaseURL is empty.
	DataDir string `koanf:"data_dir"`

	// DataBaseURL, when set, is the HTTP location of the skill documents.
	DataBaseURL string `koanf:"data_base_url"`

	// SkillFiles overrides the document name per category, e.g.
	// {"yellow": "yellow.yaml"}. An empty name skips the category.
	SkillFiles map[string]string `koanf:"skill_files"`

	// FetchConcurrency bounds concurrent document fetches at startup.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// FetchTimeoutMS bounds each document fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MaxDPCells caps groups x budget x 2 for one optimize run.
	MaxDPCells int `koanf:"max_dp_cells"`

	// SuggestionLimit caps the names offered for an unknown skill.
	SuggestionLimit int `koanf:"suggestion_limit"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		DataDir:          "data",
		FetchConcurrency: 6,
		FetchTimeoutMS:   10_000,
		MaxDPCells:       2_000_000,
		SuggestionLimit:  5,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataBaseURL == "" && strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: one of data_dir or data_base_url is required", ErrInvalidConfig)
	case c.FetchConcurrency < 1:
		return fmt.Errorf("%w: fetch_concurrency must be positive", ErrInvalidConfig)
	case c.FetchTimeoutMS < 1:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxDPCells < 1:
		return fmt.Errorf("%w: max_dp_cells must be positive", ErrInvalidConfig)
	case c.SuggestionLimit < 1:
		return fmt.Errorf("%w: suggestion_limit must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
