package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// Output modes accepted by the output setting.
var outputModes = []string{"auto", "text", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("dialect: %w", err))
	}
	if !slices.Contains(outputModes, c.Output) {
		errs = append(errs, fmt.Errorf("output: must be one of %s, got %q", strings.Join(outputModes, ", "), c.Output))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format: must be text or json, got %q", c.LogFormat))
	}
	switch strings.ToLower(c.Format.KeywordCase) {
	case "upper", "lower":
	default:
		errs = append(errs, fmt.Errorf("format.keyword_case: must be upper or lower, got %q", c.Format.KeywordCase))
	}
	if c.Format.Indent < 0 {
		errs = append(errs, errors.New("format.indent: must not be negative"))
	}
	if c.Format.Concurrency < 1 {
		errs = append(errs, errors.New("format.concurrency: must be at least 1"))
	}
	for _, pattern := range c.Format.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("format.exclude: bad pattern %q: %w", pattern, err))
		}
	}
	if c.Stats.Capacity < 1 {
		errs = append(errs, errors.New("stats.capacity: must be at least 1"))
	}
	if c.Stats.Top < 0 {
		errs = append(errs, errors.New("stats.top: must not be negative"))
	}
	if c.Server.FlushInterval <= 0 {
		errs = append(errs, errors.New("server.flush_interval: must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Excluded reports whether path matches one of the exclude patterns.
func (c *FormatConfig) Excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
