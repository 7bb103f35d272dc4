// Package config provides configuration management for the sqlfront CLI.
package config

import "time"

// Default configuration values.
const (
	DefaultDialect       = "ansi"
	DefaultOutput        = "auto" // TTY=text, otherwise plain text without styling
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultKeywordCase   = "upper"
	DefaultIndent        = 2
	DefaultConcurrency   = 4
	DefaultStatePath     = ".sqlfront/stats.db"
	DefaultCapacity      = 1000
	DefaultTop           = 20
	DefaultAddr          = ":8750"
	DefaultFlushInterval = time.Minute
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect   string       `koanf:"dialect"`
	Output    string       `koanf:"output"`
	LogLevel  string       `koanf:"log_level"`
	LogFormat string       `koanf:"log_format"`
	Verbose   bool         `koanf:"verbose"`
	Format    FormatConfig `koanf:"format"`
	Stats     StatsConfig  `koanf:"stats"`
	Server    ServerConfig `koanf:"server"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// FormatConfig controls the format command and the REPL's echo.
type FormatConfig struct {
	KeywordCase string   `koanf:"keyword_case"`
	Indent      int      `koanf:"indent"`
	Compact     bool     `koanf:"compact"`
	Concurrency int      `koanf:"concurrency"`
	Exclude     []string `koanf:"exclude"` // glob patterns matched against base names
}

// StatsConfig controls statement statistics.
type StatsConfig struct {
	StatePath string `koanf:"state_path"`
	Capacity  int    `koanf:"capacity"`
	Top       int    `koanf:"top"`
}

// ServerConfig controls the serve command.
type ServerConfig struct {
	Addr          string        `koanf:"addr"`
	FlushInterval time.Duration `koanf:"flush_interval"`
	Persist       bool          `koanf:"persist"`
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Dialect:   DefaultDialect,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Format: FormatConfig{
			KeywordCase: DefaultKeywordCase,
			Indent:      DefaultIndent,
			Concurrency: DefaultConcurrency,
		},
		Stats: StatsConfig{
			StatePath: DefaultStatePath,
			Capacity:  DefaultCapacity,
			Top:       DefaultTop,
		},
		Server: ServerConfig{
			Addr:          DefaultAddr,
			FlushInterval: DefaultFlushInterval,
		},
	}
}
