// Package config provides configuration management for the askql CLI.
//
// Values come from four layers, highest precedence first: command-line
// flags, ASKQL_ environment variables, an askql.yaml file and built-in
// defaults.
package config

import (
	"log/slog"

	"github.com/leapstack-labs/askql/internal/client"
)

// Config holds all CLI configuration options.
type Config struct {
	BaseURL      string    `koanf:"base_url" yaml:"base_url" json:"base_url"`
	OutputFormat string    `koanf:"output" yaml:"output" json:"output"`
	Verbose      bool      `koanf:"verbose" yaml:"verbose" json:"verbose"`
	Log          LogConfig `koanf:"log" yaml:"log" json:"log"`
	UI           UIConfig  `koanf:"ui" yaml:"ui" json:"ui"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  slog.Level `koanf:"level" yaml:"level" json:"level"`
	Format string     `koanf:"format" yaml:"format" json:"format"`
	// File receives logs. Required for logs from the TUI and REPL, which
	// otherwise log nowhere.
	File string `koanf:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// UIConfig holds interactive front end settings.
type UIConfig struct {
	ShowHelp bool `koanf:"show_help" yaml:"show_help" json:"show_help"`
}

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

// ConfigFileNames are looked up in the working directory, in order.
var ConfigFileNames = []string{"askql.yaml", "askql.yml"}

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "ASKQL_"

// EffectiveLevel returns the log level, lowered to debug by Verbose.
func (c *Config) EffectiveLevel() slog.Level {
	if c.Verbose && c.Log.Level > slog.LevelDebug {
		return slog.LevelDebug
	}
	return c.Log.Level
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		BaseURL:      client.DefaultBaseURL,
		OutputFormat: DefaultOutput,
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: DefaultLogFormat,
		},
		UI: UIConfig{ShowHelp: true},
	}
}
