// Package config loads settings for the keyscreen tool from a TOML or
// YAML file with environment variable overrides.
//
// Precedence, lowest to highest: defaults, file, environment. Command-line
// flags are applied by the caller on top of the loaded value.
package config

import (
	"fmt"
	"slices"
	"strings"
)

// Config is the complete tool configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig controls how classification reports are written.
type OutputConfig struct {
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
	// Pretty indents JSON output.
	Pretty bool `toml:"pretty" yaml:"pretty"`
}

// Allowed values.
var (
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
	OutputFormats = []string{"text", "json"}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	checks := []struct {
		path    string
		value   string
		allowed []string
	}{
		{"logging.level", c.Logging.Level, LogLevels},
		{"logging.format", c.Logging.Format, LogFormats},
		{"output.format", c.Output.Format, OutputFormats},
	}

	for _, chk := range checks {
		if !slices.Contains(chk.allowed, strings.ToLower(chk.value)) {
			return &ValidationError{Path: chk.path, Value: chk.value, Allowed: chk.allowed}
		}
	}
	return nil
}

// Load returns defaults overlaid with the file at path (if any) and the
// environment. An empty path skips the file. A missing file is not an
// error unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, required, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
