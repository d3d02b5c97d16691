package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYSCREEN_"

// loadFile decodes the file at path into cfg. Files ending in .yaml or
// .yml are YAML, everything else is TOML.
func loadFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data, cfg)
	default:
		return parse(path, data, cfg)
	}
}

// parse decodes TOML data, rejecting unknown keys.
func parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		case errors.As(err, &serr):
			keys := make([]string, 0, len(serr.Errors))
			for _, e := range serr.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			perr.Message = "unknown settings: " + strings.Join(keys, ", ")
		}
		return perr
	}
	return nil
}

// parseYAML decodes YAML data, rejecting unknown keys.
func parseYAML(source string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var terr *yaml.TypeError
	if errors.As(err, &terr) {
		perr.Message = strings.Join(terr.Errors, "; ")
	}
	return perr
}

// applyEnv overlays KEYSCREEN_* variables onto cfg.
// Note: empty values are treated as unset.
func applyEnv(cfg *Config) {
	// env caches os.Environ on first use; reread it so every Load sees
	// the current environment.
	env.Load()

	if v := env.Str(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := env.Str(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := env.Str(EnvPrefix + "OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if env.Has(EnvPrefix + "OUTPUT_PRETTY") {
		cfg.Output.Pretty = env.Bool(EnvPrefix + "OUTPUT_PRETTY")
	}
}
