package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return writeConfigNamed(t, "keyscreen.toml", content)
}

func writeConfigNamed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadNoPath(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[output]
format = "json"
pretty = true
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "[logging\nlevel = 1\n")

	_, err := Load(path, true)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Positive(t, perr.Line)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "[output]\ncolour = true\n")

	_, err := Load(path, true)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "output.colour")
}

func TestLoadYAML(t *testing.T) {
	path := writeConfigNamed(t, "keyscreen.yaml", `
logging:
  level: warn
  format: json
output:
  pretty: true
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
}

func TestLoadYAMLEmpty(t *testing.T) {
	path := writeConfigNamed(t, "keyscreen.yml", "")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLUnknownKey(t *testing.T) {
	path := writeConfigNamed(t, "keyscreen.yml", "output:\n  colour: true\n")

	_, err := Load(path, true)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "colour")
}

func TestLoadInvalidValue(t *testing.T) {
	path := writeConfig(t, "[output]\nformat = \"yaml\"\n")

	_, err := Load(path, true)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "output.format", verr.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"debug\"\n")
	t.Setenv("KEYSCREEN_LOG_LEVEL", "warn")
	t.Setenv("KEYSCREEN_OUTPUT_FORMAT", "json")
	t.Setenv("KEYSCREEN_OUTPUT_PRETTY", "true")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
}

func TestLoadEnvChangesBetweenLoads(t *testing.T) {
	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)

	t.Setenv("KEYSCREEN_OUTPUT_FORMAT", "json")

	cfg, err = Load("", false)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("KEYSCREEN_LOG_LEVEL", "loud")

	_, err := Load("", false)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
