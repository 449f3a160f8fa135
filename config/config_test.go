// SPDX-License-Identifier: MIT

package config_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleaf/pestools-1/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	config.EnvConfigFile,
	"PESTOOLS_CODEC_ROW_NAME_WIDTH",
	"PESTOOLS_CODEC_COL_NAME_WIDTH",
	"PESTOOLS_CODEC_BYTE_ORDER",
	"PESTOOLS_CODEC_MAX_CELLS",
	"PESTOOLS_COVARIANCE_RCOND_THRESHOLD",
	"PESTOOLS_LOGGING_LEVEL",
	"PESTOOLS_LOGGING_FORMAT",
	"PESTOOLS_LOGGING_OUTPUT",
}

// cleanEnv unsets every PESTOOLS_ variable for the duration of the test.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "") // registers restore
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := config.Load(noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
	assert.Equal(t, binary.LittleEndian, cfg.Codec.Order())
	assert.Len(t, cfg.CodecOptions(), 4)
	assert.Len(t, cfg.CovarianceOptions(), 1)
}

func TestLoadEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PESTOOLS_CODEC_BYTE_ORDER", "big")
	t.Setenv("PESTOOLS_CODEC_ROW_NAME_WIDTH", "12")
	t.Setenv("PESTOOLS_COVARIANCE_RCOND_THRESHOLD", "1e-10")
	t.Setenv("PESTOOLS_LOGGING_LEVEL", "debug")

	cfg, err := config.Load(noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "big", cfg.Codec.ByteOrder)
	assert.Equal(t, binary.BigEndian, cfg.Codec.Order())
	assert.Equal(t, 12, cfg.Codec.RowNameWidth)
	assert.Equal(t, 20, cfg.Codec.ColNameWidth)
	assert.Equal(t, 1e-10, cfg.Covariance.RCondThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

// TestEnumeratedValuesFoldCase accepts any case for level, format and byte order,
// matching what logging.ParseLevel and the codec accept.
func TestEnumeratedValuesFoldCase(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PESTOOLS_LOGGING_LEVEL", "INFO")
	t.Setenv("PESTOOLS_LOGGING_FORMAT", "Text")
	t.Setenv("PESTOOLS_CODEC_BYTE_ORDER", "BIG")

	cfg, err := config.Load(noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "big", cfg.Codec.ByteOrder)
	assert.Equal(t, binary.BigEndian, cfg.Codec.Order())

	direct := config.Default()
	direct.Logging.Level = "WARNING"
	require.NoError(t, direct.Validate())
	assert.Equal(t, "WARNING", direct.Logging.Level) // Validate does not mutate
}

// TestFileUnderEnvironment: the YAML file overrides defaults, the environment overrides the file.
func TestFileUnderEnvironment(t *testing.T) {
	cleanEnv(t)
	path := writeFile(t, "pestools.yaml", `
codec:
  col_name_width: 32
  byte_order: big
logging:
  format: text
  level: warn
`)
	t.Setenv(config.EnvConfigFile, path)
	t.Setenv("PESTOOLS_LOGGING_LEVEL", "error")

	cfg, err := config.Load(noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Codec.ColNameWidth)
	assert.Equal(t, 20, cfg.Codec.RowNameWidth)
	assert.Equal(t, "big", cfg.Codec.ByteOrder)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	cleanEnv(t)
	dotenv := writeFile(t, ".env", "PESTOOLS_LOGGING_FORMAT=text\nPESTOOLS_LOGGING_LEVEL=debug\n")
	t.Setenv("PESTOOLS_LOGGING_LEVEL", "warn")

	cfg, err := config.Load(dotenv)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		invalid bool
	}{
		{name: "ZeroWidth", env: map[string]string{"PESTOOLS_CODEC_ROW_NAME_WIDTH": "0"}, invalid: true},
		{name: "ByteOrder", env: map[string]string{"PESTOOLS_CODEC_BYTE_ORDER": "middle"}, invalid: true},
		{name: "Threshold", env: map[string]string{"PESTOOLS_COVARIANCE_RCOND_THRESHOLD": "2"}, invalid: true},
		{name: "Level", env: map[string]string{"PESTOOLS_LOGGING_LEVEL": "trace"}, invalid: true},
		{name: "Format", env: map[string]string{"PESTOOLS_LOGGING_FORMAT": "xml"}, invalid: true},
		{name: "NotANumber", env: map[string]string{"PESTOOLS_CODEC_MAX_CELLS": "lots"}},
		{name: "UnknownYAMLKey", file: "codec:\n  width: 3\n"},
		{name: "BadYAML", file: "codec: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if tc.file != "" {
				t.Setenv(config.EnvConfigFile, writeFile(t, "c.yaml", tc.file))
			}

			cfg, err := config.Load(noDotEnv(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tc.invalid {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			} else {
				assert.NotErrorIs(t, err, config.ErrInvalidConfig)
			}
		})
	}
}

func TestMissingConfigFile(t *testing.T) {
	cleanEnv(t)
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Load(noDotEnv(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
