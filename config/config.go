// SPDX-License-Identifier: MIT

package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/aleaf/pestools-1/covariance"
	"github.com/aleaf/pestools-1/jco"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PESTOOLS"

// EnvConfigFile names the variable that points at an optional YAML file.
const EnvConfigFile = EnvPrefix + "_CONFIG_FILE"

// DefaultDotEnv is read by Load when no .env paths are given.
const DefaultDotEnv = ".env"

// ErrInvalidConfig is matched by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	Codec      CodecConfig      `yaml:"codec" envconfig:"CODEC"`
	Covariance CovarianceConfig `yaml:"covariance" envconfig:"COVARIANCE"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// CodecConfig controls reading and writing of .jco files.
type CodecConfig struct {
	RowNameWidth int    `yaml:"row_name_width" envconfig:"ROW_NAME_WIDTH" validate:"gt=0,lte=4096"`
	ColNameWidth int    `yaml:"col_name_width" envconfig:"COL_NAME_WIDTH" validate:"gt=0,lte=4096"`
	ByteOrder    string `yaml:"byte_order" envconfig:"BYTE_ORDER" validate:"oneof=little big"`
	MaxCells     int    `yaml:"max_cells" envconfig:"MAX_CELLS" validate:"gt=0"`
}

// CovarianceConfig controls the covariance engine.
type CovarianceConfig struct {
	RCondThreshold float64 `yaml:"rcond_threshold" envconfig:"RCOND_THRESHOLD" validate:"gte=0,lte=1"`
}

// LoggingConfig controls the logger built by package logging.
// Output is "stdout", "stderr" or a file path.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Codec: CodecConfig{
			RowNameWidth: jco.DefaultNameWidth,
			ColNameWidth: jco.DefaultNameWidth,
			ByteOrder:    "little",
			MaxCells:     jco.DefaultMaxCells,
		},
		Covariance: CovarianceConfig{
			RCondThreshold: covariance.DefaultRCondThreshold,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// Load builds a Config from defaults, the optional YAML file and the environment.
// dotenv lists .env files to seed the environment from (DefaultDotEnv when empty);
// missing files are skipped.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{DefaultDotEnv}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Only variables that are set override; no default tags, so file values survive.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML document at path onto cfg; absent keys keep their values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(data, cfg)
}

// normalize folds the case of enumerated settings; the loggers and codec accept any case.
func (c *Config) normalize() {
	c.Codec.ByteOrder = strings.ToLower(c.Codec.ByteOrder)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

// Validate checks every field against its constraints. Enumerated values
// (byte order, level, format) are compared case-insensitively.
func (c *Config) Validate() error {
	n := *c
	n.normalize()
	if err := validator.New().Struct(&n); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Order maps ByteOrder to an encoding/binary order. Unknown values map to little-endian.
func (c CodecConfig) Order() binary.ByteOrder {
	if strings.EqualFold(c.ByteOrder, "big") {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CodecOptions returns the jco options described by c.Codec.
func (c *Config) CodecOptions() []jco.Option {
	return []jco.Option{
		jco.WithByteOrder(c.Codec.Order()),
		jco.WithRowNameWidth(c.Codec.RowNameWidth),
		jco.WithColNameWidth(c.Codec.ColNameWidth),
		jco.WithMaxCells(c.Codec.MaxCells),
	}
}

// CovarianceOptions returns the covariance options described by c.Covariance.
func (c *Config) CovarianceOptions() []covariance.Option {
	return []covariance.Option{
		covariance.WithRCondThreshold(c.Covariance.RCondThreshold),
	}
}
