// Package config provides the unified configuration for Strata: library
// defaults for the construction layer (inference scan limit, rechunk and
// missing-marker behavior), logging, and cold-table compression, loaded
// from YAML and environment via viper.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/strataframe/strata/pkg/errors"
)

// DefaultInferLimit is the number of leading rows sampled for type
// inference when the caller supplies no limit.
const DefaultInferLimit = 100

// Config is the root configuration structure
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Construct   ConstructConfig   `mapstructure:"construct" yaml:"construct"`
	Compression CompressionConfig `mapstructure:"compression" yaml:"compression"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`
	// Encoding selects json or console output
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
	// Development enables colored console output and stacktraces
	Development bool `mapstructure:"development" yaml:"development"`
}

// ConstructConfig carries the construction-layer defaults
type ConstructConfig struct {
	// InferLimit bounds the row scan during type inference; 0 scans all
	InferLimit int `mapstructure:"infer_limit" yaml:"infer_limit"`
	// Rechunk forces contiguity of multi-chunk foreign columnar input
	Rechunk bool `mapstructure:"rechunk" yaml:"rechunk"`
	// ConvertMissing maps the row-labeled format's NaN marker to null
	ConvertMissing bool `mapstructure:"convert_missing" yaml:"convert_missing"`
}

// CompressionConfig selects the cold-table snapshot codec
type CompressionConfig struct {
	// Algorithm is one of none, gzip, snappy, lz4, zstd, s2
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`
	// Level trades speed for ratio, 1 (fastest) to 9 (best)
	Level int `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Construct: ConstructConfig{
			InferLimit:     DefaultInferLimit,
			Rechunk:        true,
			ConvertMissing: true,
		},
		Compression: CompressionConfig{
			Algorithm: "snappy",
			Level:     5,
		},
	}
}

// Load reads configuration from an optional YAML file and the STRATA_*
// environment, layered over Default. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.encoding", def.Logging.Encoding)
	v.SetDefault("logging.development", def.Logging.Development)
	v.SetDefault("construct.infer_limit", def.Construct.InferLimit)
	v.SetDefault("construct.rechunk", def.Construct.Rechunk)
	v.SetDefault("construct.convert_missing", def.Construct.ConvertMissing)
	v.SetDefault("compression.algorithm", def.Compression.Algorithm)
	v.SetDefault("compression.level", def.Compression.Level)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Construct.InferLimit < 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"construct.infer_limit must be >= 0, got %d", c.Construct.InferLimit)
	}
	if c.Compression.Level < 0 || c.Compression.Level > 9 {
		return errors.Newf(errors.ErrorTypeConfig,
			"compression.level must be between 0 and 9, got %d", c.Compression.Level)
	}
	switch c.Compression.Algorithm {
	case "", "none", "gzip", "snappy", "lz4", "zstd", "s2":
	default:
		return errors.Newf(errors.ErrorTypeConfig,
			"unknown compression.algorithm %q", c.Compression.Algorithm)
	}
	return nil
}
