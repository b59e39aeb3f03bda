// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package config provides configuration loading and validation for the
// blocksort command line tool.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/logging"
)

// Sentinel validation errors.
var (
	ErrInvalidBlockSize = errors.New("invalid block size")
	ErrInvalidAlgorithm = errors.New("invalid ranking algorithm")
	ErrInvalidLogging   = errors.New("invalid logging configuration")
	ErrInvalidBench     = errors.New("invalid bench configuration")
)

// EnvPrefix is the prefix of the environment variables that override
// configuration keys. The key block.max_size is read from
// BLOCKSORT_BLOCK_MAX_SIZE.
const EnvPrefix = "BLOCKSORT"

// Default configuration values.
const (
	DefaultMaxSize   = "64MiB"
	DefaultAlgorithm = "sais"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = logging.FormatText
)

// Default bench settings.
var (
	DefaultBenchSizes  = []string{"1e4", "1e5", "1e6"}
	DefaultBenchCodecs = []string{"flate", "zstd", "s2", "huff0", "xz", "lz4"}
)

const maxBlockSize = 1<<31 - 1

// Config holds all configuration for the blocksort tool.
type Config struct {
	Block   BlockConfig   `mapstructure:"block"`
	Logging LoggingConfig `mapstructure:"logging"`
	Bench   BenchConfig   `mapstructure:"bench"`
}

// BlockConfig holds the transform settings.
type BlockConfig struct {
	MaxSize   string `mapstructure:"max_size"`
	Algorithm string `mapstructure:"algorithm"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BenchConfig holds the settings of the bench command.
type BenchConfig struct {
	Sizes  []string `mapstructure:"sizes"`
	Codecs []string `mapstructure:"codecs"`
	Files  []string `mapstructure:"files"`
}

// MaxBlockSize reports the block size limit in bytes.
func (c BlockConfig) MaxBlockSize() (int, error) {
	n, err := humanize.ParseBytes(c.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBlockSize, c.MaxSize, err)
	}
	if n == 0 || n > maxBlockSize {
		return 0, fmt.Errorf("%w: %s not in [1B, %s]",
			ErrInvalidBlockSize, humanize.IBytes(n), humanize.IBytes(maxBlockSize))
	}
	return int(n), nil
}

// RankAlgorithm reports the configured ranking algorithm.
func (c BlockConfig) RankAlgorithm() (bwt.Algorithm, error) {
	alg, err := bwt.ParseAlgorithm(strings.ToLower(c.Algorithm))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAlgorithm, err)
	}
	return alg, nil
}

// Load loads configuration from the file at path, the environment, and
// defaults, in decreasing order of precedence. If path is empty, a file named
// blocksort.yaml is searched for in the working directory and
// $HOME/.config/blocksort; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("blocksort")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/blocksort")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Block:   BlockConfig{MaxSize: DefaultMaxSize, Algorithm: DefaultAlgorithm},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Bench: BenchConfig{
			Sizes:  append([]string(nil), DefaultBenchSizes...),
			Codecs: append([]string(nil), DefaultBenchCodecs...),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("block.max_size", DefaultMaxSize)
	v.SetDefault("block.algorithm", DefaultAlgorithm)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("bench.sizes", DefaultBenchSizes)
	v.SetDefault("bench.codecs", DefaultBenchCodecs)
	v.SetDefault("bench.files", []string{})
}

// Validate checks every field of the configuration.
func (c *Config) Validate() error {
	if _, err := c.Block.MaxBlockSize(); err != nil {
		return err
	}
	if _, err := c.Block.RankAlgorithm(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogging, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidLogging, c.Logging.Format)
	}
	if len(c.Bench.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidBench)
	}
	if len(c.Bench.Codecs) == 0 {
		return fmt.Errorf("%w: no codecs", ErrInvalidBench)
	}
	return nil
}
