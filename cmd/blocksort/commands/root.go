// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package commands implements the subcommands of the blocksort tool.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/config"
	"github.com/dsnet/blocksort/internal/logging"
)

const (
	flagConfig       = "config"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagMaxBlockSize = "max-block-size"
	flagAlgorithm    = "algorithm"
)

// env is the state shared by all subcommands once flags are parsed.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	maxSize int
	alg     bwt.Algorithm
}

// NewRootCommand creates the blocksort command with all subcommands.
func NewRootCommand() *cobra.Command {
	var configPath string
	e := &env{log: logging.Discard()}

	rootCmd := &cobra.Command{
		Use:   "blocksort",
		Short: "Burrows-Wheeler and move-to-front stages of a block-sort compressor",
		Long: `blocksort runs the front end of a block-sorting compressor.

Commands:
  bwt         Forward (-) or inverse (+) Burrows-Wheeler transform
  mtf         Move-to-front encode (-) or decode (+)
  compress    Full front end framed with a checksum
  decompress  Inverse of compress
  stats       Entropy of each stage for the given files
  bench       Back-end compression ratios with and without the front end`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd, configPath)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, flagConfig, "", "path to a YAML configuration file")
	pf.String(flagLogLevel, config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String(flagLogFormat, config.DefaultLogFormat, "log format (text, json)")
	pf.String(flagMaxBlockSize, config.DefaultMaxSize, "largest block accepted, such as 64MiB")
	pf.String(flagAlgorithm, config.DefaultAlgorithm, "rotation ranking algorithm (sais, compare)")

	rootCmd.AddCommand(
		newBWTCommand(e),
		newMTFCommand(e),
		newCompressCommand(e),
		newDecompressCommand(e),
		newStatsCommand(e),
		newBenchCommand(e),
	)
	return rootCmd
}

// init loads the configuration and applies the flags that were set
// explicitly on top of it.
func (e *env) init(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		flagLogLevel:     &cfg.Logging.Level,
		flagLogFormat:    &cfg.Logging.Format,
		flagMaxBlockSize: &cfg.Block.MaxSize,
		flagAlgorithm:    &cfg.Block.Algorithm,
	} {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	e.cfg = cfg
	if e.maxSize, err = cfg.Block.MaxBlockSize(); err != nil {
		return err
	}
	if e.alg, err = cfg.Block.RankAlgorithm(); err != nil {
		return err
	}
	if e.log, err = logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	e.log.Debug("configuration loaded",
		"config", configPath, "max_block_size", cfg.Block.MaxSize, "algorithm", e.alg.String())
	return nil
}
