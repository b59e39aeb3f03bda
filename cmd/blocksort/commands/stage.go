// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dsnet/blocksort"
	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/mtf"
)

const (
	modeForward = "-"
	modeInverse = "+"
)

// ErrInvalidMode is returned when a stage is not given "-" or "+".
var ErrInvalidMode = errors.New(`mode must be "-" (forward) or "+" (inverse)`)

func modeArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 || (args[0] != modeForward && args[0] != modeInverse) {
		return ErrInvalidMode
	}
	return nil
}

func newBWTCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "bwt [-|+]",
		Short: "Burrows-Wheeler transform stdin to stdout",
		Long: `With "-", the input is transformed and written as a 32-bit big-endian
origin followed by the transformed symbols. With "+", the transform is reversed.`,
		Args: modeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == modeForward {
				zw, err := bwt.NewWriter(cmd.OutOrStdout(), &bwt.WriterConfig{MaxBlockSize: e.maxSize, Algorithm: e.alg})
				if err != nil {
					return err
				}
				return e.runWriter("bwt", cmd.InOrStdin(), zw, func() (int64, int64) { return zw.InputOffset, zw.OutputOffset })
			}
			zr, err := bwt.NewReader(cmd.InOrStdin(), &bwt.ReaderConfig{MaxBlockSize: e.maxSize})
			if err != nil {
				return err
			}
			return e.runReader("inverse bwt", zr, cmd.OutOrStdout(), func() (int64, int64) { return zr.InputOffset, zr.OutputOffset })
		},
	}
}

func newMTFCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mtf [-|+]",
		Short: "Move-to-front encode stdin to stdout",
		Long:  `With "-", every byte is replaced by its move-to-front rank. With "+", ranks are decoded.`,
		Args:  modeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == modeForward {
				mw := mtf.NewWriter(cmd.OutOrStdout())
				return e.runWriter("mtf", cmd.InOrStdin(), mw, func() (int64, int64) { return mw.InputOffset, mw.OutputOffset })
			}
			mr := mtf.NewReader(cmd.InOrStdin())
			return e.runReader("inverse mtf", mr, cmd.OutOrStdout(), func() (int64, int64) { return mr.InputOffset, mr.OutputOffset })
		},
	}
}

func newCompressCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "compress [FILE]",
		Short: "Apply the full front end and frame it with a checksum",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			zw, err := blocksort.NewWriter(cmd.OutOrStdout(), &blocksort.WriterConfig{MaxBlockSize: e.maxSize, Algorithm: e.alg})
			if err != nil {
				return err
			}
			return e.runWriter("compress", in, zw, func() (int64, int64) { return zw.InputOffset, zw.OutputOffset })
		},
	}
}

func newDecompressCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress [FILE]",
		Short: "Verify and invert a frame written by compress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			zr, err := blocksort.NewReader(in, &blocksort.ReaderConfig{MaxBlockSize: e.maxSize})
			if err != nil {
				return err
			}
			return e.runReader("decompress", zr, cmd.OutOrStdout(), func() (int64, int64) { return zr.InputOffset, zr.OutputOffset })
		},
	}
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == modeForward {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// runWriter copies r into w and closes w.
func (e *env) runWriter(stage string, r io.Reader, w io.WriteCloser, offsets func() (int64, int64)) error {
	start := time.Now()
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	e.logDone(stage, start, offsets)
	return nil
}

// runReader copies r into w and closes r.
func (e *env) runReader(stage string, r io.ReadCloser, w io.Writer, offsets func() (int64, int64)) error {
	start := time.Now()
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	e.logDone(stage, start, offsets)
	return nil
}

func (e *env) logDone(stage string, start time.Time, offsets func() (int64, int64)) {
	in, out := offsets()
	e.log.Info(stage+" done",
		"input", humanize.IBytes(uint64(in)),
		"output", humanize.IBytes(uint64(out)),
		"elapsed", time.Since(start).Round(time.Microsecond))
}
