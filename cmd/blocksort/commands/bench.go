// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dsnet/blocksort/internal/tool/bench"
)

func newBenchCommand(e *env) *cobra.Command {
	var (
		tests  []string
		codecs []string
		fronts []string
		files  []string
		levels []int
		sizes  []string
		paths  []string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare back-end codecs with and without the front end",
		Long: `bench measures the front end throughput and the ratio achieved by each
back-end codec on raw input, on the transformed input, and on the fully
recoded input. Files not found in any of the search paths fall back to
generated corpora of the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("codecs") {
				codecs = e.cfg.Bench.Codecs
			}
			if !flags.Changed("sizes") {
				sizes = e.cfg.Bench.Sizes
			}
			if !flags.Changed("files") {
				files = e.cfg.Bench.Files
			}
			if len(files) == 0 {
				for name := range bench.Corpora {
					files = append(files, name)
				}
				sort.Strings(files)
			}

			opts := bench.Options{Codecs: codecs, Files: files, Levels: levels}
			for _, s := range tests {
				t, err := bench.ParseTest(s)
				if err != nil {
					return err
				}
				opts.Tests = append(opts.Tests, t)
			}
			for _, s := range fronts {
				k, err := bench.ParseFront(s)
				if err != nil {
					return err
				}
				opts.Fronts = append(opts.Fronts, bench.Front{Kind: k, Algorithm: e.alg})
			}
			var err error
			if opts.Sizes, err = bench.ParseSizes(sizes); err != nil {
				return err
			}
			for _, n := range opts.Sizes {
				if n > e.maxSize {
					return fmt.Errorf("size %d exceeds the block size limit of %d", n, e.maxSize)
				}
			}
			opts.Tick = func(done, total int) {
				e.log.Debug("benchmark progress", "done", done, "total", total)
			}

			bench.Paths = paths
			e.log.Info("running benchmarks",
				"tests", tests, "codecs", codecs, "fronts", fronts, "files", files)
			return bench.Run(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&tests, "tests", bench.DefaultTests(), "tests to run (encRate, decRate, ratio)")
	f.StringSliceVar(&codecs, "codecs", nil, "back-end codecs for the ratio test")
	f.StringSliceVar(&fronts, "fronts", []string{"raw", "bwt", "bwt+mtf"}, "front ends to compare")
	f.StringSliceVar(&files, "files", nil, "input files or generated corpora")
	f.IntSliceVar(&levels, "levels", []int{-1}, "codec levels for the ratio test (-1 for the default)")
	f.StringSliceVar(&sizes, "sizes", nil, "input sizes such as 1e6 or 64Ki")
	f.StringSliceVar(&paths, "paths", nil, "directories searched for input files")
	return cmd
}
