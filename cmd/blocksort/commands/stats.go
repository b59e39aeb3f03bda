// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/dsnet/blocksort/internal/tool/bench"
)

func newStatsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE...",
		Short: "Show the order-0 entropy of each stage of the front end",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.Style().Format.Header = text.FormatDefault
			tbl.AppendHeader(table.Row{"file", "size", "origin", "raw", "bwt", "mtf", "zeros"})
			var cfgs []table.ColumnConfig
			for i := 2; i <= 7; i++ {
				cfgs = append(cfgs, table.ColumnConfig{Number: i, Align: text.AlignRight})
			}
			tbl.SetColumnConfigs(cfgs)

			for _, name := range args {
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("stats: %w", err)
				}
				if len(data) > e.maxSize {
					return fmt.Errorf("stats: %s: %s exceeds the block size limit of %s",
						name, humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(e.maxSize)))
				}
				st, err := bench.ComputeStats(data, e.alg)
				if err != nil {
					return fmt.Errorf("stats: %s: %w", name, err)
				}
				e.log.Debug("computed stats", "file", name, "size", st.Size)
				tbl.AppendRow(table.Row{
					name,
					humanize.IBytes(uint64(st.Size)),
					st.Origin,
					fmt.Sprintf("%.3f", st.RawEntropy),
					fmt.Sprintf("%.3f", st.BWTEntropy),
					fmt.Sprintf("%.3f", st.MTFEntropy),
					fmt.Sprintf("%.1f%%", 100*st.MTFZeros),
				})
			}
			tbl.Render()
			return nil
		},
	}
}
