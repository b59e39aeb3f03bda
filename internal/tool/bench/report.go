// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var testNames = map[int]string{
	TestEncodeRate:    "encRate",
	TestDecodeRate:    "decRate",
	TestCompressRatio: "ratio",
}

// ParseTest parses a test name such as "ratio" or "encRate".
func ParseTest(s string) (int, error) {
	for k, v := range testNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown test: %q", s)
}

// DefaultTests reports the names of all tests in order.
func DefaultTests() []string {
	var d []int
	for k := range testNames {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, testNames[v])
	}
	return s
}

// Options selects what Run measures.
type Options struct {
	Tests  []int
	Codecs []string
	Fronts []Front
	Files  []string
	Levels []int
	Sizes  []int

	// Tick is called before every single measurement, if non-nil.
	Tick func(done, total int)
}

// Run performs every selected test and writes one table per test and codec.
func Run(w io.Writer, opts Options) error {
	for _, c := range opts.Codecs {
		if _, ok := Encoders[c]; !ok {
			return fmt.Errorf("unknown codec: %q", c)
		}
	}
	cols := make([]string, len(opts.Fronts))
	for i, f := range opts.Fronts {
		cols[i] = f.String()
	}

	for _, t := range opts.Tests {
		var cnt, total int
		tick := func() {
			if opts.Tick != nil {
				opts.Tick(cnt, total)
			}
			cnt++
		}

		switch t {
		case TestEncodeRate, TestDecodeRate:
			total = len(opts.Fronts) * len(opts.Files) * len(opts.Sizes)
			suite := BenchmarkEncodeSuite
			if t == TestDecodeRate {
				suite = BenchmarkDecodeSuite
			}
			results, names := suite(opts.Fronts, opts.Files, opts.Sizes, tick)
			fmt.Fprintf(w, "BENCHMARK: %s\n", testNames[t])
			WriteResults(w, results, names, cols, "MB/s", "")
			fmt.Fprintln(w)
		case TestCompressRatio:
			total = len(opts.Fronts) * len(opts.Files) * len(opts.Levels) * len(opts.Sizes)
			for _, c := range opts.Codecs {
				cnt = 0
				results, names := BenchmarkRatioSuite(c, opts.Fronts, opts.Files, opts.Levels, opts.Sizes, tick)
				fmt.Fprintf(w, "BENCHMARK: %s:%s\n", c, testNames[t])
				WriteResults(w, results, names, cols, "ratio", "x")
				fmt.Fprintln(w)
			}
		default:
			return fmt.Errorf("unknown test: %d", t)
		}
	}
	return nil
}

// WriteResults renders results as a table with one value column and one
// delta column per benchmarked column.
func WriteResults(w io.Writer, results [][]Result, names, cols []string, title, suffix string) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.SeparateHeader = false
	tbl.Style().Format.Header = text.FormatDefault

	// Label the first row.
	header := table.Row{"benchmark"}
	var colCfgs []table.ColumnConfig
	for i, c := range cols {
		header = append(header, c+" "+title, "delta")
		colCfgs = append(colCfgs,
			table.ColumnConfig{Number: 2 + 2*i, Align: text.AlignRight},
			table.ColumnConfig{Number: 3 + 2*i, Align: text.AlignRight})
	}
	tbl.AppendHeader(header)
	tbl.SetColumnConfigs(colCfgs)

	// Insert all rows.
	for j, row := range results {
		cells := table.Row{names[j]}
		for _, r := range row {
			var sr, sd string
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				sr = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				sd = fmt.Sprintf("%.2f", r.D) + "x"
			}
			cells = append(cells, sr, sd)
		}
		tbl.AppendRow(cells)
	}
	tbl.Render()
}
