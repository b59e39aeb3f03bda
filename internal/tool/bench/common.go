// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures how well the block-sort front end prepares data for
// external back-end compressors, and how fast the front end itself runs.
//
// Individual back-end implementations are referred to as codecs. A front end
// is the transformation applied to the data before it reaches the codec.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"

	"github.com/dsnet/blocksort/internal/testutil"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

// The rate benchmarks run outside of "go test", so the testing flags must be
// registered explicitly.
func init() { testing.Init() }

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[string]Encoder
	Decoders map[string]Decoder

	// List of search paths for test files.
	Paths []string
)

func RegisterEncoder(name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[string]Encoder)
	}
	Encoders[name] = enc
}

func RegisterDecoder(name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[string]Decoder)
	}
	Decoders[name] = dec
}

// Codecs reports the names of all codecs with both an encoder and a decoder.
func Codecs() []string {
	var s []string
	for k := range Encoders {
		if _, ok := Decoders[k]; ok {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	return s
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkFront benchmarks the forward direction of a single front end on
// the given input data and reports the result.
func BenchmarkFront(input []byte, f Front) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := f.Encode(input); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

// BenchmarkFrontInverse benchmarks the inverse direction of a single front
// end on pre-transformed input data and reports the result.
func BenchmarkFrontInverse(input []byte, f Front) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			output, err := f.Decode(input)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(output)))
		}
	})
}

// BenchmarkEncodeSuite measures the forward rate of every front end across
// all files and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(sizes)][len(fronts)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkEncodeSuite(fronts []Front, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(len(fronts), files, []int{-1}, sizes, tick,
		func(input []byte, j, _ int) Result {
			return rate(BenchmarkFront(input, fronts[j]))
		})
}

// BenchmarkDecodeSuite measures the inverse rate of every front end across
// all files and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(sizes)][len(fronts)]Result
//	names:   [len(files)*len(sizes)]string
func BenchmarkDecodeSuite(fronts []Front, files []string, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(len(fronts), files, []int{-1}, sizes, tick,
		func(input []byte, j, _ int) Result {
			output, err := fronts[j].Encode(input)
			if err != nil {
				return Result{}
			}
			return rate(BenchmarkFrontInverse(output, fronts[j]))
		})
}

// BenchmarkRatioSuite compresses the output of every front end with the
// named codec across all files, levels, and sizes. The first front end is
// the reference for the delta ratio.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(fronts)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(codec string, fronts []Front, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(len(fronts), files, levels, sizes, tick,
		func(input []byte, j, lvl int) Result {
			enc := Encoders[codec]
			if enc == nil {
				return Result{}
			}
			output, err := fronts[j].Encode(input)
			if err != nil {
				return Result{}
			}
			n, err := CompressedSize(enc, output, lvl)
			if err != nil || n == 0 {
				return Result{}
			}
			return Result{R: float64(len(input)) / float64(n)}
		})
}

// CompressedSize reports the number of bytes that enc produces for input.
func CompressedSize(enc Encoder, input []byte, lvl int) (int, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return 0, err
	}
	if err := wr.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func rate(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

type benchFunc func(input []byte, col, level int) Result

func benchmarkSuite(cols int, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, cols)
	}
	names := make([]string, d0)

	// Run the benchmark for every column, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := LoadInput(f, n)
				name := getName(f, l, len(b))
				for j := 0; j < cols; j++ {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						results[i][j] = run(b, j, l)
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

// LoadInput loads n bytes of the named input. Files found in Paths take
// precedence over the generated corpora of the same name.
func LoadInput(name string, n int) ([]byte, error) {
	p := getPath(name)
	if _, err := os.Stat(p); err != nil {
		if gen, ok := Corpora[name]; ok {
			if n < 0 {
				n = defaultCorpusSize
			}
			return gen(n), nil
		}
	}
	return testutil.LoadFile(p, n)
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

// getName labels a row as file:level:size. A negative level is omitted.
func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	if l < 0 {
		return fmt.Sprintf("%s:%s", path.Base(f), sn)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}

// ParseSizes parses sizes such as "1e6" or "64Ki".
func ParseSizes(ss []string) ([]int, error) {
	var sizes []int
	for _, s := range ss {
		nf, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil || nf < 0 {
			return nil, fmt.Errorf("invalid size: %q", s)
		}
		sizes = append(sizes, int(nf))
	}
	return sizes, nil
}
