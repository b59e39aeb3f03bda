// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"io/ioutil"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

func init() {
	RegisterEncoder("flate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("flate",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	RegisterEncoder("zstd",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("zstd",
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r)
			if err != nil {
				panic(err)
			}
			return zr.IOReadCloser()
		})

	RegisterEncoder("s2",
		func(w io.Writer, lvl int) io.WriteCloser {
			var opts []s2.WriterOption
			switch {
			case lvl >= 9:
				opts = append(opts, s2.WriterBestCompression())
			case lvl >= 6:
				opts = append(opts, s2.WriterBetterCompression())
			}
			return s2.NewWriter(w, opts...)
		})
	RegisterDecoder("s2",
		func(r io.Reader) io.ReadCloser {
			return ioutil.NopCloser(s2.NewReader(r))
		})

	RegisterEncoder("huff0",
		func(w io.Writer, lvl int) io.WriteCloser {
			return newHuffWriter(w)
		})
	RegisterDecoder("huff0",
		func(r io.Reader) io.ReadCloser {
			return newHuffReader(r)
		})

	RegisterEncoder("xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("xz",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return ioutil.NopCloser(zr)
		})

	RegisterEncoder("lz4",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw := lz4.NewWriter(w)
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Level(lvl))); err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("lz4",
		func(r io.Reader) io.ReadCloser {
			return ioutil.NopCloser(lz4.NewReader(r))
		})
}

func lz4Level(lvl int) lz4.CompressionLevel {
	levels := []lz4.CompressionLevel{
		lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
		lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
	}
	if lvl < 0 || lvl >= len(levels) {
		return lz4.Fast
	}
	return levels[lvl]
}
