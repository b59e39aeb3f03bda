// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/blocksort"
	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/testutil"
)

// Front is a reversible transformation applied before a back-end codec.
type Front struct {
	Kind      FrontKind
	Algorithm bwt.Algorithm
}

type FrontKind int

const (
	FrontRaw    FrontKind = iota // Data is passed through
	FrontBWT                     // Output of bwt.Writer
	FrontBWTMTF                  // Output of blocksort.Writer
)

var frontNames = map[FrontKind]string{
	FrontRaw:    "raw",
	FrontBWT:    "bwt",
	FrontBWTMTF: "bwt+mtf",
}

func (k FrontKind) String() string {
	if s, ok := frontNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FrontKind(%d)", int(k))
}

// ParseFront parses the name of a front end as returned by FrontKind.String.
func ParseFront(s string) (FrontKind, error) {
	for k, v := range frontNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown front end: %q", s)
}

func (f Front) String() string { return f.Kind.String() }

// Encode applies the front end to input.
func (f Front) Encode(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	var wr io.WriteCloser
	var err error
	switch f.Kind {
	case FrontRaw:
		return input, nil
	case FrontBWT:
		wr, err = bwt.NewWriter(&buf, &bwt.WriterConfig{MaxBlockSize: maxInput(input), Algorithm: f.Algorithm})
	case FrontBWTMTF:
		wr, err = blocksort.NewWriter(&buf, &blocksort.WriterConfig{MaxBlockSize: maxInput(input), Algorithm: f.Algorithm})
	default:
		return nil, fmt.Errorf("unknown front end: %v", f.Kind)
	}
	if err != nil {
		return nil, err
	}
	if _, err := wr.Write(input); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func (f Front) Decode(input []byte) ([]byte, error) {
	var rd io.ReadCloser
	var err error
	switch f.Kind {
	case FrontRaw:
		return input, nil
	case FrontBWT:
		rd, err = bwt.NewReader(bytes.NewReader(input), &bwt.ReaderConfig{MaxBlockSize: maxInput(input)})
	case FrontBWTMTF:
		rd, err = blocksort.NewReader(bytes.NewReader(input), &blocksort.ReaderConfig{MaxBlockSize: maxInput(input)})
	default:
		return nil, fmt.Errorf("unknown front end: %v", f.Kind)
	}
	if err != nil {
		return nil, err
	}
	output, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return output, rd.Close()
}

// maxInput reports a block size limit that admits the whole input.
func maxInput(b []byte) int {
	if len(b) < bwt.DefaultBlockSize {
		return bwt.DefaultBlockSize
	}
	return len(b)
}

const defaultCorpusSize = 1 << 20

// Corpora are generated inputs available without any test files.
var Corpora = map[string]func(n int) []byte{
	"repeats.bin": func(n int) []byte { return testutil.Repeats(n, 0) },
	"random.bin":  func(n int) []byte { return testutil.NewRand(0).Bytes(n) },
	"zeros.bin":   func(n int) []byte { return make([]byte, n) },
	"symbols.txt": func(n int) []byte { return testutil.NewRand(1).Symbols(n, 4) },
}
