// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestError(t *testing.T) {
	var vectors = []struct {
		err  error
		str  string
		pred func(error) bool
	}{{
		err:  New(Range, "bwt", "origin %d not in [0, %d)", 7, 5),
		str:  "bwt: index out of range: origin 7 not in [0, 5)",
		pred: IsOutOfRange,
	}, {
		err:  Error{Code: Missing, Pkg: "bwt"},
		str:  "bwt: missing input",
		pred: IsMissing,
	}, {
		err:  fmt.Errorf("decompress: %w", Error{Code: Corrupted, Pkg: "blocksort", Msg: "checksum mismatch"}),
		str:  "decompress: blocksort: corrupted input: checksum mismatch",
		pred: IsCorrupted,
	}, {
		err:  Error{Code: Alphabet, Msg: "rank 300"},
		str:  "malformed alphabet: rank 300",
		pred: IsMalformed,
	}, {
		err:  Error{Code: Length, Pkg: "mtf"},
		str:  "mtf: invalid length",
		pred: IsInvalidLength,
	}}

	for i, v := range vectors {
		if got := v.err.Error(); got != v.str {
			t.Errorf("test %d, string mismatch:\ngot  %q\nwant %q", i, got, v.str)
		}
		if !v.pred(v.err) {
			t.Errorf("test %d, predicate mismatch: got false, want true", i)
		}
		if IsInternal(v.err) {
			t.Errorf("test %d, unexpected internal error", i)
		}
	}

	if IsCorrupted(io.EOF) {
		t.Errorf("io.EOF classified as corrupted")
	}
}

func TestRecover(t *testing.T) {
	run := func(f func()) (err error) {
		defer Recover(&err)
		f()
		return nil
	}

	err := run(func() { Panicf(Corrupted, "bwt", "bad header") })
	if !IsCorrupted(err) {
		t.Errorf("Recover mismatch: got %v, want corrupted error", err)
	}
	if err := run(func() {}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("runtime error was not re-raised")
		}
	}()
	run(func() {
		var s []int
		_ = s[1]
	})
}
