// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements circular suffix ranking and the Burrows-Wheeler
// block transform.
//
// The transform sorts every rotation of a block and keeps the last column of
// the sorted rotation matrix together with the origin, the rank of the
// rotation that equals the block itself. Symbols that precede similar contexts
// are clustered together, which makes the output well suited to recency
// coding (see package mtf).
//
// The transform is a whole-block operation. Writer and Reader buffer exactly
// one block; multi-block streams are not supported.
package bwt

import (
	"fmt"

	"github.com/dsnet/blocksort/internal/errors"
)

// NoOrigin is the origin of an empty block.
const NoOrigin = -1

// DefaultBlockSize is the default limit on the size of a block handled by
// Writer and Reader.
const DefaultBlockSize = 64 << 20

// Algorithm selects how circular suffixes are ranked.
type Algorithm int

const (
	// SAIS ranks rotations with a linear time suffix array over the block
	// concatenated with itself.
	SAIS Algorithm = iota

	// Compare ranks rotations with a comparison sort over the circular
	// comparator. It runs in O(n² log n) time in the worst case.
	Compare
)

func (a Algorithm) String() string {
	switch a {
	case SAIS:
		return "sais"
	case Compare:
		return "compare"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

func (a Algorithm) valid() bool { return a == SAIS || a == Compare }

// ParseAlgorithm parses the name of an Algorithm as returned by String.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "sais", "":
		return SAIS, nil
	case "compare":
		return Compare, nil
	default:
		return 0, fmt.Errorf("bwt: unknown algorithm %q", s)
	}
}

func errorf(code int, f string, args ...interface{}) error {
	return errors.New(code, "bwt", f, args...)
}

func panicf(code int, f string, args ...interface{}) {
	errors.Panicf(code, "bwt", f, args...)
}
