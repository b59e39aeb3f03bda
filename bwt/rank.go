// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"sort"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/sais"
)

// CompareRotations compares the circular suffixes of seq that start at offsets
// a and b over the first len(seq) symbols. The result is -1, 0, or +1.
// Rotations are never materialized; offsets wrap around the one buffer.
func CompareRotations(seq []byte, a, b int) int {
	n := len(seq)
	for k := 0; k < n; k++ {
		ca, cb := seq[a], seq[b]
		if ca != cb {
			if ca < cb {
				return -1
			}
			return +1
		}
		if a++; a == n {
			a = 0
		}
		if b++; b == n {
			b = 0
		}
	}
	return 0
}

// Rank returns the offsets of all circular suffixes of seq in sorted order.
//
// It computes a suffix array of seq+seq in O(n) time and keeps the offsets
// that are less than n. Every such suffix has the full rotation as a prefix,
// so the suffix order is consistent with the rotation order. Equal rotations,
// which only occur in periodic blocks, are ordered by their doubled suffixes.
func Rank(seq []byte) []int {
	n := len(seq)
	if n == 0 {
		return []int{}
	}

	// TODO(dsnet): Find a way to avoid the duplicate input string method.
	// Suffix arrays only operate on non-wrapped suffixes, while rotations wrap.
	t := append(append(make([]byte, 0, 2*n), seq...), seq...)
	sa := make([]int, 2*n)
	sais.ComputeSA(t, sa)

	order := make([]int, 0, n)
	for _, i := range sa {
		if i < n {
			order = append(order, i)
		}
	}
	return order
}

// RankCompare returns the offsets of all circular suffixes of seq in sorted
// order using a stable comparison sort, so equal rotations keep offset order.
// It performs O(n log n) comparisons of O(n) each.
func RankCompare(seq []byte) []int {
	rs := rotations{seq: seq, order: make([]int, len(seq))}
	for i := range rs.order {
		rs.order[i] = i
	}
	sort.Stable(rs)
	return rs.order
}

// rotations implements sort.Interface over offsets into a single buffer.
type rotations struct {
	seq   []byte
	order []int
}

func (rs rotations) Len() int      { return len(rs.order) }
func (rs rotations) Swap(i, j int) { rs.order[i], rs.order[j] = rs.order[j], rs.order[i] }
func (rs rotations) Less(i, j int) bool {
	return CompareRotations(rs.seq, rs.order[i], rs.order[j]) < 0
}

func rank(seq []byte, alg Algorithm) []int {
	switch alg {
	case SAIS:
		return Rank(seq)
	case Compare:
		return RankCompare(seq)
	default:
		panicf(errors.Internal, "unknown algorithm: %v", alg)
		return nil
	}
}

// SuffixArray is the sorted order of the circular suffixes of a block.
// It is read-only after construction.
type SuffixArray struct {
	order  []int
	origin int
}

// NewSuffixArray ranks the circular suffixes of seq using alg.
// An empty seq yields an empty SuffixArray.
func NewSuffixArray(seq []byte, alg Algorithm) (sa *SuffixArray, err error) {
	defer errors.Recover(&err)
	sa = &SuffixArray{order: rank(seq, alg), origin: NoOrigin}
	for k, i := range sa.order {
		if i == 0 {
			sa.origin = k
			break
		}
	}
	return sa, nil
}

// Len reports the number of circular suffixes.
func (sa *SuffixArray) Len() int { return len(sa.order) }

// Index reports the offset of the i-th smallest circular suffix.
func (sa *SuffixArray) Index(i int) (int, error) {
	if i < 0 || i >= len(sa.order) {
		return 0, errorf(errors.Range, "index %d not in [0, %d)", i, len(sa.order))
	}
	return sa.order[i], nil
}

// Origin reports the rank of the suffix at offset 0, or NoOrigin if empty.
func (sa *SuffixArray) Origin() int { return sa.origin }

// Order returns a copy of the rank permutation.
func (sa *SuffixArray) Order() []int {
	return append([]int(nil), sa.order...)
}
