// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

// The forward transform used by default is based on the Suffix Array by
// Induced Sorting (SA-IS) methodology by Nong, Zhang, and Chan.
//
// The SA-IS algorithm runs in O(n) and outputs a Suffix Array. There is a
// mathematical relationship between Suffix Arrays and the Burrows-Wheeler
// Transform, such that a SA can be converted to a BWT in O(n) time.
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://github.com/cscott/compressjs/blob/master/lib/BWT.js
//	https://www.quora.com/How-can-I-optimize-burrows-wheeler-transform-and-inverse-transform-to-work-in-O-n-time-O-n-space

import (
	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/sais"
)

// Block is the transformed representation of a sequence: the last column of
// the sorted rotation matrix and the rank of the original rotation.
type Block struct {
	Data   []byte
	Origin int
}

// Transformer performs the forward and inverse transforms while reusing its
// scratch buffers between blocks. The zero value is ready for use and ranks
// with SAIS. A Transformer must not be used concurrently.
type Transformer struct {
	Algorithm Algorithm

	buf  []byte
	sa   []int
	perm []int
}

// Encode transforms buf in place and returns the origin.
// An empty buf returns NoOrigin.
func (bwt *Transformer) Encode(buf []byte) (ptr int) {
	n := len(buf)
	if n == 0 {
		return NoOrigin
	}

	// Step 1: Keep the input concatenated to itself. The second half is an
	// untouched copy of the input while buf is overwritten with the output.
	bwt.buf = append(append(bwt.buf[:0], buf...), buf...)
	t := bwt.buf[:2*n]
	buf2 := t[n:]

	// Step 2: Rank the rotations and emit the symbol that precedes each one.
	switch bwt.Algorithm {
	case SAIS:
		if cap(bwt.sa) < 2*n {
			bwt.sa = make([]int, 2*n)
		}
		sa := bwt.sa[:2*n]
		sais.ComputeSA(t, sa)

		var j int
		for _, i := range sa {
			if i < n {
				if i == 0 {
					ptr = j
					i = n
				}
				buf[j] = buf2[i-1]
				j++
			}
		}
	case Compare:
		for j, i := range RankCompare(buf2) {
			if i == 0 {
				ptr = j
				i = n
			}
			buf[j] = buf2[i-1]
		}
	default:
		panicf(errors.Internal, "unknown algorithm: %v", bwt.Algorithm)
	}
	return ptr
}

// Decode reverses the transform of buf in place given its origin ptr.
func (bwt *Transformer) Decode(buf []byte, ptr int) error {
	n := len(buf)
	if n == 0 {
		if ptr != NoOrigin {
			return errorf(errors.Range, "origin %d of an empty block", ptr)
		}
		return nil
	}
	if ptr < 0 || ptr >= n {
		return errorf(errors.Range, "origin %d not in [0, %d)", ptr, n)
	}

	// Step 1: Compute cumm, where cumm[ch] reports the total number of
	// characters that precede the character ch in the alphabet.
	var cumm [internal.AlphabetSize]int
	for _, v := range buf {
		cumm[v]++
	}
	var sum int
	for i, v := range cumm {
		cumm[i] = sum
		sum += v
	}

	// Step 2: Compute perm, where perm[ptr] contains a pointer to the next
	// byte in buf and the next pointer in perm itself. Occurrences of a
	// symbol keep their relative order, which makes the sort stable.
	if cap(bwt.perm) < n {
		bwt.perm = make([]int, n)
	}
	perm := bwt.perm[:n]
	for i, b := range buf {
		perm[cumm[b]] = i
		cumm[b]++
	}

	// Step 3: Follow each pointer in perm to the next byte, starting with the
	// origin pointer.
	if cap(bwt.buf) < n {
		bwt.buf = make([]byte, n)
	}
	buf2 := bwt.buf[:n]
	i := perm[ptr]
	for j := range buf2 {
		buf2[j] = buf[i]
		i = perm[i]
	}
	copy(buf, buf2)
	return nil
}

// Transform returns the transform of seq. The input is not modified.
func (bwt *Transformer) Transform(seq []byte) (b Block, err error) {
	defer errors.Recover(&err)
	b.Data = append([]byte{}, seq...)
	b.Origin = bwt.Encode(b.Data)
	return b, nil
}

// Untransform returns the sequence that b is the transform of.
func (bwt *Transformer) Untransform(b *Block) ([]byte, error) {
	if b == nil {
		return nil, errorf(errors.Missing, "nil block")
	}
	out := make([]byte, len(b.Data))
	if err := bwt.UntransformInto(out, b); err != nil {
		return nil, err
	}
	return out, nil
}

// UntransformInto writes the sequence that b is the transform of into dst,
// which must have the same length as b.Data.
func (bwt *Transformer) UntransformInto(dst []byte, b *Block) error {
	if b == nil {
		return errorf(errors.Missing, "nil block")
	}
	if len(dst) != len(b.Data) {
		return errorf(errors.Length, "destination has %d bytes, block has %d", len(dst), len(b.Data))
	}
	copy(dst, b.Data)
	return bwt.Decode(dst, b.Origin)
}

// Transform returns the transform of seq using SAIS ranking.
// An empty seq yields an empty block with origin NoOrigin.
func Transform(seq []byte) Block {
	var bwt Transformer
	b, _ := bwt.Transform(seq) // SAIS never fails
	return b
}

// Untransform returns the sequence that b is the transform of.
func Untransform(b *Block) ([]byte, error) {
	var bwt Transformer
	return bwt.Untransform(b)
}

// UntransformInto writes the sequence that b is the transform of into dst.
func UntransformInto(dst []byte, b *Block) error {
	var bwt Transformer
	return bwt.UntransformInto(dst, b)
}
