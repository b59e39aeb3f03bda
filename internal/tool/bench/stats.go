// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"math"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/mtf"
)

// Entropy reports the order-0 entropy of b in bits per byte.
func Entropy(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	var cnts [256]int
	for _, c := range b {
		cnts[c]++
	}
	var h float64
	n := float64(len(b))
	for _, c := range cnts {
		if c > 0 {
			p := float64(c) / n
			h -= p * math.Log2(p)
		}
	}
	return h
}

// ZeroFraction reports the fraction of zero bytes in b.
func ZeroFraction(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	var n int
	for _, c := range b {
		if c == 0 {
			n++
		}
	}
	return float64(n) / float64(len(b))
}

// Stats describes how each stage of the front end changes a block.
type Stats struct {
	Size       int
	Origin     int
	RawEntropy float64 // Bits per byte of the input
	BWTEntropy float64 // Bits per byte after the transform
	MTFEntropy float64 // Bits per byte after recoding
	MTFZeros   float64 // Fraction of zero ranks
}

// ComputeStats runs the front end over data using alg.
func ComputeStats(data []byte, alg bwt.Algorithm) (Stats, error) {
	t := bwt.Transformer{Algorithm: alg}
	b, err := t.Transform(data)
	if err != nil {
		return Stats{}, err
	}
	ranks := mtf.Encode(b.Data)
	return Stats{
		Size:       len(data),
		Origin:     b.Origin,
		RawEntropy: Entropy(data),
		BWTEntropy: Entropy(b.Data),
		MTFEntropy: Entropy(ranks),
		MTFZeros:   ZeroFraction(ranks),
	}, nil
}
