// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// This package implements the Suffix Array by Induced Sorting (SA-IS) method
// by Nong, Zhang, and Chan. The byte string is lifted into an integer string
// with an explicit sentinel so that the same recursive routine can handle both
// the input text and the reduced strings of LMS-substring names.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://www.researchgate.net/publication/221313676_Linear_Time_Suffix_Array_Construction_Using_D-Critical_Substrings
//	https://www.researchgate.net/publication/224176324_Two_Efficient_Algorithms_for_Linear_Time_Suffix_Array_Construction

// ComputeSA computes the suffix array of t and places the result in sa.
// Both t and sa must be the same length.
//
// A suffix that is a proper prefix of another suffix sorts first.
func ComputeSA(t []byte, sa []int) {
	if len(sa) != len(t) {
		panic("mismatching sizes")
	}
	if len(t) == 0 {
		return
	}

	// Symbol 0 is reserved for the sentinel, which is the unique minimum.
	s := make([]int, len(t)+1)
	for i, c := range t {
		s[i] = int(c) + 1
	}
	full := make([]int, len(s))
	computeSA(s, full, 256+1)

	// The sentinel suffix is always first.
	copy(sa, full[1:])
}
