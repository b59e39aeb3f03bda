// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

// computeSA computes the suffix array of s into sa, where every symbol of s is
// in [0, k) and the last symbol of s is a 0 that occurs nowhere else.
func computeSA(s, sa []int, k int) {
	n := len(s)
	if n == 1 {
		sa[0] = 0
		return
	}

	stype := classify(s)
	bkt := make([]int, k)
	for _, c := range s {
		bkt[c]++
	}

	// Step 1: Place every LMS suffix at the end of its bucket and induce an
	// approximate order, which correctly sorts the LMS-substrings.
	for i := range sa {
		sa[i] = -1
	}
	tails := bucketTails(bkt)
	for i := 1; i < n; i++ {
		if isLMS(stype, i) {
			tails[s[i]]--
			sa[tails[s[i]]] = i
		}
	}
	induce(s, sa, stype, bkt)

	// Step 2: Name the LMS-substrings in sorted order. Equal substrings share
	// a name, so the names preserve the relative order of the LMS suffixes.
	var sorted []int
	for _, p := range sa {
		if isLMS(stype, p) {
			sorted = append(sorted, p)
		}
	}
	names := make([]int, n)
	name, prev := 0, -1
	for _, p := range sorted {
		if prev >= 0 && !equalLMS(s, stype, prev, p) {
			name++
		}
		names[p] = name
		prev = p
	}
	numNames := name + 1

	// Step 3: Sort the LMS suffixes by sorting the reduced string of names.
	// Since the sentinel is the only LMS-substring named 0 and it is last in
	// text order, the reduced string satisfies the precondition of computeSA.
	lms := make([]int, 0, len(sorted))
	for i := 1; i < n; i++ {
		if isLMS(stype, i) {
			lms = append(lms, i)
		}
	}
	reduced := make([]int, len(lms))
	for j, p := range lms {
		reduced[j] = names[p]
	}
	rsa := make([]int, len(lms))
	if numNames < len(lms) {
		computeSA(reduced, rsa, numNames)
	} else {
		for j, c := range reduced {
			rsa[c] = j
		}
	}

	// Step 4: Seed the buckets with the LMS suffixes in their final order and
	// induce the complete suffix array.
	for i := range sa {
		sa[i] = -1
	}
	tails = bucketTails(bkt)
	for j := len(rsa) - 1; j >= 0; j-- {
		p := lms[rsa[j]]
		tails[s[p]]--
		sa[tails[s[p]]] = p
	}
	induce(s, sa, stype, bkt)
}

// classify reports whether each suffix of s is S-type (true) or L-type.
func classify(s []int) []bool {
	n := len(s)
	stype := make([]bool, n)
	stype[n-1] = true
	for i := n - 2; i >= 0; i-- {
		stype[i] = s[i] < s[i+1] || (s[i] == s[i+1] && stype[i+1])
	}
	return stype
}

func isLMS(stype []bool, i int) bool {
	return i > 0 && stype[i] && !stype[i-1]
}

// equalLMS reports whether the LMS-substrings starting at a and b are
// identical in both symbols and types.
func equalLMS(s []int, stype []bool, a, b int) bool {
	for d := 0; ; d++ {
		if s[a+d] != s[b+d] || stype[a+d] != stype[b+d] {
			return false
		}
		if d > 0 && (isLMS(stype, a+d) || isLMS(stype, b+d)) {
			return true
		}
	}
}

// induce fills in the L-type suffixes with a left-to-right scan, and then the
// S-type suffixes with a right-to-left scan.
func induce(s, sa []int, stype []bool, bkt []int) {
	heads := bucketHeads(bkt)
	for i := 0; i < len(sa); i++ {
		if j := sa[i] - 1; j >= 0 && !stype[j] {
			sa[heads[s[j]]] = j
			heads[s[j]]++
		}
	}
	tails := bucketTails(bkt)
	for i := len(sa) - 1; i >= 0; i-- {
		if j := sa[i] - 1; j >= 0 && stype[j] {
			tails[s[j]]--
			sa[tails[s[j]]] = j
		}
	}
}

func bucketHeads(bkt []int) []int {
	heads := make([]int, len(bkt))
	var sum int
	for c, v := range bkt {
		heads[c] = sum
		sum += v
	}
	return heads
}

func bucketTails(bkt []int) []int {
	tails := make([]int, len(bkt))
	var sum int
	for c, v := range bkt {
		sum += v
		tails[c] = sum
	}
	return tails
}
