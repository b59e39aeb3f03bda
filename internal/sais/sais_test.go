// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package sais

import (
	"bytes"
	"reflect"
	"sort"
	"testing"

	"github.com/dsnet/blocksort/internal/testutil"
)

// naiveSA sorts all suffixes with the standard library. It is quadratic in
// the worst case, but trivially correct.
func naiveSA(t []byte) []int {
	sa := make([]int, len(t))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(t[sa[i]:], t[sa[j]:]) < 0
	})
	return sa
}

func TestComputeSA(t *testing.T) {
	var vectors = []struct {
		input  string
		output []int
	}{
		{input: "", output: []int{}},
		{input: "a", output: []int{0}},
		{input: "aaaa", output: []int{3, 2, 1, 0}},
		{input: "banana", output: []int{5, 3, 1, 0, 4, 2}},
		{input: "mississippi", output: []int{10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}},
		{input: "abracadabra", output: []int{10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}},
		{input: "\xff\x00\xff\x00", output: []int{3, 1, 2, 0}},
	}

	for i, v := range vectors {
		sa := make([]int, len(v.input))
		ComputeSA([]byte(v.input), sa)
		if !reflect.DeepEqual(sa, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %v\nwant %v", i, sa, v.output)
		}
	}
}

func TestComputeSARandom(t *testing.T) {
	r := testutil.NewRand(0)
	for i := 0; i < 500; i++ {
		n := r.Intn(300)
		k := 1 + r.Intn(4) // Small alphabets force deep recursion
		if i%10 == 0 {
			k = 256
		}
		input := r.Symbols(n, k)

		sa := make([]int, n)
		ComputeSA(input, sa)
		if want := naiveSA(input); !reflect.DeepEqual(sa, want) {
			t.Fatalf("test %d, output mismatch for %q:\ngot  %v\nwant %v", i, input, sa, want)
		}
	}
}

func TestComputeSAPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on mismatching sizes")
		}
	}()
	ComputeSA([]byte("abc"), make([]int, 2))
}

func BenchmarkComputeSA(b *testing.B) {
	input := testutil.Repeats(1<<16, 0)
	sa := make([]int, len(input))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeSA(input, sa)
	}
}
