// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"testing"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/testutil"
)

func ss(s string) string {
	const limit = 256
	if len(s) > limit {
		return fmt.Sprintf("%q...", s[:limit])
	}
	return fmt.Sprintf("%q", s)
}

func TestBurrowsWheelerTransform(t *testing.T) {
	var vectors = []struct {
		input  string // The input test string
		output string // Expected output string after BWT (skip if empty)
		chksum string // Expected output MD5 checksum (skip if empty)
		ptr    int    // The BWT origin pointer
	}{{
		input:  "",
		output: "",
		ptr:    NoOrigin,
	}, {
		input:  "x",
		output: "x",
		ptr:    0,
	}, {
		input:  "ABRACADABRA!",
		output: "ARD!RCAAAABB",
		ptr:    3,
	}, {
		input:  "Hello, world!",
		output: ",do!lHrellwo ",
		ptr:    3,
	}, {
		input:  "SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES",
		output: "TEXYDST.E.IXIXIXXSSMPPS.B..E.S.EUSFXDIIOIIIT",
		ptr:    29,
	}, {
		input:  "0123456789",
		output: "9012345678",
		ptr:    0,
	}, {
		input:  "9876543210",
		output: "1234567890",
		ptr:    9,
	}, {
		input:  "The quick brown fox jumped over the lazy dog.",
		output: "kynxederg.l ie hhpv otTu c uwd rfm eb qjoooza",
		ptr:    9,
	}, {
		input: strings.Repeat("Mary had a little lamb, its fleece was white as snow", 8) +
			"Nary had a little lamb, its fleece was white as snow",
		output: "dddddddddeeeeeeeeesssssssssyyyyyyyyy,,,,,,,,,eeeeeee" +
			"eeaaaaaaaaassssssssseeeeeeeeesssssssssbbbbbbbbbwwwww" +
			"wwww         hhhhhhhhhlllllllllNMMMMMMMM         www" +
			"wwwwwwmmmmmmmmmeeeeeeeeeaaaaaaaaatttttttttlllllllllc" +
			"cccccccceeeeeeeeelllllllll                  wwwwwwww" +
			"whhhhhhhhh         lllllllll         tttttttttffffff" +
			"fff         aaaaaaaaasssssssssnnnnnnnnnaaaaaaaaatttt" +
			"tttttaaaaaaaaaaaaaaaaaa         iiiiiiiiitttttttttii" +
			"iiiiiiiiiiiiiiiiooooooooo                  rrrrrrrrr",
		ptr: 99,
	}, {
		input: "AGCTTTTCATTCTGACTGCAACGGGCAATATGTCTCTGTGTGGATTAAAAAAAGAGTCTCTGAC" +
			"AGCAGCTTCTGAACTGGTTACCTGCCGTGAGTAAATTAAAATTTTATTGACTTAGGTCACTAAA" +
			"TACTTTAACCAATATAGGCATAGCGCACAGACAGATAAAAATTACAGAGTACACAACATCCATG" +
			"AAACGCATTAGCACCACCATTACCACCACCATCACCACCACCATCACCATTACCATTACCACAG" +
			"GTAACGGTGCGGGCTGACGCGTACAGGAAACACAGAAAAAAGCCCGCACCTGACAGTGCGGGCT" +
			"TTTTTTTCGACCAAAGGTAACGAGGTAACAACCATGCGAGTGTTGAAGTTCGGCGGTACATCAG" +
			"TGGCAAATGCAGAACGTTTTCTGCGGGTTGCCGATATTCTGGAAAGCAATGCCAGGCAGGGGCA",
		output: "TAGAATAAATGGAGACTCTAATACTCTACTGGAAACAGACCACAAACATACCTGGTCGTAGATT" +
			"CCCCCCATCCCTAAGAAACGAGTCCCCACATCATCACCTCGACTGGGCCGAGACTAAGCCCCCA" +
			"ACTGAACCCCCTTACGAAGGCGGAAGCTCCGCCCTGTAGAAAAGACGAATGCCAACCCCCGTAA" +
			"AAAAAAGAATAAAAGGCGAATAGCGCAATAGGGGAGCAATTTTCGTACTTATAGAGGAGTGATT" +
			"ATTCTTTCTAACACGGTGGACACTAGGCTATTTATTTGCGAAGATTTGGAACGGGCCCACAAAC" +
			"ACTGAGGGACGGATCGATATAGATGCTATCGGTGGGTGGTTTTATAATAAATAAGATATTGGTC" +
			"TTTCACTCCCCTGCAATCAGGCCGGCAGCGAATAAAAGACTTTGCATAGAGCTTTTACTGTTTC",
		ptr: 99,
	}}

	for _, alg := range []Algorithm{SAIS, Compare} {
		bwt := &Transformer{Algorithm: alg}
		for i, v := range vectors {
			b := []byte(v.input)
			p := bwt.Encode(b)
			output := string(b)
			chksum := fmt.Sprintf("%x", md5.Sum(b))
			if err := bwt.Decode(b, p); err != nil {
				t.Errorf("%v, test %d, unexpected error: %v", alg, i, err)
			}
			input := string(b)

			if input != v.input {
				t.Errorf("%v, test %d, input mismatch:\ngot  %v\nwant %v", alg, i, ss(input), ss(v.input))
			}
			if output != v.output && v.output != "" {
				t.Errorf("%v, test %d, output mismatch:\ngot  %v\nwant %v", alg, i, ss(output), ss(v.output))
			}
			if chksum != v.chksum && v.chksum != "" {
				t.Errorf("%v, test %d, checksum mismatch:\ngot  %s\nwant %s", alg, i, chksum, v.chksum)
			}
			if p != v.ptr {
				t.Errorf("%v, test %d, pointer mismatch: got %d, want %d", alg, i, p, v.ptr)
			}
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	r := testutil.NewRand(0)
	var inputs [][]byte
	for _, n := range []int{1, 2, 3, 7, 64, 255, 256, 1000, 4096, 10000} {
		for _, k := range []int{1, 2, 4, 26, 256} {
			inputs = append(inputs, r.Symbols(n, k))
		}
	}
	inputs = append(inputs,
		[]byte("AAAAAA"),
		bytes.Repeat([]byte("ab"), 500),
		bytes.Repeat([]byte("abcabd"), 333),
		testutil.Repeats(1<<15, 1),
		ascending(256),
		reverse(ascending(256)),
	)

	var bwt Transformer
	for i, input := range inputs {
		b, err := bwt.Transform(input)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if len(b.Data) != len(input) {
			t.Errorf("test %d, length mismatch: got %d, want %d", i, len(b.Data), len(input))
		}
		if !bytes.Equal(sorted(b.Data), sorted(input)) {
			t.Errorf("test %d, output is not a permutation of the input", i)
		}

		output, err := bwt.Untransform(&b)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if !bytes.Equal(output, input) {
			t.Errorf("test %d, round trip mismatch:\ngot  %v\nwant %v", i, ss(string(output)), ss(string(input)))
		}
	}
}

// TestAlgorithmsAgree checks that both rankers yield the same last column.
// Equal rotations are preceded by equal symbols, so the output only differs
// in the origin, and only for periodic inputs.
func TestAlgorithmsAgree(t *testing.T) {
	r := testutil.NewRand(1)
	for i := 0; i < 200; i++ {
		input := r.Symbols(1+r.Intn(500), 1+r.Intn(3))
		if i%4 == 0 {
			input = bytes.Repeat(input[:1+len(input)%7], 1+r.Intn(20))
		}

		b1 := Transform(input)
		b2, err := (&Transformer{Algorithm: Compare}).Transform(input)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if !bytes.Equal(b1.Data, b2.Data) {
			t.Errorf("test %d, output mismatch for %q:\ngot  %q\nwant %q", i, input, b2.Data, b1.Data)
		}
		if b1.Origin != b2.Origin && !isPeriodic(input) {
			t.Errorf("test %d, origin mismatch for %q: got %d, want %d", i, input, b2.Origin, b1.Origin)
		}
		for j, b := range []Block{b1, b2} {
			output, err := Untransform(&b)
			if err != nil || !bytes.Equal(output, input) {
				t.Errorf("test %d.%d, round trip mismatch: got (%q, %v), want %q", i, j, output, err, input)
			}
		}
	}
}

func TestUntransformErrors(t *testing.T) {
	var vectors = []struct {
		block *Block
		dst   []byte
		pred  func(error) bool
	}{
		{block: nil, pred: errors.IsMissing},
		{block: &Block{Data: []byte("abc"), Origin: 3}, pred: errors.IsOutOfRange},
		{block: &Block{Data: []byte("abc"), Origin: -1}, pred: errors.IsOutOfRange},
		{block: &Block{Data: []byte{}, Origin: 0}, pred: errors.IsOutOfRange},
		{block: &Block{Data: []byte("abc"), Origin: 1}, dst: make([]byte, 2), pred: errors.IsInvalidLength},
	}

	for i, v := range vectors {
		var err error
		if v.dst != nil {
			err = UntransformInto(v.dst, v.block)
		} else {
			_, err = Untransform(v.block)
		}
		if !v.pred(err) {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
	}

	// The empty block is valid with the NoOrigin origin.
	out, err := Untransform(&Block{Data: nil, Origin: NoOrigin})
	if err != nil || len(out) != 0 {
		t.Errorf("empty block mismatch: got (%q, %v), want (\"\", nil)", out, err)
	}
	b := Transform(nil)
	if b.Origin != NoOrigin || b.Data == nil || len(b.Data) != 0 {
		t.Errorf("empty transform mismatch: got %+v", b)
	}
}

func TestTransformInputUnmodified(t *testing.T) {
	input := []byte("ABRACADABRA!")
	Transform(input)
	if string(input) != "ABRACADABRA!" {
		t.Errorf("input was modified: %q", input)
	}
}

func FuzzTransform(f *testing.F) {
	f.Add([]byte("ABRACADABRA!"))
	f.Add([]byte("AAAAAA"))
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, input []byte) {
		b := Transform(input)
		output, err := Untransform(&b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(output, input) {
			t.Fatalf("round trip mismatch: got %q, want %q", output, input)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	for _, alg := range []Algorithm{SAIS, Compare} {
		b.Run(alg.String(), func(b *testing.B) {
			input := testutil.Repeats(1<<14, 0)
			buf := make([]byte, len(input))
			bwt := &Transformer{Algorithm: alg}
			b.SetBytes(int64(len(input)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				copy(buf, input)
				bwt.Encode(buf)
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	input := testutil.Repeats(1<<16, 0)
	var bwt Transformer
	ptr := bwt.Encode(input)
	buf := make([]byte, len(input))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, input)
		bwt.Decode(buf, ptr)
	}
}

func ascending(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func reverse(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

func sorted(b []byte) []byte {
	var cnts [256]int
	for _, c := range b {
		cnts[c]++
	}
	out := make([]byte, 0, len(b))
	for c, n := range cnts {
		out = append(out, bytes.Repeat([]byte{byte(c)}, n)...)
	}
	return out
}

// isPeriodic reports whether b is a repetition of a shorter string.
func isPeriodic(b []byte) bool {
	for p := 1; p < len(b); p++ {
		if len(b)%p == 0 && bytes.Equal(b[p:], b[:len(b)-p]) {
			return true
		}
	}
	return false
}
