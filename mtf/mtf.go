// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements move-to-front recoding over a byte alphabet.
//
// Each symbol is replaced by its current position in a recency list, after
// which the symbol is moved to the front of the list. Runs of equal symbols,
// which the Burrows-Wheeler transform produces in abundance, become runs of
// zero ranks.
package mtf

import (
	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

// AlphabetSize is the number of distinct symbols in the full alphabet.
const AlphabetSize = internal.AlphabetSize

// Coder holds the recency list of a move-to-front stream. The list is a flat
// array that is scanned linearly and shifted with copy, which costs O(R) per
// symbol. A Coder must not be used concurrently.
type Coder struct {
	dictBuf [AlphabetSize]byte
	dictLen int
	initBuf [AlphabetSize]byte // Dictionary restored by Reset
}

// NewCoder returns a Coder over the full alphabet in ascending order.
func NewCoder() *Coder {
	m := new(Coder)
	m.initBuf = internal.IdentityLUT
	m.dictLen = AlphabetSize
	m.Reset()
	return m
}

// NewCoderAlphabet returns a Coder whose recency list starts as dict.
// The symbols in dict must be distinct. A copy of dict is made so that it
// will not be mutated.
func NewCoderAlphabet(dict []byte) (*Coder, error) {
	if len(dict) == 0 {
		return nil, errorf(errors.Missing, "empty alphabet")
	}
	if len(dict) > AlphabetSize {
		return nil, errorf(errors.Length, "alphabet of %d symbols", len(dict))
	}
	var seen [AlphabetSize]bool
	for _, c := range dict {
		if seen[c] {
			return nil, errorf(errors.Alphabet, "duplicate symbol %d", c)
		}
		seen[c] = true
	}
	m := new(Coder)
	copy(m.initBuf[:], dict)
	m.dictLen = len(dict)
	m.Reset()
	return m, nil
}

// Reset restores the recency list to its initial order.
func (m *Coder) Reset() {
	m.dictBuf = m.initBuf
}

// AlphabetSize reports the number of symbols in the recency list.
func (m *Coder) AlphabetSize() int { return m.dictLen }

// Dict returns a copy of the current recency list.
func (m *Coder) Dict() []byte {
	return append([]byte(nil), m.dictBuf[:m.dictLen]...)
}

// EncodeByte returns the rank of c and moves c to the front.
func (m *Coder) EncodeByte(c byte) (byte, error) {
	dict := m.dictBuf[:m.dictLen]
	for idx, v := range dict {
		if v == c {
			copy(dict[1:], dict[:idx])
			dict[0] = c
			return byte(idx), nil
		}
	}
	return 0, errorf(errors.Alphabet, "symbol %d not in alphabet", c)
}

// DecodeByte returns the symbol at rank and moves it to the front.
func (m *Coder) DecodeByte(rank byte) (byte, error) {
	idx := int(rank)
	if idx >= m.dictLen {
		return 0, errorf(errors.Alphabet, "rank %d not in [0, %d)", idx, m.dictLen)
	}
	dict := m.dictBuf[:m.dictLen]
	c := dict[idx]
	copy(dict[1:], dict[:idx])
	dict[0] = c
	return c, nil
}

// Encode returns the ranks of vals, continuing from the current state.
func (m *Coder) Encode(vals []byte) ([]byte, error) {
	ranks := make([]byte, len(vals))
	if err := m.encode(ranks, vals); err != nil {
		return nil, err
	}
	return ranks, nil
}

// Decode returns the symbols of ranks, continuing from the current state.
func (m *Coder) Decode(ranks []byte) ([]byte, error) {
	vals := make([]byte, len(ranks))
	if err := m.decode(vals, ranks); err != nil {
		return nil, err
	}
	return vals, nil
}

// DecodeRanks is like Decode, but accepts ranks of arbitrary magnitude and
// reports any rank outside of the alphabet as malformed.
func (m *Coder) DecodeRanks(ranks []int) ([]byte, error) {
	vals := make([]byte, len(ranks))
	for i, r := range ranks {
		if r < 0 || r >= m.dictLen {
			return nil, errorf(errors.Alphabet, "rank %d not in [0, %d)", r, m.dictLen)
		}
		vals[i], _ = m.DecodeByte(byte(r))
	}
	m.check()
	return vals, nil
}

// encode writes the ranks of src into dst, which may alias src.
func (m *Coder) encode(dst, src []byte) error {
	for i, c := range src {
		r, err := m.EncodeByte(c)
		if err != nil {
			return err
		}
		dst[i] = r
	}
	m.check()
	return nil
}

// decode writes the symbols of src into dst, which may alias src.
func (m *Coder) decode(dst, src []byte) error {
	for i, r := range src {
		c, err := m.DecodeByte(r)
		if err != nil {
			return err
		}
		dst[i] = c
	}
	m.check()
	return nil
}

// check verifies that the recency list is still a permutation of the
// initial dictionary. It only runs in debug builds.
func (m *Coder) check() {
	if !internal.Debug {
		return
	}
	var cnts [AlphabetSize]int
	for _, c := range m.initBuf[:m.dictLen] {
		cnts[c]++
	}
	for _, c := range m.dictBuf[:m.dictLen] {
		if cnts[c]--; cnts[c] < 0 {
			panicf(errors.Internal, "recency list holds symbol %d twice", c)
		}
	}
}

// Encode returns the move-to-front ranks of vals over the full alphabet.
func Encode(vals []byte) []byte {
	ranks, _ := NewCoder().Encode(vals) // Every byte is in the full alphabet
	return ranks
}

// Decode returns the symbols of ranks over the full alphabet.
func Decode(ranks []byte) []byte {
	vals, _ := NewCoder().Decode(ranks) // Every byte is a valid rank
	return vals
}

func errorf(code int, f string, args ...interface{}) error {
	return errors.New(code, "mtf", f, args...)
}

func panicf(code int, f string, args ...interface{}) {
	errors.Panicf(code, "mtf", f, args...)
}
