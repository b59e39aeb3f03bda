// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package blocksort implements the front end of a block-sorting compressor:
// the Burrows-Wheeler transform followed by move-to-front recoding.
//
// The front end does not compress by itself. It redistributes the symbols of
// a block so that a back-end entropy coder finds long runs of small ranks.
// Forward and Inverse operate on memory; Writer and Reader frame a single
// block together with a checksum of the original data:
//
//	magic    [4]byte  "BWM1"
//	origin   uint32   big-endian, 0xffffffff for an empty block
//	length   uint32   big-endian
//	ranks    [length]byte
//	checksum uint64   big-endian xxhash64 of the original data
//
// The stages are available on their own in packages bwt and mtf.
package blocksort
