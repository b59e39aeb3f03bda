// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

// headerSize is the size of the big-endian origin that precedes a block.
const headerSize = 4

type WriterConfig struct {
	// MaxBlockSize is the largest block that the Writer accepts.
	// If zero, DefaultBlockSize is used.
	MaxBlockSize int

	// Algorithm selects how the rotations are ranked.
	Algorithm Algorithm

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer buffers everything written to it as a single block. On Close, the
// block is transformed and written as a 32-bit big-endian origin followed by
// the transformed symbols. An empty block writes nothing.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr      io.Writer
	err     error
	buf     []byte
	maxSize int
	bwt     Transformer
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := new(Writer)
	if conf != nil {
		if conf.MaxBlockSize < 0 || conf.MaxBlockSize > 1<<31-1 {
			return nil, errorf(errors.Length, "invalid block size: %d", conf.MaxBlockSize)
		}
		zw.maxSize = conf.MaxBlockSize
		zw.bwt.Algorithm = conf.Algorithm
	}
	if !zw.bwt.Algorithm.valid() {
		return nil, errorf(errors.Internal, "unknown algorithm: %v", zw.bwt.Algorithm)
	}
	if zw.maxSize == 0 {
		zw.maxSize = DefaultBlockSize
	}
	if err := zw.Reset(w); err != nil {
		return nil, err
	}
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	if len(zw.buf)+len(buf) > zw.maxSize {
		zw.err = errorf(errors.Length, "block exceeds %d bytes", zw.maxSize)
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close transforms the buffered block and writes it out.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() (err error) {
	if errors.IsClosed(zw.err) {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	defer errors.Recover(&err)
	defer func() {
		if err == nil {
			zw.err = errorf(errors.Closed, "")
		} else {
			zw.err = err
		}
	}()

	if len(zw.buf) == 0 {
		return nil
	}
	ptr := zw.bwt.Encode(zw.buf)

	var hdr [headerSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(ptr))
	for _, b := range [][]byte{hdr[:], zw.buf} {
		n, err := zw.wr.Write(b)
		zw.OutputOffset += int64(n)
		if err != nil {
			return err
		}
	}
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result of
// a call to NewWriter, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) error {
	if w == nil {
		return errorf(errors.Missing, "nil writer")
	}
	*zw = Writer{
		wr:      w,
		buf:     zw.buf[:0],
		maxSize: zw.maxSize,
		bwt:     zw.bwt,
	}
	return nil
}
