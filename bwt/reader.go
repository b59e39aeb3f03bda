// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

type ReaderConfig struct {
	// MaxBlockSize is the largest block that the Reader accepts.
	// If zero, DefaultBlockSize is used.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader reads a block written by Writer and returns the original sequence.
// The whole block is read and inverted on the first call to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd      io.Reader
	err     error
	buf     []byte
	toRead  []byte
	maxSize int
	bwt     Transformer
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	if conf != nil {
		if conf.MaxBlockSize < 0 || conf.MaxBlockSize > 1<<31-1 {
			return nil, errorf(errors.Length, "invalid block size: %d", conf.MaxBlockSize)
		}
		zr.maxSize = conf.MaxBlockSize
	}
	if zr.maxSize == 0 {
		zr.maxSize = DefaultBlockSize
	}
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}
		zr.err = zr.readBlock()
		if zr.err == nil {
			zr.err = io.EOF
		}
	}
}

// readBlock reads the entire block and inverts the transform.
func (zr *Reader) readBlock() (err error) {
	defer errors.Recover(&err)

	var hdr [headerSize]byte
	n, err := io.ReadFull(zr.rd, hdr[:])
	zr.InputOffset += int64(n)
	switch err {
	case nil:
	case io.EOF:
		return nil // An empty stream is an empty block
	case io.ErrUnexpectedEOF:
		return errorf(errors.Corrupted, "truncated header")
	default:
		return err
	}
	ptr := int(binary.BigEndian.Uint32(hdr[:]))

	// Read one byte more than allowed to detect oversized blocks.
	zr.buf = zr.buf[:0]
	lr := io.LimitReader(zr.rd, int64(zr.maxSize)+1)
	for {
		if len(zr.buf) == cap(zr.buf) {
			zr.buf = append(zr.buf, 0)[:len(zr.buf)]
		}
		n, err := lr.Read(zr.buf[len(zr.buf):cap(zr.buf)])
		zr.buf = zr.buf[:len(zr.buf)+n]
		zr.InputOffset += int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if len(zr.buf) > zr.maxSize {
		return errorf(errors.Length, "block exceeds %d bytes", zr.maxSize)
	}
	if len(zr.buf) == 0 {
		return errorf(errors.Corrupted, "header without block")
	}

	if err := zr.bwt.Decode(zr.buf, ptr); err != nil {
		return err
	}
	zr.toRead = zr.buf
	return nil
}

// Close ends the Reader. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == nil || zr.err == io.EOF || errors.IsClosed(zr.err) {
		zr.toRead = nil
		zr.err = errorf(errors.Closed, "")
		return nil
	}
	return zr.err
}

// Reset discards the Reader's state and makes it equivalent to the result of
// a call to NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) error {
	if r == nil {
		return errorf(errors.Missing, "nil reader")
	}
	*zr = Reader{
		rd:      r,
		buf:     zr.buf[:0],
		maxSize: zr.maxSize,
		bwt:     zr.bwt,
	}
	return nil
}
