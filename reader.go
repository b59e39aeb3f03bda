// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
)

type ReaderConfig struct {
	// MaxBlockSize is the largest block that the Reader accepts.
	// If zero, bwt.DefaultBlockSize is used.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Reader reads a frame written by Writer and returns the original data.
// The whole frame is read and verified on the first call to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd      io.Reader
	err     error
	buf     []byte
	toRead  []byte
	maxSize int
	bwt     bwt.Transformer
	mtf     *mtf.Reader
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := &Reader{mtf: mtf.NewReader(nil)}
	if conf != nil {
		if conf.MaxBlockSize < 0 || conf.MaxBlockSize > 1<<31-1 {
			return nil, errorf(errors.Length, "invalid block size: %d", conf.MaxBlockSize)
		}
		zr.maxSize = conf.MaxBlockSize
	}
	if zr.maxSize == 0 {
		zr.maxSize = bwt.DefaultBlockSize
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
		zr.err = zr.readFrame()
		if zr.err == nil {
			zr.err = io.EOF
		}
	}
}

// readFrame reads the entire frame, inverts the pipeline, and verifies the
// checksum. Data is only made available once the checksum matches.
func (zr *Reader) readFrame() (err error) {
	defer errors.Recover(&err)

	var hdr [headerSize]byte
	if err := zr.readFull(hdr[:], "header"); err != nil {
		return err
	}
	if string(hdr[:4]) != magic {
		return errorf(errors.Corrupted, "invalid magic: %q", hdr[:4])
	}
	origin := binary.BigEndian.Uint32(hdr[4:])
	size := binary.BigEndian.Uint32(hdr[8:])
	if int64(size) > int64(zr.maxSize) {
		return errorf(errors.Length, "block of %d bytes exceeds %d bytes", size, zr.maxSize)
	}

	// The ranks are recoded back into symbols as they are read.
	if cap(zr.buf) < int(size) {
		zr.buf = make([]byte, size)
	}
	zr.buf = zr.buf[:size]
	zr.mtf.Reset(zr.rd)
	n, err := io.ReadFull(zr.mtf, zr.buf)
	zr.InputOffset += int64(n)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return errorf(errors.Length, "declared %d bytes, found %d", size, n)
	default:
		return err
	}

	ptr := int(origin)
	if origin == emptyOrigin {
		ptr = bwt.NoOrigin
	}
	if err := zr.bwt.Decode(zr.buf, ptr); err != nil {
		return err
	}

	var ftr [footerSize]byte
	if err := zr.readFull(ftr[:], "checksum"); err != nil {
		return err
	}
	if want, got := binary.BigEndian.Uint64(ftr[:]), xxhash.Sum64(zr.buf); want != got {
		return errorf(errors.Corrupted, "checksum mismatch: got %016x, want %016x", got, want)
	}

	var extra [1]byte
	if n, _ := io.ReadFull(zr.rd, extra[:]); n > 0 {
		zr.InputOffset += int64(n)
		return errorf(errors.Length, "trailing data after frame")
	}

	zr.toRead = zr.buf
	return nil
}

func (zr *Reader) readFull(b []byte, what string) error {
	n, err := io.ReadFull(zr.rd, b)
	zr.InputOffset += int64(n)
	switch err {
	case nil:
		return nil
	case io.EOF, io.ErrUnexpectedEOF:
		return errorf(errors.Corrupted, "truncated %s", what)
	default:
		return err
	}
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
		mtf:     zr.mtf,
	}
	return nil
}
