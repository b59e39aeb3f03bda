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

const (
	magic      = "BWM1"
	headerSize = 12 // magic, origin, and length
	footerSize = 8  // checksum

	emptyOrigin = 0xffffffff
)

type WriterConfig struct {
	// MaxBlockSize is the largest block that the Writer accepts.
	// If zero, bwt.DefaultBlockSize is used.
	MaxBlockSize int

	// Algorithm selects how the rotations are ranked.
	Algorithm bwt.Algorithm

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer buffers everything written to it as a single block. On Close, the
// block is transformed, recoded, and written as one frame.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr      io.Writer
	err     error
	buf     []byte
	maxSize int
	digest  *xxhash.Digest
	bwt     bwt.Transformer
	mtf     *mtf.Writer
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	zw := &Writer{digest: xxhash.New(), mtf: mtf.NewWriter(nil)}
	if conf != nil {
		if conf.MaxBlockSize < 0 || conf.MaxBlockSize > 1<<31-1 {
			return nil, errorf(errors.Length, "invalid block size: %d", conf.MaxBlockSize)
		}
		zw.maxSize = conf.MaxBlockSize
		zw.bwt.Algorithm = conf.Algorithm
	}
	if alg := zw.bwt.Algorithm; alg != bwt.SAIS && alg != bwt.Compare {
		return nil, errorf(errors.Internal, "unknown algorithm: %v", alg)
	}
	if zw.maxSize == 0 {
		zw.maxSize = bwt.DefaultBlockSize
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
	zw.digest.Write(buf)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close writes the frame. It does not close the underlying io.Writer.
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

	origin := uint32(emptyOrigin)
	if len(zw.buf) > 0 {
		origin = uint32(zw.bwt.Encode(zw.buf))
	}

	var hdr [headerSize]byte
	copy(hdr[:4], magic)
	binary.BigEndian.PutUint32(hdr[4:], origin)
	binary.BigEndian.PutUint32(hdr[8:], uint32(len(zw.buf)))
	if err := zw.write(hdr[:]); err != nil {
		return err
	}

	// The ranks pass through the recoding stage on their way out.
	zw.mtf.Reset(zw.wr)
	n, err := zw.mtf.Write(zw.buf)
	zw.OutputOffset += int64(n)
	if err != nil {
		return err
	}

	var ftr [footerSize]byte
	binary.BigEndian.PutUint64(ftr[:], zw.digest.Sum64())
	return zw.write(ftr[:])
}

func (zw *Writer) write(b []byte) error {
	n, err := zw.wr.Write(b)
	zw.OutputOffset += int64(n)
	return err
}

// Reset discards the Writer's state and makes it equivalent to the result of
// a call to NewWriter, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) error {
	if w == nil {
		return errorf(errors.Missing, "nil writer")
	}
	zw.digest.Reset()
	*zw = Writer{
		wr:      w,
		buf:     zw.buf[:0],
		maxSize: zw.maxSize,
		digest:  zw.digest,
		bwt:     zw.bwt,
		mtf:     zw.mtf,
	}
	return nil
}
