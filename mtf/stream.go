// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"io"

	"github.com/dsnet/blocksort/internal/errors"
)

const chunkSize = 4096

// Writer encodes every byte written to it and writes the ranks to the
// underlying io.Writer. It holds no data between calls to Write.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr    io.Writer
	err   error
	mtf   *Coder
	chunk [chunkSize]byte
}

// NewWriter returns a Writer over the full alphabet.
func NewWriter(w io.Writer) *Writer {
	return &Writer{wr: w, mtf: NewCoder()}
}

func (mw *Writer) Write(buf []byte) (n int, err error) {
	if mw.err != nil {
		return 0, mw.err
	}
	for len(buf) > 0 {
		cnt := len(buf)
		if cnt > chunkSize {
			cnt = chunkSize
		}
		chunk := mw.chunk[:cnt]
		if err := mw.mtf.encode(chunk, buf[:cnt]); err != nil {
			mw.err = err
			return n, err
		}
		wn, err := mw.wr.Write(chunk)
		mw.OutputOffset += int64(wn)
		mw.InputOffset += int64(wn)
		n += wn
		if err != nil {
			mw.err = err
			return n, err
		}
		buf = buf[cnt:]
	}
	return n, nil
}

// Close ends the Writer. It does not close the underlying io.Writer.
func (mw *Writer) Close() error {
	if mw.err == nil || errors.IsClosed(mw.err) {
		mw.err = errorf(errors.Closed, "")
		return nil
	}
	return mw.err
}

// Reset discards the Writer's state and makes it equivalent to the result of
// a call to NewWriter, but writing to w instead.
func (mw *Writer) Reset(w io.Writer) {
	mtf := mw.mtf
	mtf.Reset()
	*mw = Writer{wr: w, mtf: mtf}
}

// Reader decodes every rank read from the underlying io.Reader.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd  io.Reader
	err error
	mtf *Coder
}

// NewReader returns a Reader over the full alphabet.
func NewReader(r io.Reader) *Reader {
	return &Reader{rd: r, mtf: NewCoder()}
}

func (mr *Reader) Read(buf []byte) (int, error) {
	if mr.err != nil {
		return 0, mr.err
	}
	n, err := mr.rd.Read(buf)
	mr.InputOffset += int64(n)
	if derr := mr.mtf.decode(buf[:n], buf[:n]); derr != nil {
		mr.err = derr
		return 0, derr
	}
	mr.OutputOffset += int64(n)
	if err != nil {
		mr.err = err
	}
	return n, err
}

// Close ends the Reader. It does not close the underlying io.Reader.
func (mr *Reader) Close() error {
	if mr.err == nil || mr.err == io.EOF || errors.IsClosed(mr.err) {
		mr.err = errorf(errors.Closed, "")
		return nil
	}
	return mr.err
}

// Reset discards the Reader's state and makes it equivalent to the result of
// a call to NewReader, but reading from r instead.
func (mr *Reader) Reset(r io.Reader) {
	mtf := mr.mtf
	mtf.Reset()
	*mr = Reader{rd: r, mtf: mtf}
}
