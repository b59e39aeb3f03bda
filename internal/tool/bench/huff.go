// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/huff0"
)

// The huff0 package only codes single blocks, so the stream is a sequence of
// chunks, each one of:
//
//	kind    byte     chunkRaw, chunkRLE, or chunkHuff
//	rawLen  uvarint  number of decoded bytes
//	compLen uvarint  number of payload bytes (chunkHuff only)
//	payload          rawLen bytes, 1 byte, or compLen bytes
const (
	chunkRaw = iota
	chunkRLE
	chunkHuff
)

var errHuffCorrupt = errors.New("huff0: corrupted stream")

type huffWriter struct {
	wr    io.Writer
	buf   []byte
	s     huff0.Scratch
	err   error
	close bool
}

func newHuffWriter(w io.Writer) *huffWriter {
	hw := &huffWriter{wr: w}
	hw.s.Reuse = huff0.ReusePolicyNone // Every chunk carries its own table
	return hw
}

func (hw *huffWriter) Write(buf []byte) (int, error) {
	if hw.err != nil {
		return 0, hw.err
	}
	hw.buf = append(hw.buf, buf...)
	for len(hw.buf) >= huff0.BlockSizeMax {
		if err := hw.writeChunk(hw.buf[:huff0.BlockSizeMax]); err != nil {
			return 0, err
		}
		hw.buf = append(hw.buf[:0], hw.buf[huff0.BlockSizeMax:]...)
	}
	return len(buf), nil
}

func (hw *huffWriter) writeChunk(chunk []byte) error {
	var hdr [1 + 2*binary.MaxVarintLen64]byte
	var payload []byte
	n := 1 + binary.PutUvarint(hdr[1:], uint64(len(chunk)))

	out, _, err := huff0.Compress1X(chunk, &hw.s)
	switch err {
	case nil:
		hdr[0] = chunkHuff
		n += binary.PutUvarint(hdr[n:], uint64(len(out)))
		payload = out
	case huff0.ErrUseRLE:
		hdr[0] = chunkRLE
		payload = chunk[:1]
	case huff0.ErrIncompressible:
		hdr[0] = chunkRaw
		payload = chunk
	default:
		hw.err = err
		return err
	}
	for _, b := range [][]byte{hdr[:n], payload} {
		if _, err := hw.wr.Write(b); err != nil {
			hw.err = err
			return err
		}
	}
	return nil
}

func (hw *huffWriter) Close() error {
	if hw.close {
		return hw.err
	}
	hw.close = true
	if hw.err == nil && len(hw.buf) > 0 {
		hw.writeChunk(hw.buf)
		hw.buf = hw.buf[:0]
	}
	return hw.err
}

type huffReader struct {
	rd     *bufio.Reader
	toRead []byte
	out    []byte
	err    error
}

func newHuffReader(r io.Reader) *huffReader {
	return &huffReader{rd: bufio.NewReader(r)}
}

func (hr *huffReader) Read(buf []byte) (int, error) {
	for len(hr.toRead) == 0 {
		if hr.err != nil {
			return 0, hr.err
		}
		hr.err = hr.readChunk()
	}
	n := copy(buf, hr.toRead)
	hr.toRead = hr.toRead[n:]
	return n, nil
}

func (hr *huffReader) readChunk() error {
	kind, err := hr.rd.ReadByte()
	if err != nil {
		return err // io.EOF at a chunk boundary ends the stream
	}
	rawLen, err := binary.ReadUvarint(hr.rd)
	if err != nil || rawLen == 0 || rawLen > huff0.BlockSizeMax {
		return errHuffCorrupt
	}

	switch kind {
	case chunkRaw:
		hr.out = append(hr.out[:0], make([]byte, rawLen)...)
		if _, err := io.ReadFull(hr.rd, hr.out); err != nil {
			return errHuffCorrupt
		}
	case chunkRLE:
		c, err := hr.rd.ReadByte()
		if err != nil {
			return errHuffCorrupt
		}
		hr.out = append(hr.out[:0], bytes.Repeat([]byte{c}, int(rawLen))...)
	case chunkHuff:
		compLen, err := binary.ReadUvarint(hr.rd)
		if err != nil || compLen > 2*huff0.BlockSizeMax {
			return errHuffCorrupt
		}
		in := make([]byte, compLen)
		if _, err := io.ReadFull(hr.rd, in); err != nil {
			return errHuffCorrupt
		}
		s, remain, err := huff0.ReadTable(in, nil)
		if err != nil {
			return err
		}
		hr.out, err = s.Decoder().Decompress1X(make([]byte, 0, rawLen), remain)
		if err != nil {
			return err
		}
		if uint64(len(hr.out)) != rawLen {
			return errHuffCorrupt
		}
	default:
		return errHuffCorrupt
	}
	hr.toRead = hr.out
	return nil
}

func (hr *huffReader) Close() error {
	if hr.err == nil || hr.err == io.EOF {
		return nil
	}
	return hr.err
}
