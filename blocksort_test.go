// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/dsnet/blocksort/mtf"
)

func TestForwardInverse(t *testing.T) {
	r := testutil.NewRand(0)
	inputs := [][]byte{
		nil,
		[]byte("A"),
		[]byte("AAAAAA"),
		[]byte("BANANA"),
		[]byte("ABRACADABRA!"),
		testutil.Repeats(1<<14, 1),
	}
	for n := 1; n <= 10000; n *= 3 {
		inputs = append(inputs, r.Symbols(n, 1+r.Intn(256)))
	}

	for _, input := range inputs {
		b, err := Forward(input)
		require.NoError(t, err)
		require.Len(t, b.Data, len(input))

		output, err := Inverse(b)
		require.NoError(t, err)
		assert.Equal(t, string(input), string(output))
	}
}

func TestForwardStages(t *testing.T) {
	b, err := Forward([]byte("ABRACADABRA!"))
	require.NoError(t, err)

	// The ranks are the recoding of the transformed block.
	assert.Equal(t, 3, b.Origin)
	assert.Equal(t, mtf.Encode([]byte("ARD!RCAAAABB")), b.Data)

	b, err = Forward(nil)
	require.NoError(t, err)
	assert.Equal(t, bwt.NoOrigin, b.Origin)
	assert.Empty(t, b.Data)
}

func TestInverseErrors(t *testing.T) {
	_, err := Inverse(nil)
	assert.True(t, IsMissing(err), "got %v", err)

	_, err = Inverse(&bwt.Block{Data: []byte{1, 2, 3}, Origin: 3})
	assert.True(t, IsOutOfRange(err), "got %v", err)

	_, err = Inverse(&bwt.Block{Data: []byte{}, Origin: 0})
	assert.True(t, IsOutOfRange(err), "got %v", err)

	var e Error
	assert.ErrorAs(t, err, &e)
}

func compress(t *testing.T, input []byte, conf *WriterConfig) []byte {
	t.Helper()
	var bb bytes.Buffer
	zw, err := NewWriter(&bb, conf)
	require.NoError(t, err)
	_, err = zw.Write(input)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zw.Close())
	assert.Equal(t, int64(len(input)), zw.InputOffset)
	assert.Equal(t, int64(bb.Len()), zw.OutputOffset)
	return bb.Bytes()
}

func decompress(input []byte, conf *ReaderConfig) ([]byte, error) {
	zr, err := NewReader(bytes.NewReader(input), conf)
	if err != nil {
		return nil, err
	}
	output, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return output, zr.Close()
}

func TestFrameRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("x"),
		[]byte("Hello, world!"),
		bytes.Repeat([]byte("ab"), 500),
		testutil.Repeats(1<<16, 5),
	}
	for _, alg := range []bwt.Algorithm{bwt.SAIS, bwt.Compare} {
		for _, input := range inputs {
			if alg == bwt.Compare && len(input) > 1000 {
				continue
			}
			frame := compress(t, input, &WriterConfig{Algorithm: alg})
			require.Len(t, frame, headerSize+len(input)+footerSize)

			output, err := decompress(frame, nil)
			require.NoError(t, err)
			assert.Equal(t, string(input), string(output))
		}
	}
}

func TestFrameFormat(t *testing.T) {
	frame := compress(t, []byte("BANANA"), nil)

	want := []byte("BWM1\x00\x00\x00\x03\x00\x00\x00\x06")
	want = append(want, mtf.Encode([]byte("NNBAAA"))...)
	want = binary.BigEndian.AppendUint64(want, xxhash.Sum64String("BANANA"))
	assert.Equal(t, want, frame)

	empty := compress(t, nil, nil)
	want = []byte("BWM1\xff\xff\xff\xff\x00\x00\x00\x00")
	want = binary.BigEndian.AppendUint64(want, xxhash.Sum64(nil))
	assert.Equal(t, want, empty)
}

func TestFrameErrors(t *testing.T) {
	frame := compress(t, []byte("ABRACADABRA!"), nil)
	mutate := func(f func([]byte) []byte) []byte {
		return f(append([]byte(nil), frame...))
	}

	var vectors = []struct {
		desc  string
		input []byte
		conf  *ReaderConfig
		check func(error) bool
	}{{
		desc:  "empty stream",
		input: nil,
		check: IsCorrupted,
	}, {
		desc:  "truncated header",
		input: frame[:7],
		check: IsCorrupted,
	}, {
		desc:  "bad magic",
		input: mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		check: IsCorrupted,
	}, {
		desc:  "origin out of range",
		input: mutate(func(b []byte) []byte { b[7] = 12; return b }),
		check: IsOutOfRange,
	}, {
		desc:  "declared length too long",
		input: mutate(func(b []byte) []byte { b[11] = 100; return b }),
		check: IsInvalidLength,
	}, {
		desc:  "block too large",
		input: frame,
		conf:  &ReaderConfig{MaxBlockSize: 11},
		check: IsInvalidLength,
	}, {
		desc:  "flipped rank",
		input: mutate(func(b []byte) []byte { b[headerSize+2] ^= 1; return b }),
		check: IsCorrupted,
	}, {
		desc:  "flipped checksum",
		input: mutate(func(b []byte) []byte { b[len(b)-1] ^= 1; return b }),
		check: IsCorrupted,
	}, {
		desc:  "truncated checksum",
		input: frame[:len(frame)-3],
		check: IsCorrupted,
	}, {
		desc:  "trailing data",
		input: append(append([]byte(nil), frame...), 0),
		check: IsInvalidLength,
	}}

	for _, v := range vectors {
		_, err := decompress(v.input, v.conf)
		assert.True(t, v.check(err), "%s: got %v", v.desc, err)
	}
}

func TestFrameIOErrors(t *testing.T) {
	errBuggy := io.ErrShortWrite
	input := testutil.Repeats(4096, 2)

	for _, n := range []int64{0, 5, headerSize + 100, headerSize + 4096 + 3} {
		bw := &testutil.BuggyWriter{W: io.Discard, N: n, Err: errBuggy}
		zw, err := NewWriter(bw, nil)
		require.NoError(t, err)
		_, err = zw.Write(input)
		require.NoError(t, err)
		assert.Equal(t, errBuggy, zw.Close(), "limit %d", n)
	}

	frame := compress(t, input, nil)
	for _, n := range []int64{0, 5, headerSize + 100, int64(len(frame)) - 1} {
		br := &testutil.BuggyReader{R: bytes.NewReader(frame), N: n, Err: errBuggy}
		zr, err := NewReader(br, nil)
		require.NoError(t, err)
		_, err = io.ReadAll(zr)
		assert.Equal(t, errBuggy, err, "limit %d", n)
	}
}

func TestWriterErrors(t *testing.T) {
	_, err := NewWriter(nil, nil)
	assert.True(t, IsMissing(err))

	_, err = NewWriter(io.Discard, &WriterConfig{MaxBlockSize: -1})
	assert.True(t, IsInvalidLength(err))

	_, err = NewWriter(io.Discard, &WriterConfig{Algorithm: bwt.Algorithm(5)})
	assert.True(t, IsInternal(err))

	zw, err := NewWriter(io.Discard, &WriterConfig{MaxBlockSize: 3})
	require.NoError(t, err)
	_, err = zw.Write([]byte("abcd"))
	assert.True(t, IsInvalidLength(err))
	assert.True(t, IsInvalidLength(zw.Close()))

	zw, err = NewWriter(io.Discard, nil)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	_, err = zw.Write([]byte("a"))
	assert.True(t, IsClosed(err))

	_, err = NewReader(nil, nil)
	assert.True(t, IsMissing(err))
}

func TestReset(t *testing.T) {
	var b1, b2 bytes.Buffer
	zw, err := NewWriter(&b1, nil)
	require.NoError(t, err)
	zw.Write([]byte("first block"))
	require.NoError(t, zw.Close())
	require.NoError(t, zw.Reset(&b2))
	zw.Write([]byte("second block"))
	require.NoError(t, zw.Close())

	zr, err := NewReader(&b1, nil)
	require.NoError(t, err)
	got1, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.NoError(t, zr.Reset(&b2))
	got2, err := io.ReadAll(zr)
	require.NoError(t, err)

	assert.Equal(t, "first block", string(got1))
	assert.Equal(t, "second block", string(got2))
}
