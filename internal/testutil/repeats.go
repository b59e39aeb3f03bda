// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// Repeats generates size bytes of data where a large bulk of the content is a
// copy from some distance ago, while the source data itself is mostly random.
// The output is a deterministic function of size and seed.
func Repeats(size, seed int) []byte {
	if size <= 0 {
		return []byte{}
	}

	var b []byte
	r := NewRand(seed)
	pct := func() int { return r.Intn(100) }

	randLen := func() (l int) {
		switch p := pct(); {
		case p < 15: // 4..8
			l = 4 + r.Intn(4)
		case p < 30: // 8..16
			l = 8 + r.Intn(8)
		case p < 45: // 16..32
			l = 16 + r.Intn(16)
		case p < 60: // 32..64
			l = 32 + r.Intn(32)
		case p < 75: // 64..128
			l = 64 + r.Intn(64)
		case p < 90: // 128..256
			l = 128 + r.Intn(128)
		default: // 256..512
			l = 256 + r.Intn(256)
		}
		return l
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			switch p := pct(); {
			case p < 10: // 1..2
				d = 1
			case p < 20: // 2..4
				d = 2 + r.Intn(2)
			case p < 30: // 4..8
				d = 4 + r.Intn(4)
			case p < 40: // 8..16
				d = 8 + r.Intn(8)
			case p < 50: // 16..32
				d = 16 + r.Intn(16)
			case p < 60: // 32..256
				d = 32 + r.Intn(224)
			case p < 75: // 256..4096
				d = 256 + r.Intn(3840)
			default: // 4096..32768
				d = 4096 + r.Intn(28672)
			}
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < size {
		switch p := pct(); {
		case p < 10:
			// Generate random new data.
			writeRand(randLen())
		default:
			// Write a copy from some distance ago.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:size]
}
