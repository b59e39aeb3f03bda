// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import (
	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
)

// Forward transforms seq and recodes the result with move-to-front.
// The returned block holds ranks rather than symbols. An empty seq yields an
// empty block with origin bwt.NoOrigin.
func Forward(seq []byte) (*bwt.Block, error) {
	return forward(new(bwt.Transformer), seq)
}

// Inverse reverses Forward.
func Inverse(b *bwt.Block) ([]byte, error) {
	return inverse(new(bwt.Transformer), b)
}

func forward(t *bwt.Transformer, seq []byte) (*bwt.Block, error) {
	b, err := t.Transform(seq)
	if err != nil {
		return nil, err
	}
	ranks, err := mtf.NewCoder().Encode(b.Data)
	if err != nil {
		return nil, err
	}
	b.Data = ranks
	return &b, nil
}

func inverse(t *bwt.Transformer, b *bwt.Block) ([]byte, error) {
	if b == nil {
		return nil, errorf(errors.Missing, "nil block")
	}
	syms, err := mtf.NewCoder().Decode(b.Data)
	if err != nil {
		return nil, err
	}
	return t.Untransform(&bwt.Block{Data: syms, Origin: b.Origin})
}

func errorf(code int, f string, args ...interface{}) error {
	return errors.New(code, "blocksort", f, args...)
}
