// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import "github.com/dsnet/blocksort/internal/errors"

// Error is the wrapper type for errors specific to this library.
type Error interface{ BlocksortError() }

var (
	_ Error = errors.Error{}
)

// IsMissing reports whether err is caused by a nil or absent input.
func IsMissing(err error) bool { return errors.IsMissing(err) }

// IsInvalidLength reports whether err is caused by a length mismatch.
func IsInvalidLength(err error) bool { return errors.IsInvalidLength(err) }

// IsOutOfRange reports whether err is caused by an origin or index outside
// of its interval.
func IsOutOfRange(err error) bool { return errors.IsOutOfRange(err) }

// IsMalformed reports whether err is caused by a rank or symbol outside of
// the alphabet.
func IsMalformed(err error) bool { return errors.IsMalformed(err) }

// IsCorrupted reports whether err is caused by a corrupted stream.
func IsCorrupted(err error) bool { return errors.IsCorrupted(err) }

// IsClosed reports whether err is caused by use of a closed Reader or Writer.
func IsClosed(err error) bool { return errors.IsClosed(err) }

// IsInternal reports whether err is caused by a bug in this library.
func IsInternal(err error) bool { return errors.IsInternal(err) }
