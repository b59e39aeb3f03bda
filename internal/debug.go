// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug

package internal

// Debug enables expensive invariant checks inside the transforms.
const Debug = true
