// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command blocksort runs the stages of the block-sort front end over streams
// and measures how they prepare data for back-end compressors.
package main

import (
	"fmt"
	"os"

	"github.com/dsnet/blocksort/cmd/blocksort/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
