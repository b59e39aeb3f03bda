// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	var vectors = []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, v := range vectors {
		got, err := ParseLevel(v.input)
		require.NoError(t, err, v.input)
		assert.Equal(t, v.want, got, v.input)
	}

	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "info", "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("block transformed", "origin", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "block transformed", rec["msg"])
	assert.InDelta(t, 3, rec["origin"], 0)
}

func TestNewText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "text")
	require.NoError(t, err)

	logger.Debug("reading block", "size", "1.0 kB")
	assert.Contains(t, buf.String(), "msg=\"reading block\"")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = New(&bytes.Buffer{}, "verbose", "text")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
