// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package console

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	r := NewReader(strings.NewReader("23.4\n-1.5\r\n0.0\n"))
	for _, want := range []float64{23.4, -1.5, 0} {
		v, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	v, err := r.Read()
	assert.True(t, math.IsNaN(v))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadSkipsNoise(t *testing.T) {
	// A truncated first line and a diagnostic before the value.
	r := NewReader(strings.NewReader(".4\x00\nSensor read error: -9\n14.0\n"))
	v, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)
}

func TestReadGivesUp(t *testing.T) {
	r := NewReader(strings.NewReader("Sensor read error: -9\nSensor read error: -9\nSensor read error: -9\n22.0\n"))
	v, err := r.Read()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	// The next call resumes after the lines already consumed.
	v, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, 22.0, v)
}

func TestReadUnterminated(t *testing.T) {
	r := NewReader(strings.NewReader("21.5"))
	v, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 21.5, v)
}

type failingReader struct{}

var errUnplugged = errors.New("unplugged")

func (failingReader) Read([]byte) (int, error) { return 0, errUnplugged }

func TestReadError(t *testing.T) {
	v, err := NewReader(failingReader{}).Read()
	assert.True(t, math.IsNaN(v))
	assert.ErrorIs(t, err, errUnplugged)
}
