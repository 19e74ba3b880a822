// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/citemp/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "", c.Bus)
	assert.Equal(t, 100*physic.KiloHertz, c.Frequency())
	assert.Equal(t, "tmp102", c.Model)
	assert.Equal(t, uint16(0), c.Address)
	assert.Equal(t, sampler.DefaultConfig(), c.Sampler())
	assert.Equal(t, ColorAuto, c.Color)
}

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(`
bus: "1"
frequency_hz: 400000
model: sht4x
address: 0x45
sample_size: 5
interval: 1s
color: never
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Bus:         "1",
		FrequencyHz: 400000,
		Model:       "sht4x",
		Address:     0x45,
		SampleSize:  5,
		Interval:    time.Second,
		Color:       ColorNever,
	}, c)
	assert.Equal(t, 400*physic.KiloHertz, c.Frequency())
}

func TestParseOverlay(t *testing.T) {
	c, err := Parse(strings.NewReader("interval: 250ms\n"))
	require.NoError(t, err)
	want := Default()
	want.Interval = 250 * time.Millisecond
	assert.Equal(t, want, c)

	c, err = Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		name string
		yaml string
	}{
		{"unknown key", "samples: 3\n"},
		{"zero samples", "sample_size: 0\n"},
		{"negative interval", "interval: -1s\n"},
		{"bad interval", "interval: soon\n"},
		{"address", "address: 0x80\n"},
		{"frequency", "frequency_hz: 0\n"},
		{"model", "model: \"\"\n"},
		{"color", "color: rainbow\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citemp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: tmp75\nsample_size: 4\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tmp75", c.Model)
	assert.Equal(t, 4, c.SampleSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "model: tmp102")
	assert.Contains(t, s, "sample_size: 3")
	c, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
