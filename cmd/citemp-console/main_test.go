// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor(t *testing.T) {
	log, hook := test.NewNullLogger()
	in := "3.1\nSensor read error: -9\n22.0\nx\ny\nz\n14.0\n"
	err := monitor(context.Background(), strings.NewReader(in), 3, log)
	require.NoError(t, err)

	var got []float64
	warnings := 0
	for _, e := range hook.AllEntries() {
		switch e.Level {
		case logrus.InfoLevel:
			got = append(got, e.Data["celsius"].(float64))
		case logrus.WarnLevel:
			warnings++
		}
	}
	assert.Equal(t, []float64{3.1, 22.0, 14.0}, got)
	assert.Equal(t, 1, warnings)
}

func TestMonitorEOF(t *testing.T) {
	log, hook := test.NewNullLogger()
	err := monitor(context.Background(), strings.NewReader("20.5\n"), 0, log)
	assert.ErrorIs(t, err, io.EOF)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestMonitorCancelled(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := monitor(ctx, strings.NewReader("20.5\n"), 0, log)
	assert.ErrorIs(t, err, context.Canceled)
}
