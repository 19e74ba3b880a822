// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console reads the averaged temperatures a sampler prints, from the
// host side of its serial console.
//
// The console also carries diagnostics such as "Sensor read error: -9", and
// the first line read after opening the port is often truncated, so Reader
// skips lines that are not a number.
package console

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// Attempts is the number of lines Read looks at before giving up.
const Attempts = 3

// DefaultBaudRate is the console speed of the sampler firmware.
const DefaultBaudRate = 115200

// Reader parses temperatures from a line oriented stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next temperature in °C.
//
// It returns NaN with a nil error when none of the next Attempts lines is a
// number. On an I/O error it returns NaN and the error.
func (r *Reader) Read() (float64, error) {
	for i := 0; i < Attempts; i++ {
		line, err := r.r.ReadString('\n')
		if v, perr := strconv.ParseFloat(strings.TrimSpace(line), 64); perr == nil {
			return v, nil
		}
		if err != nil {
			return math.NaN(), err
		}
	}
	return math.NaN(), nil
}
