// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sampler

import (
	"fmt"
	"io"

	"github.com/GermanBionicSystems/citemp/status"
)

// Reporter receives the output of a Loop.
type Reporter interface {
	// Average is called once per batch with the average in °C.
	Average(celsius float64)
	// ReadError is called for each failed read.
	ReadError(err error)
}

// TextReporter writes one line per event:
//
//	23.4
//	Sensor read error: -9
type TextReporter struct {
	w io.Writer
	// Tint, when non-empty, is an ANSI SGR sequence wrapped around read
	// error lines, e.g. "\033[31m".
	Tint string
}

// NewTextReporter returns a TextReporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Average implements Reporter. The value always has one decimal.
func (r *TextReporter) Average(celsius float64) {
	_, _ = fmt.Fprintf(r.w, "%.1f\n", celsius)
}

// ReadError implements Reporter.
func (r *TextReporter) ReadError(err error) {
	if r.Tint != "" {
		_, _ = fmt.Fprintf(r.w, "%sSensor read error: %d\033[0m\n", r.Tint, int(status.CodeOf(err)))
		return
	}
	_, _ = fmt.Fprintf(r.w, "Sensor read error: %d\n", int(status.CodeOf(err)))
}

var _ Reporter = &TextReporter{}
