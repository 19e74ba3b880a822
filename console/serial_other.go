// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package console

import (
	"errors"
	"io"
)

// Config selects the serial port.
type Config struct {
	Device   string
	BaudRate int
}

// Port is a serial port. It is only implemented on linux.
type Port struct {
	io.ReadCloser
}

// Open always fails on this platform.
func Open(cfg Config) (*Port, error) {
	return nil, errors.New("console: serial ports are only supported on linux")
}
