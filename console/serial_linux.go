// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package console

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var speeds = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// Config selects the serial port.
type Config struct {
	// Device path, e.g. /dev/ttyUSB0.
	Device string
	// BaudRate defaults to DefaultBaudRate.
	BaudRate int
}

// Port is a serial port in raw 8N1 mode.
type Port struct {
	f   *os.File
	old *unix.Termios
}

// Open opens and configures the serial port. Reads block until at least one
// byte is available.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("console: device path required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	speed, ok := speeds[cfg.BaudRate]
	if !ok {
		return nil, fmt.Errorf("console: unsupported baud rate %d", cfg.BaudRate)
	}
	fd, err := unix.Open(cfg.Device, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("console: open %s: %w", cfg.Device, err)
	}
	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("console: get termios: %w", err)
	}
	t := *old
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF | unix.IXANY
	t.Oflag &^= unix.OPOST
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CSTOPB | unix.CBAUD
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &t); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("console: set termios: %w", err)
	}
	return &Port{f: os.NewFile(uintptr(fd), cfg.Device), old: old}, nil
}

func (p *Port) Read(b []byte) (int, error) {
	return p.f.Read(b)
}

// Close restores the previous terminal settings and closes the port.
func (p *Port) Close() error {
	_ = unix.IoctlSetTermios(int(p.f.Fd()), unix.TCSETS, p.old)
	return p.f.Close()
}

func (p *Port) String() string {
	return p.f.Name()
}
