// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bus brings up the I²C master the temperature sensor is wired to.
//
// The bus protocol itself is provided by periph.io/x/host; this package only
// sequences its initialization and clock configuration and converts failures
// into status codes.
package bus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/citemp/status"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// DefaultFrequency is the standard-mode I²C clock.
const DefaultFrequency = 100 * physic.KiloHertz

// Handle is a configured I²C master.
type Handle interface {
	// Init brings the bus up. It must succeed before any other call.
	Init() error
	// SetFrequency sets the bus clock.
	SetFrequency(f physic.Frequency) error
	// Bus returns the initialized bus, or nil before Init.
	Bus() i2c.Bus
	Close() error
	String() string
}

// Host is a Handle backed by a periph host driver.
type Host struct {
	// Name selects the bus as understood by i2creg.Open. The empty string
	// selects the first bus found.
	Name string

	// initHost and open default to host.Init and i2creg.Open.
	initHost func() error
	open     func(name string) (i2c.BusCloser, error)

	mu sync.Mutex
	b  i2c.BusCloser
}

// NewHost returns an uninitialized Handle on the named bus.
func NewHost(name string) *Host {
	return &Host{Name: name}
}

// Init loads the host drivers and opens the bus.
func (h *Host) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.b != nil {
		return status.Init("i2c init", &status.Error{Code: status.ErrBadState, Err: errors.New("bus: already initialized")})
	}
	initHost := h.initHost
	if initHost == nil {
		initHost = func() error {
			_, err := host.Init()
			return err
		}
	}
	if err := initHost(); err != nil {
		return status.Init("i2c init", fmt.Errorf("bus: host init: %w", err))
	}
	open := h.open
	if open == nil {
		open = i2creg.Open
	}
	b, err := open(h.Name)
	if err != nil {
		return status.Init("i2c init", &status.Error{Code: status.ErrNoDevice, Err: fmt.Errorf("bus: open %q: %w", h.Name, err)})
	}
	h.b = b
	return nil
}

// SetFrequency sets the bus clock.
func (h *Host) SetFrequency(f physic.Frequency) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.b == nil {
		return &status.Error{Code: status.ErrUninitialized, Op: "i2c set frequency"}
	}
	if f <= 0 {
		return &status.Error{Code: status.ErrBadParam, Op: "i2c set frequency", Err: fmt.Errorf("bus: invalid frequency %s", f)}
	}
	if err := h.b.SetSpeed(f); err != nil {
		return fmt.Errorf("bus: set frequency %s: %w", f, err)
	}
	return nil
}

// Bus implements Handle.
func (h *Host) Bus() i2c.Bus {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.b == nil {
		return nil
	}
	return h.b
}

// Close releases the bus. It is safe to call on an uninitialized Host.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.b == nil {
		return nil
	}
	err := h.b.Close()
	h.b = nil
	return err
}

func (h *Host) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.b != nil {
		return h.b.String()
	}
	if h.Name == "" {
		return "i2c(default)"
	}
	return "i2c(" + h.Name + ")"
}

var _ Handle = &Host{}
