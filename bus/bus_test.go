// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bus

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/GermanBionicSystems/citemp/status"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// speedBus records the last speed set on it.
type speedBus struct {
	i2ctest.Playback
	speed  physic.Frequency
	closed bool
}

func (s *speedBus) SetSpeed(f physic.Frequency) error {
	s.speed = f
	return nil
}

func (s *speedBus) Close() error {
	s.closed = true
	return s.Playback.Close()
}

func newTestHost(b i2c.BusCloser, initErr, openErr error) *Host {
	h := NewHost("1")
	h.initHost = func() error { return initErr }
	h.open = func(name string) (i2c.BusCloser, error) {
		if openErr != nil {
			return nil, openErr
		}
		return b, nil
	}
	return h
}

func TestInit(t *testing.T) {
	sb := &speedBus{}
	h := newTestHost(sb, nil, nil)
	if h.Bus() != nil {
		t.Error("Bus() must be nil before Init")
	}
	if err := h.Init(); err != nil {
		t.Fatal(err)
	}
	if h.Bus() == nil {
		t.Fatal("Bus() is nil after Init")
	}
	if err := h.SetFrequency(DefaultFrequency); err != nil {
		t.Fatal(err)
	}
	if sb.speed != 100*physic.KiloHertz {
		t.Errorf("speed=%s", sb.speed)
	}
	if err := h.Init(); status.CodeOf(err) != status.ErrBadState {
		t.Errorf("second Init: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Error(err)
	}
	if !sb.closed {
		t.Error("bus not closed")
	}
	if err := h.Close(); err != nil {
		t.Error(err)
	}
}

func TestInitFailures(t *testing.T) {
	var tests = []struct {
		name    string
		initErr error
		openErr error
		want    status.Code
	}{
		{"host", errors.New("no drivers"), nil, status.ErrCommErr},
		{"open", nil, fs.ErrNotExist, status.ErrNoDevice},
		{"open other", nil, errors.New("busy"), status.ErrNoDevice},
	}
	for _, test := range tests {
		h := newTestHost(&speedBus{}, test.initErr, test.openErr)
		err := h.Init()
		var e *status.Error
		if !errors.As(err, &e) {
			t.Errorf("%s: expected *status.Error, got %v", test.name, err)
			continue
		}
		if e.Kind != status.InitializationError {
			t.Errorf("%s: kind=%s", test.name, e.Kind)
		}
		if c := status.CodeOf(err); c != test.want {
			t.Errorf("%s: code=%d want %d", test.name, c, test.want)
		}
		if h.Bus() != nil {
			t.Errorf("%s: Bus() must stay nil", test.name)
		}
	}
}

func TestSetFrequency(t *testing.T) {
	h := newTestHost(&speedBus{}, nil, nil)
	if err := h.SetFrequency(DefaultFrequency); status.CodeOf(err) != status.ErrUninitialized {
		t.Errorf("before Init: %v", err)
	}
	if err := h.Init(); err != nil {
		t.Fatal(err)
	}
	if err := h.SetFrequency(0); status.CodeOf(err) != status.ErrBadParam {
		t.Errorf("zero frequency: %v", err)
	}
}

func TestString(t *testing.T) {
	if s := NewHost("").String(); s != "i2c(default)" {
		t.Error(s)
	}
	if s := NewHost("1").String(); s != "i2c(1)" {
		t.Error(s)
	}
}
