// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package status maps bus and sensor failures to the numeric error codes
// printed by the sampler and used as the process exit status.
//
// The codes follow the convention of the microcontroller SDKs the sampler
// was first written against: zero is success and failures are small
// negative numbers.
package status

import (
	"context"
	"errors"
	"os"
	"strconv"
)

// Code is a numeric error code.
type Code int

const (
	OK               Code = 0
	ErrNullPtr       Code = -1
	ErrNoDevice      Code = -2
	ErrBadParam      Code = -3
	ErrInvalid       Code = -4
	ErrUninitialized Code = -5
	ErrBusy          Code = -6
	ErrBadState      Code = -7
	ErrUnknown       Code = -8
	ErrCommErr       Code = -9
	ErrTimeOut       Code = -10
	ErrNoResponse    Code = -11
	ErrNotSupported  Code = -17
)

var codeNames = map[Code]string{
	OK:               "no error",
	ErrNullPtr:       "null pointer",
	ErrNoDevice:      "no device",
	ErrBadParam:      "bad parameter",
	ErrInvalid:       "invalid",
	ErrUninitialized: "uninitialized",
	ErrBusy:          "busy",
	ErrBadState:      "bad state",
	ErrUnknown:       "unknown",
	ErrCommErr:       "communication error",
	ErrTimeOut:       "timeout",
	ErrNoResponse:    "no response",
	ErrNotSupported:  "not supported",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "code " + strconv.Itoa(int(c))
}

// Kind classifies where a failure happened.
type Kind int

const (
	// InitializationError is returned while bringing up the bus or the
	// sensor. It is fatal.
	InitializationError Kind = iota
	// ReadError is returned by a single sensor read. It is reported and
	// the sample is skipped.
	ReadError
)

func (k Kind) String() string {
	switch k {
	case InitializationError:
		return "initialization"
	case ReadError:
		return "read"
	default:
		return "kind " + strconv.Itoa(int(k))
	}
}

// Error is a failure with an attached code.
type Error struct {
	Kind Kind
	Code Code
	// Op names the failing operation, e.g. "i2c init".
	Op  string
	Err error
}

func (e *Error) Error() string {
	s := e.Op + ": " + e.Code.String()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Init wraps err as an InitializationError. The code is derived from err
// unless it already carries one.
func Init(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: InitializationError, Code: CodeOf(err), Op: op, Err: err}
}

// Read wraps err as a ReadError.
func Read(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ReadError, Code: CodeOf(err), Op: op, Err: err}
}

// CodeOf returns the code describing err.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Code == OK {
			return ErrUnknown
		}
		return e.Code
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrNoDevice
	case errors.Is(err, os.ErrPermission):
		return ErrBadState
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return ErrTimeOut
	}
	return ErrCommErr
}

// ExitStatus returns the process exit status for a fatal err.
//
// The code is returned as is, like a firmware main() returning it; the
// operating system truncates negative values to 8 bits.
func ExitStatus(err error) int {
	return int(CodeOf(err))
}
