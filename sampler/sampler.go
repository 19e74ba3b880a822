// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sampler reads a temperature sensor forever in fixed-size batches
// and reports the average of each batch.
//
// A failed read is reported and contributes nothing to the batch sum, but
// it still uses up its slot: the average is always the sum divided by the
// batch size, never by the number of successful reads. A batch where every
// read failed therefore averages to 0.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/citemp/sensor"
	"github.com/GermanBionicSystems/citemp/status"
)

// Config is the sampling policy. It is not modified once a Loop runs.
type Config struct {
	// SampleSize is the number of reads per batch and the divisor of the
	// batch average.
	SampleSize int
	// Interval is the pause after each read, failed or not.
	Interval time.Duration
}

// DefaultConfig returns three reads per batch, 100ms apart.
func DefaultConfig() Config {
	return Config{SampleSize: 3, Interval: 100 * time.Millisecond}
}

// Validate returns an error if c can't drive a Loop.
func (c Config) Validate() error {
	if c.SampleSize < 1 {
		return fmt.Errorf("sampler: sample size must be at least 1, got %d", c.SampleSize)
	}
	if c.Interval < 0 {
		return fmt.Errorf("sampler: negative interval %s", c.Interval)
	}
	return nil
}

// Batch accumulates one group of reads.
type Batch struct {
	size int
	n    int
	ok   int
	sum  float64
}

// NewBatch returns an empty batch of size reads.
func NewBatch(size int) *Batch {
	return &Batch{size: size}
}

// Add records a successful read, in °C.
func (b *Batch) Add(celsius float64) {
	b.sum += celsius
	b.n++
	b.ok++
}

// Skip records a failed read.
func (b *Batch) Skip() {
	b.n++
}

// Done returns true once every slot of the batch was used.
func (b *Batch) Done() bool {
	return b.n >= b.size
}

// Successful returns the number of reads added to the sum.
func (b *Batch) Successful() int {
	return b.ok
}

// Average returns the sum divided by the batch size.
func (b *Batch) Average() float64 {
	return b.sum / float64(b.size)
}

// State is the phase of a Loop.
type State int

const (
	// Sampling means reads are being accumulated.
	Sampling State = iota
	// Reporting means the batch average is being emitted.
	Reporting
)

func (s State) String() string {
	if s == Reporting {
		return "reporting"
	}
	return "sampling"
}

// Loop drives a sensor through consecutive batches. Its fields must be set
// before Run and not changed afterward.
type Loop struct {
	// Driver must already be initialized.
	Driver   sensor.Driver
	Config   Config
	Reporter Reporter
	// Sleep replaces the pause between reads when set. The default waits
	// for Config.Interval or until the context is done.
	Sleep func(time.Duration)

	state State
}

// State returns the phase the loop is in.
func (l *Loop) State() State {
	return l.state
}

// Run samples until ctx is done, which is the only way it returns when the
// loop is correctly set up. It then returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	if err := l.check(); err != nil {
		return err
	}
	for {
		if _, err := l.RunBatch(ctx); err != nil {
			return err
		}
	}
}

// RunBatch performs one batch and reports its average, which is also
// returned. It only fails if ctx is done before the batch completes, in
// which case nothing is reported.
func (l *Loop) RunBatch(ctx context.Context) (float64, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	l.state = Sampling
	b := NewBatch(l.Config.SampleSize)
	for !b.Done() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		t, err := l.Driver.Read()
		if err != nil {
			l.Reporter.ReadError(status.Read("sensor read", err))
			b.Skip()
		} else {
			b.Add(t.Celsius())
		}
		if err := l.wait(ctx); err != nil {
			return 0, err
		}
	}
	l.state = Reporting
	avg := b.Average()
	l.Reporter.Average(avg)
	l.state = Sampling
	return avg, nil
}

func (l *Loop) check() error {
	if l.Driver == nil || l.Reporter == nil {
		return errors.New("sampler: Driver and Reporter are required")
	}
	return l.Config.Validate()
}

func (l *Loop) wait(ctx context.Context) error {
	if l.Sleep != nil {
		l.Sleep(l.Config.Interval)
		return ctx.Err()
	}
	if l.Config.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(l.Config.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
