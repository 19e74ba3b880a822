// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GermanBionicSystems/citemp/bus"
	"github.com/GermanBionicSystems/citemp/sensor"
	"github.com/GermanBionicSystems/citemp/status"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Setup is everything Start needs.
type Setup struct {
	Bus       bus.Handle
	Frequency physic.Frequency
	Driver    sensor.Driver
	Address   uint16
	Config    Config
	// Out receives the startup failure lines. It is also the destination
	// of the default Reporter.
	Out io.Writer
	// Reporter defaults to a TextReporter on Out.
	Reporter Reporter
	// Sleep is passed to the Loop.
	Sleep func(time.Duration)
	// Log defaults to the logrus standard logger.
	Log logrus.FieldLogger
}

// Start brings up the bus and the sensor, then samples until ctx is done.
//
// It returns the process exit status: the error code of a failed bus or
// sensor initialization, or 0 once ctx is done. A bus failure is fatal
// before any read is attempted.
func Start(ctx context.Context, s Setup) int {
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if s.Bus == nil || s.Driver == nil || s.Out == nil {
		log.Error("sampler: Bus, Driver and Out are required")
		return int(status.ErrNullPtr)
	}
	if err := s.Config.Validate(); err != nil {
		log.Error(err)
		return int(status.ErrBadParam)
	}

	if err := s.Bus.Init(); err != nil {
		log.WithError(err).Debug("bus init failed")
		_, _ = fmt.Fprintf(s.Out, "I2C master configure failed with error %d\n", int(status.CodeOf(err)))
		return status.ExitStatus(err)
	}
	defer func() {
		if err := s.Bus.Close(); err != nil {
			log.WithError(err).Warn("closing bus")
		}
	}()
	log.WithFields(logrus.Fields{"bus": s.Bus.String(), "frequency": s.Frequency.String()}).Debug("bus up")

	if err := s.Bus.SetFrequency(s.Frequency); err != nil {
		// The bus keeps its previous clock.
		log.WithError(err).Warn("setting bus frequency")
	}

	if err := s.Driver.Init(s.Bus.Bus(), s.Address); err != nil {
		log.WithError(err).Debug("sensor init failed")
		_, _ = fmt.Fprintf(s.Out, "Sensor init failed with error %d\n", int(status.CodeOf(err)))
		return status.ExitStatus(status.Init("sensor init", err))
	}
	if r, ok := s.Driver.(conn.Resource); ok {
		defer func() {
			if err := r.Halt(); err != nil {
				log.WithError(err).Warn("halting sensor")
			}
		}()
	}
	log.WithFields(logrus.Fields{"sensor": s.Driver.String(), "address": fmt.Sprintf("%#x", s.Address)}).Debug("sensor up")

	rep := s.Reporter
	if rep == nil {
		rep = NewTextReporter(s.Out)
	}
	l := &Loop{Driver: s.Driver, Config: s.Config, Reporter: rep, Sleep: s.Sleep}
	if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Error(err)
		return int(status.ErrUnknown)
	}
	return 0
}
