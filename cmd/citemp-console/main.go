// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// citemp-console reads the temperatures a citemp sampler prints on its serial
// console and logs them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/GermanBionicSystems/citemp/console"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type options struct {
	Device string `short:"d" long:"device" required:"true" description:"serial port, e.g. /dev/ttyUSB0"`
	Baud   int    `short:"b" long:"baud" default:"115200" description:"baud rate"`
	Count  int    `short:"n" long:"count" description:"stop after this many temperatures, 0 for no limit"`
}

// monitor logs count temperatures read from r, or until r fails or ctx is
// done when count is 0.
func monitor(ctx context.Context, r io.Reader, count int, log logrus.FieldLogger) error {
	cr := console.NewReader(r)
	for n := 0; count == 0 || n < count; {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := cr.Read()
		if err != nil {
			return err
		}
		if math.IsNaN(v) {
			log.Warn("no temperature in the last lines")
			continue
		}
		log.WithField("celsius", v).Info("temperature")
		n++
	}
	return nil
}

func mainImpl() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	p, err := console.Open(console.Config{Device: opts.Device, BaudRate: opts.Baud})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Unblocks the pending read.
		<-ctx.Done()
		p.Close()
	}()
	err = monitor(ctx, p, opts.Count, logrus.StandardLogger())
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "citemp-console: %s.\n", err)
		os.Exit(1)
	}
}
