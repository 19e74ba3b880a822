// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// citemp samples an I²C temperature sensor forever and prints the average of
// each batch of reads, one per line with one decimal.
//
// If the I²C bus can't be brought up it prints
//
//	I2C master configure failed with error <code>
//
// and exits with that code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/citemp/bus"
	"github.com/GermanBionicSystems/citemp/config"
	"github.com/GermanBionicSystems/citemp/sampler"
	"github.com/GermanBionicSystems/citemp/sensor"
	_ "github.com/GermanBionicSystems/citemp/sht4x"
	_ "github.com/GermanBionicSystems/citemp/tmp102"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type options struct {
	Config   string        `short:"c" long:"config" description:"YAML configuration file" value-name:"FILE"`
	Bus      string        `short:"b" long:"bus" description:"I²C bus name or number (default: first bus)"`
	Model    string        `short:"m" long:"model" description:"sensor model or alias (default: tmp102)"`
	Addr     string        `short:"a" long:"addr" description:"sensor I²C address, e.g. 0x48 (default: model default)"`
	Samples  int           `short:"n" long:"samples" description:"reads per batch (default: 3)"`
	Interval time.Duration `short:"i" long:"interval" description:"pause after each read (default: 100ms)"`
	Color    string        `long:"color" choice:"auto" choice:"always" choice:"never" description:"tint read errors"`
	Verbose  bool          `short:"v" long:"verbose" description:"log startup details to stderr"`
	List     bool          `long:"list" description:"list the sensor models and exit"`
}

// env is the process environment run works against.
type env struct {
	stdout io.Writer
	stderr io.Writer
	// tty is true when stdout is a terminal.
	tty    bool
	newBus func(name string) bus.Handle
}

const red = "\033[31m"

func run(ctx context.Context, args []string, e env) int {
	var opts options
	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := p.ParseArgs(args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(e.stdout, err)
			return 0
		}
		fmt.Fprintf(e.stderr, "citemp: %s\n", err)
		return 1
	}

	log := logrus.New()
	log.SetOutput(e.stderr)
	log.SetLevel(logrus.WarnLevel)
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if opts.List {
		for _, r := range sensor.All() {
			fmt.Fprintf(e.stdout, "%-8s %#x %v\n", r.Name, r.DefaultAddress, r.Aliases)
		}
		return 0
	}

	cfg, err := resolve(&opts)
	if err != nil {
		log.Error(err)
		return 1
	}
	ref, err := sensor.Lookup(cfg.Model)
	if err != nil {
		log.Error(err)
		return 1
	}
	if cfg.Address == 0 {
		cfg.Address = ref.DefaultAddress
	}
	log.Debugf("configuration:\n%s", cfg)

	rep := sampler.NewTextReporter(e.stdout)
	if cfg.Color == config.ColorAlways || (cfg.Color == config.ColorAuto && e.tty) {
		rep.Tint = red
	}
	return sampler.Start(ctx, sampler.Setup{
		Bus:       e.newBus(cfg.Bus),
		Frequency: cfg.Frequency(),
		Driver:    ref.Open(),
		Address:   cfg.Address,
		Config:    cfg.Sampler(),
		Out:       e.stdout,
		Reporter:  rep,
		Log:       log,
	})
}

// resolve layers the flags over the configuration file over the defaults.
func resolve(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return cfg, err
		}
	}
	if opts.Bus != "" {
		cfg.Bus = opts.Bus
	}
	if opts.Model != "" {
		cfg.Model = opts.Model
		// The address of the file's model doesn't apply to another model.
		cfg.Address = 0
	}
	if opts.Addr != "" {
		a, err := strconv.ParseUint(opts.Addr, 0, 16)
		if err != nil {
			return cfg, fmt.Errorf("invalid address %q: %w", opts.Addr, err)
		}
		cfg.Address = uint16(a)
	}
	if opts.Samples != 0 {
		cfg.SampleSize = opts.Samples
	}
	if opts.Interval != 0 {
		cfg.Interval = opts.Interval
	}
	if opts.Color != "" {
		cfg.Color = opts.Color
	}
	return cfg, cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], env{
		stdout: colorable.NewColorableStdout(),
		stderr: colorable.NewColorableStderr(),
		tty:    isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		newBus: func(name string) bus.Handle { return bus.NewHost(name) },
	})
	stop()
	os.Exit(code)
}
