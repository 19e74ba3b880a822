// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the settings of the sampler binary.
//
// Settings start from Default, can be overridden by a YAML file, and are
// read-only once the sampler starts:
//
//	bus: "1"
//	frequency_hz: 100000
//	model: tmp102
//	address: 0x48
//	sample_size: 3
//	interval: 100ms
//	color: auto
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GermanBionicSystems/citemp/sampler"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Color modes for the diagnostic lines.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the sampler configuration.
type Config struct {
	// Bus is the I²C bus name or number, "" for the first one.
	Bus string `yaml:"bus"`
	// FrequencyHz is the I²C clock.
	FrequencyHz int64 `yaml:"frequency_hz"`
	// Model is the registered sensor model name or alias.
	Model string `yaml:"model"`
	// Address is the sensor I²C address, 0 for the model's default.
	Address uint16 `yaml:"address"`
	// SampleSize is the number of reads per batch.
	SampleSize int `yaml:"sample_size"`
	// Interval is the pause after each read.
	Interval time.Duration `yaml:"interval"`
	// Color is one of ColorAuto, ColorAlways or ColorNever.
	Color string `yaml:"color"`
}

// Default returns the built-in settings.
func Default() Config {
	s := sampler.DefaultConfig()
	return Config{
		FrequencyHz: int64(100 * physic.KiloHertz / physic.Hertz),
		Model:       "tmp102",
		SampleSize:  s.SampleSize,
		Interval:    s.Interval,
		Color:       ColorAuto,
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return c, c.Validate()
}

// Validate returns an error describing the first invalid setting.
func (c Config) Validate() error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("frequency_hz must be positive, got %d", c.FrequencyHz)
	}
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.Address > 0x7f {
		return fmt.Errorf("address %#x is not a 7 bit I²C address", c.Address)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return c.Sampler().Validate()
}

// Sampler returns the sampling policy.
func (c Config) Sampler() sampler.Config {
	return sampler.Config{SampleSize: c.SampleSize, Interval: c.Interval}
}

// Frequency returns the bus clock.
func (c Config) Frequency() physic.Frequency {
	return physic.Frequency(c.FrequencyHz) * physic.Hertz
}

// String returns the configuration as YAML.
func (c Config) String() string {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err.Error()
	}
	_ = enc.Close()
	return b.String()
}
