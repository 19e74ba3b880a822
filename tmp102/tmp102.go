// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/citemp/sensor"
	"github.com/GermanBionicSystems/citemp/status"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

type ConversionRate byte

type AlertMode byte

const (
	// Conversion (sample) Rates. The device default is 4 readings/second.
	RateQuarterHertz ConversionRate = iota
	RateOneHertz
	RateFourHertz
	RateEightHertz

	// ModeComparator sets the device to operate in Comparator mode.
	// Refer to section 6.4.5.1 of the TMP102 datasheet.
	ModeComparator AlertMode = 0
	// ModeInterrupt sets the device to operate in Interrupt mode.
	ModeInterrupt AlertMode = 1

	// DefaultAddress is the address with ADD0 tied to ground.
	DefaultAddress uint16 = 0x48

	regTemperature   byte = 0
	regConfiguration byte = 1

	bitShutdown       = 8
	bitThermostatMode = 9
	posConversionRate = 6

	resolution physic.Temperature = 62_500 * physic.MicroKelvin

	// The minimum temperature in StandardMode the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 40*physic.Kelvin
	// The maximum temperature in StandardMode the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 125*physic.Kelvin
)

func init() {
	sensor.MustRegister(sensor.Ref{
		Name:           "tmp102",
		Aliases:        []string{"tmp112", "tmp75"},
		DefaultAddress: DefaultAddress,
		Open:           func() sensor.Driver { return New(nil) },
	})
}

// Opts represents configurable options for the TMP102.
type Opts struct {
	SampleRate   ConversionRate
	AlertSetting AlertMode
}

// DefaultOpts matches the power-on configuration of the part.
var DefaultOpts = Opts{SampleRate: RateFourHertz, AlertSetting: ModeComparator}

// Dev represents a TMP102 sensor.
type Dev struct {
	mu   sync.Mutex
	d    *i2c.Dev
	opts Opts
}

// New returns an unattached driver. Call Init to bind it to a bus. If opts
// is nil, DefaultOpts is used.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{opts: *opts}
}

// Init implements sensor.Driver.
//
// It takes the device out of shutdown and programs the conversion rate and
// thermostat mode, leaving the other configuration bits untouched.
func (dev *Dev) Init(b i2c.Bus, addr uint16) error {
	if b == nil {
		return &status.Error{Code: status.ErrNullPtr, Op: "tmp102 init", Err: errors.New("tmp102: nil bus")}
	}
	if dev.opts.SampleRate > RateEightHertz {
		return &status.Error{Code: status.ErrBadParam, Op: "tmp102 init", Err: fmt.Errorf("tmp102: invalid sample rate %d", dev.opts.SampleRate)}
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.d = &i2c.Dev{Bus: b, Addr: addr}

	config, err := dev.readConfiguration()
	if err != nil {
		dev.d = nil
		return err
	}
	config &^= 1<<bitShutdown | 1<<bitThermostatMode | 0x03<<posConversionRate
	config |= uint16(dev.opts.AlertSetting&1) << bitThermostatMode
	config |= uint16(dev.opts.SampleRate) << posConversionRate
	if err = dev.writeConfiguration(config); err != nil {
		dev.d = nil
	}
	return err
}

// Read implements sensor.Driver.
func (dev *Dev) Read() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d == nil {
		return MinimumTemperature, &status.Error{Code: status.ErrUninitialized, Op: "tmp102 read"}
	}
	r := make([]byte, 2)
	if err := dev.d.Tx([]byte{regTemperature}, r); err != nil {
		return MinimumTemperature, fmt.Errorf("tmp102: error reading temperature %w", err)
	}
	return countToTemperature(r), nil
}

// Sense reads the temperature into env. Humidity and pressure are left
// untouched.
func (dev *Dev) Sense(env *physic.Env) error {
	t, err := dev.Read()
	if err == nil {
		env.Temperature = t
	}
	return err
}

// Precision returns the sensor's precision, or minimum value between steps the
// device can make. The specified precision is 0.0625 degrees Celsius. Note
// that the accuracy of the device is +/- 0.5 degrees Celsius.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = resolution
	env.Pressure = 0
	env.Humidity = 0
}

// Halt puts the device in shutdown mode. Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d == nil {
		return nil
	}
	config, err := dev.readConfiguration()
	if err != nil {
		return err
	}
	if config&(1<<bitShutdown) != 0 {
		return nil
	}
	return dev.writeConfiguration(config | 1<<bitShutdown)
}

func (dev *Dev) String() string {
	if dev.d == nil {
		return "tmp102"
	}
	return fmt.Sprintf("tmp102: %s", dev.d.String())
}

func (dev *Dev) readConfiguration() (uint16, error) {
	r := make([]byte, 2)
	if err := dev.d.Tx([]byte{regConfiguration}, r); err != nil {
		return 0, fmt.Errorf("tmp102: error reading configuration %w", err)
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

func (dev *Dev) writeConfiguration(config uint16) error {
	if err := dev.d.Tx([]byte{regConfiguration, byte(config >> 8), byte(config)}, nil); err != nil {
		return fmt.Errorf("tmp102: error writing configuration %w", err)
	}
	return nil
}

// countToTemperature converts the left-justified 12 bit two's complement
// reading of the temperature register.
func countToTemperature(b []byte) physic.Temperature {
	count := int16(uint16(b[0])<<8|uint16(b[1])) >> 4
	return physic.ZeroCelsius + physic.Temperature(count)*resolution
}

var _ conn.Resource = &Dev{}
var _ sensor.Driver = &Dev{}
