// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sht4x provides a sensor.Driver for the Sensirion SHT-40, SHT-41, and SHT-45
// temperature and humidity sensors.
//
// # Datasheet
//
// https://sensirion.com/media/documents/33FD6951/67EB9032/HT_DS_Datasheet_SHT4x_5.pdf
//
// # Temperature Accuracy
//
// SHT-40 & SHT-41
//
//	Typical accuracy: ±0.2 °C
//
// SHT-45
//
//	Typical accuracy: ±0.1 °C
//
// All devices have a resolution of 0.01 °C and specified range –40…+125 °C.
//
// Importing the package registers the "sht4x" model, with the "sht40",
// "sht41" and "sht45" aliases, in the sensor registry.
package sht4x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/citemp/sensor"
	"github.com/GermanBionicSystems/citemp/status"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddress is the address of the SHT4x-A parts.
const DefaultAddress uint16 = 0x44

const (
	cmdSoftReset byte = 0x94
	// Read at highest precision and repeatability
	cmdMeasure          byte = 0xfd
	cmdReadSerialNumber byte = 0x89

	countDivisor = float64(65535)

	minTemperature = -40*physic.Kelvin + physic.ZeroCelsius
	maxTemperature = 125*physic.Kelvin + physic.ZeroCelsius

	minRH = 0 * physic.PercentRH
	maxRH = 100 * physic.PercentRH

	resetDelay   = 2 * time.Millisecond
	measureDelay = 10 * time.Millisecond
)

func init() {
	sensor.MustRegister(sensor.Ref{
		Name:           "sht4x",
		Aliases:        []string{"sht40", "sht41", "sht45"},
		DefaultAddress: DefaultAddress,
		Open:           func() sensor.Driver { return New() },
	})
}

// Dev represents a SHT-4X series temperature/humidity sensor
type Dev struct {
	mu     sync.Mutex
	d      *i2c.Dev
	serial uint32
}

// New returns an unattached driver. Call Init to bind it to a bus.
func New() *Dev {
	return &Dev{}
}

// Init implements sensor.Driver.
//
// It soft-resets the part and reads its serial number, which fails unless
// a SHT4x answers at addr.
func (dev *Dev) Init(b i2c.Bus, addr uint16) error {
	if b == nil {
		return &status.Error{Code: status.ErrNullPtr, Op: "sht4x init", Err: errors.New("sht4x: nil bus")}
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.d = &i2c.Dev{Bus: b, Addr: addr}
	if err := dev.txWithDelay([]byte{cmdSoftReset}, nil, resetDelay); err != nil {
		dev.d = nil
		return fmt.Errorf("sht4x: error resetting %w", err)
	}
	r := make([]byte, 6)
	if err := dev.txWithDelay([]byte{cmdReadSerialNumber}, r, measureDelay); err != nil {
		dev.d = nil
		return &status.Error{Code: status.ErrNoResponse, Op: "sht4x init", Err: err}
	}
	dev.serial = uint32(r[0])<<24 | uint32(r[1])<<16 | uint32(r[3])<<8 | uint32(r[4])
	return nil
}

// If you try to read immediately after a write with this device, you'll get an
// io error. This just wraps the write and adds a delay before attempting the
// read. Responses are checked against their CRC.
func (dev *Dev) txWithDelay(w, r []byte, delay time.Duration) error {
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("sht4x: error transmitting %w", err)
	}
	time.Sleep(delay)
	if r == nil {
		return nil
	}
	if err := dev.d.Tx(nil, r); err != nil {
		return fmt.Errorf("sht4x: error reading %w", err)
	}
	return checkWords(r)
}

// convert the count to a temperature value.
func countToTemp(count uint16) physic.Temperature {
	// T=-45+175*(count/countDivisor)
	val := physic.Temperature(float64(physic.Kelvin)*(-45.0+175.0*(float64(count)/countDivisor))) + physic.ZeroCelsius
	if val < minTemperature {
		val = minTemperature
	} else if val > maxTemperature {
		val = maxTemperature
	}
	return val
}

func countToHumidity(count uint16) physic.RelativeHumidity {
	// RH=-6 + 125*(count/countDivisor)
	val := physic.RelativeHumidity((-6.0 + 125.0*(float64(count)/countDivisor)) * float64(physic.PercentRH))
	if val < minRH {
		val = minRH
	} else if val > maxRH {
		val = maxRH
	}
	return val
}

// measure runs one high precision measurement. Callers hold mu.
func (dev *Dev) measure(e *physic.Env) error {
	if dev.d == nil {
		return &status.Error{Code: status.ErrUninitialized, Op: "sht4x read"}
	}
	r := make([]byte, 6)
	if err := dev.txWithDelay([]byte{cmdMeasure}, r, measureDelay); err != nil {
		return fmt.Errorf("sht4x: error reading device %w", err)
	}
	e.Temperature = countToTemp(uint16(r[0])<<8 | uint16(r[1]))
	e.Humidity = countToHumidity(uint16(r[3])<<8 | uint16(r[4]))
	e.Pressure = 0
	return nil
}

// Read implements sensor.Driver.
func (dev *Dev) Read() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	e := physic.Env{}
	if err := dev.measure(&e); err != nil {
		return minTemperature, err
	}
	return e.Temperature, nil
}

// Sense reads temperature and humidity from the device.
func (dev *Dev) Sense(e *physic.Env) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.measure(e)
}

// Precision returns the smallest change in readings the device can produce.
func (dev *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 100
	e.Humidity = physic.PercentRH / 100
	e.Pressure = 0
}

// SerialNumber returns the device serial number read by Init.
func (dev *Dev) SerialNumber() uint32 {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.serial
}

// Halt implements conn.Resource. The part idles on its own between
// measurements so there is nothing to stop.
func (dev *Dev) Halt() error {
	return nil
}

// String returns a string representation of the device.
func (dev *Dev) String() string {
	return "sht4x"
}

var _ conn.Resource = &Dev{}
var _ sensor.Driver = &Dev{}
