// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensor defines the capability bundle a temperature sensor driver
// exposes to the sampler, and a registry of the sensor models compiled in.
//
// Drivers register themselves from their package init function, so
// importing a driver package for its side effect makes the model available
// to Open:
//
//	import _ "github.com/GermanBionicSystems/citemp/tmp102"
package sensor

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Driver is a temperature sensor bound to one model.
//
// Init must be called once before Read.
type Driver interface {
	// Init attaches the driver to the sensor at addr on b and configures it.
	Init(b i2c.Bus, addr uint16) error
	// Read performs one measurement.
	Read() (physic.Temperature, error)
	String() string
}

// Opener returns a new, uninitialized Driver.
type Opener func() Driver

// Ref references a sensor model.
type Ref struct {
	// Name of the model, e.g. "tmp102".
	Name string
	// Aliases are alternative names, typically compatible parts.
	Aliases []string
	// DefaultAddress is the I²C address the part ships with.
	DefaultAddress uint16
	// Open is the factory for a Driver of this model.
	Open Opener
}

// Open returns a new Driver for the named model, matched by name or alias.
//
// Specify the empty string "" to get the first model in lexical order.
func Open(name string) (Driver, error) {
	r, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.Open(), nil
}

// Lookup returns the registration for the named model.
func Lookup(name string) (*Ref, error) {
	mu.Lock()
	defer mu.Unlock()
	if len(byName) == 0 {
		return nil, errors.New("sensor: no model registered; did you forget to import a driver")
	}
	var r *Ref
	if len(name) == 0 {
		r = getDefault()
	} else if r = byName[name]; r == nil {
		r = byAlias[name]
	}
	if r == nil {
		return nil, errors.New("sensor: unknown model " + strconv.Quote(name))
	}
	return r, nil
}

// All returns a copy of all the registered models, sorted by name.
func All() []*Ref {
	mu.Lock()
	defer mu.Unlock()
	out := make([]*Ref, 0, len(byName))
	for _, v := range byName {
		r := &Ref{Name: v.Name, Aliases: make([]string, len(v.Aliases)), DefaultAddress: v.DefaultAddress, Open: v.Open}
		copy(r.Aliases, v.Aliases)
		out = insertRef(out, r)
	}
	return out
}

// Register registers a sensor model.
//
// Registering the same name or alias twice is an error.
func Register(r Ref) error {
	if len(r.Name) == 0 {
		return errors.New("sensor: can't register a model with no name")
	}
	if r.Open == nil {
		return errors.New("sensor: can't register model " + strconv.Quote(r.Name) + " with nil Opener")
	}
	if err := checkName(r.Name); err != nil {
		return err
	}
	for _, alias := range r.Aliases {
		if alias == r.Name {
			return errors.New("sensor: can't register model " + strconv.Quote(r.Name) + " with an alias the same as its name")
		}
		if err := checkName(alias); err != nil {
			return err
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, n := range append([]string{r.Name}, r.Aliases...) {
		if _, ok := byName[n]; ok {
			return errors.New("sensor: can't register " + strconv.Quote(n) + " twice")
		}
		if _, ok := byAlias[n]; ok {
			return errors.New("sensor: can't register " + strconv.Quote(n) + " twice; it is already an alias")
		}
	}
	c := &Ref{Name: r.Name, Aliases: make([]string, len(r.Aliases)), DefaultAddress: r.DefaultAddress, Open: r.Open}
	copy(c.Aliases, r.Aliases)
	byName[c.Name] = c
	for _, alias := range c.Aliases {
		byAlias[alias] = c
	}
	return nil
}

// MustRegister calls Register and panics on failure. It is meant to be
// called from a driver's init function.
func MustRegister(r Ref) {
	if err := Register(r); err != nil {
		panic(err)
	}
}

// Unregister removes a previously registered model.
func Unregister(name string) error {
	mu.Lock()
	defer mu.Unlock()
	r := byName[name]
	if r == nil {
		return errors.New("sensor: can't unregister unknown model " + strconv.Quote(name))
	}
	delete(byName, name)
	for _, alias := range r.Aliases {
		delete(byAlias, alias)
	}
	return nil
}

//

var (
	mu      sync.Mutex
	byName  = map[string]*Ref{}
	byAlias = map[string]*Ref{}
)

func checkName(n string) error {
	if len(n) == 0 {
		return errors.New("sensor: can't register an empty alias")
	}
	if _, err := strconv.Atoi(n); err == nil {
		return errors.New("sensor: can't register " + strconv.Quote(n) + ", it is only a number")
	}
	if strings.ContainsAny(n, ": ") {
		return errors.New("sensor: can't register " + strconv.Quote(n) + ", it contains ':' or a space")
	}
	return nil
}

func getDefault() *Ref {
	var o *Ref
	for n, r := range byName {
		if o == nil || n < o.Name {
			o = r
		}
	}
	return o
}

func insertRef(l []*Ref, r *Ref) []*Ref {
	n := r.Name
	i := 0
	for ; i < len(l) && l[i].Name <= n; i++ {
	}
	l = append(l, nil)
	copy(l[i+1:], l[i:])
	l[i] = r
	return l
}
