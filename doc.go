// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package citemp is a container for a temperature sampler on an I²C sensor.
//
// The sampler reads the sensor in fixed size batches and prints the average
// of each batch on stdout. See cmd/citemp for the executable and package
// sampler for the loop itself.
//
// Sensor drivers live in their own package and register themselves with
// package sensor when imported.
package citemp
