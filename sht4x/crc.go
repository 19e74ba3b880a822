// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sht4x

import "errors"

// errCRC is returned when a data word doesn't match its checksum.
var errCRC = errors.New("sht4x: crc mismatch")

// crc8 computes the Sensirion CRC-8 (polynomial 0x31, init 0xff) of b.
func crc8(b []byte) byte {
	var crc byte = 0xff
	for _, val := range b {
		crc ^= val
		for i := 0; i < 8; i++ {
			if crc&0x80 == 0 {
				crc <<= 1
			} else {
				crc = crc<<1 ^ 0x31
			}
		}
	}
	return crc
}

// checkWords verifies a response made of 16 bit words each followed by
// their CRC.
func checkWords(r []byte) error {
	for i := 0; i+2 < len(r); i += 3 {
		if crc8(r[i:i+2]) != r[i+2] {
			return errCRC
		}
	}
	return nil
}
