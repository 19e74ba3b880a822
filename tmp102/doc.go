// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// tmp102 provides a sensor.Driver for a Texas Instruments TMP102 I2C
// temperature sensor. This driver is also compatible with the TMP112 and
// TMP75 sensors.
//
// Range: -40°C - 125°C
//
// Accuracy: +/- 0.5°C
//
// Resolution: 0.0625°C
//
// Importing the package registers the "tmp102" model, with the "tmp112" and
// "tmp75" aliases, in the sensor registry.
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.ti.com/lit/ds/symlink/tmp102.pdf
package tmp102
