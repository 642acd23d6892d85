// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh110x controls a monochrome OLED display via a SH1106 or SH1107
// controller.
//
// The driver keeps a frame buffer in the controller's native layout and
// tracks the rectangle modified since the last update. Display() only sends
// the pages and columns within that rectangle, to economize bus bandwidth.
// This is especially important when using I²C as the bus default speed (often
// 100kHz) is slow enough to saturate the bus at less than 10 frames per
// second. The I²C bus can be sped up for the duration of an update with
// Opts.ClockDuring.
//
// Pixels are changed with SetPixel(), or with Draw() which implements
// display.Drawer. Drawing is not visible until Display() is called. When an
// update fails, the modified area is kept and the next Display() sends it
// again.
//
// Transfers are split to fit the bus maximum transaction size, 32 bytes by
// default on I²C. On runtimes where a long transfer would trip a watchdog,
// set Opts.Yielder.
//
// The device can be driven on either I²C or SPI with 4 wires.
//
// # Datasheets
//
// SH1106
//
// https://cdn.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
//
// SH1107
//
// https://www.adafruit.com/product/5297
//
// https://www.displayfuture.com/Display/datasheet/controller/SH1107.pdf
package sh110x
