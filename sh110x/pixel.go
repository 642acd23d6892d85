// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"image"
	"image/color"
	"strconv"

	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
)

// Color is how SetPixel changes a pixel.
type Color uint8

// Pixel operations.
const (
	// Black turns the pixel off.
	Black Color = 0
	// White turns the pixel on.
	White Color = 1
	// Inverse flips the pixel.
	Inverse Color = 2
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Inverse:
		return "Inverse"
	default:
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
}

// Rotation is the clockwise rotation of the logical coordinates relative to
// the panel, in steps of 90°.
type Rotation uint8

// Possible rotations.
const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 1
	Rotation180 Rotation = 2
	Rotation270 Rotation = 3
)

// SetRotation changes how logical coordinates map to the panel. Only the
// following pixel accesses are affected, the frame buffer is left untouched.
func (d *Dev) SetRotation(r Rotation) {
	d.rotation = r & 3
}

// Rotation returns the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// SetPixel changes the pixel at (x, y) in logical coordinates.
//
// Pixels outside Bounds() are ignored. The change is sent on the next
// Display().
func (d *Dev) SetPixel(x, y int, c Color) {
	px, py, ok := d.physical(x, y)
	if !ok {
		return
	}
	switch c {
	case Black:
		d.buffer.SetBit(px, py, image1bit.Off)
	case White:
		d.buffer.SetBit(px, py, image1bit.On)
	case Inverse:
		d.buffer.ToggleBit(px, py)
	default:
		return
	}
	d.win.mark(px, py)
}

// Pixel returns true if the pixel at (x, y) in logical coordinates is on.
//
// Pixels outside Bounds() are off.
func (d *Dev) Pixel(x, y int) bool {
	px, py, ok := d.physical(x, y)
	if !ok {
		return false
	}
	return bool(d.buffer.BitAt(px, py))
}

// Clear turns off all the pixels. The whole panel is sent on the next
// Display().
func (d *Dev) Clear() {
	d.buffer.Clear()
	d.MarkDirty()
}

// Buffer returns the frame buffer in the controller's page layout, as
// described in Write().
//
// The slice aliases the frame buffer. Call MarkDirty() after modifying it.
func (d *Dev) Buffer() []byte {
	return d.buffer.Pix
}

// MarkDirty forces the next Display() to send the whole panel.
func (d *Dev) MarkDirty() {
	d.win.all(d.rect.Dx(), d.rect.Dy())
}

// DirtyRect returns the area, in physical coordinates, that the next
// Display() sends. It is empty when the display is up to date.
func (d *Dev) DirtyRect() image.Rectangle {
	return d.win.rect()
}

// physical converts logical coordinates to the panel's.
func (d *Dev) physical(x, y int) (int, int, bool) {
	w := d.rect.Dx()
	h := d.rect.Dy()
	switch d.rotation {
	case Rotation90:
		x, y = w-1-y, x
	case Rotation180:
		x, y = w-1-x, h-1-y
	case Rotation270:
		x, y = y, h-1-x
	}
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// canvas exposes the frame buffer in logical coordinates as a draw.Image.
type canvas struct {
	d *Dev
}

func (c canvas) ColorModel() color.Model {
	return image1bit.BitModel
}

func (c canvas) Bounds() image.Rectangle {
	return c.d.Bounds()
}

func (c canvas) At(x, y int) color.Color {
	return image1bit.Bit(c.d.Pixel(x, y))
}

func (c canvas) Set(x, y int, col color.Color) {
	if image1bit.BitModel.Convert(col).(image1bit.Bit) {
		c.d.SetPixel(x, y, White)
	} else {
		c.d.SetPixel(x, y, Black)
	}
}
