// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image/color"

	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Displayer exposes a Canvas as a tinygo drivers.Displayer, so the TinyGo
// graphics libraries can draw on it.
type Displayer struct {
	c Canvas
}

// NewDisplayer returns a drivers.Displayer drawing on c.
func NewDisplayer(c Canvas) *Displayer {
	return &Displayer{c: c}
}

// Size implements drivers.Displayer.
func (d *Displayer) Size() (int16, int16) {
	r := d.c.Bounds()
	return int16(r.Dx()), int16(r.Dy())
}

// SetPixel implements drivers.Displayer. Colors at half intensity or more
// turn the pixel on.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if image1bit.BitModel.Convert(c).(image1bit.Bit) {
		d.c.SetPixel(int(x), int(y), sh110x.White)
	} else {
		d.c.SetPixel(int(x), int(y), sh110x.Black)
	}
}

// Display implements drivers.Displayer.
func (d *Displayer) Display() error {
	return d.c.Display()
}

// painter applies the same operation to every pixel tinyfont sets.
type painter struct {
	Displayer
	col sh110x.Color
}

func (p *painter) SetPixel(x, y int16, _ color.RGBA) {
	p.c.SetPixel(int(x), int(y), p.col)
}

// DefaultTinyFont is the bitmap font used by WriteLine when none is
// specified.
var DefaultTinyFont tinyfont.Fonter = &tinyfont.Picopixel

// WriteLine draws s with a tinyfont bitmap font, the baseline starting at
// (x, y). A nil font selects DefaultTinyFont.
func WriteLine(c Canvas, f tinyfont.Fonter, x, y int, s string, col sh110x.Color) {
	if f == nil {
		f = DefaultTinyFont
	}
	p := &painter{Displayer: Displayer{c: c}, col: col}
	tinyfont.WriteLine(p, f, int16(x), int16(y), s, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
}

var _ drivers.Displayer = &Displayer{}
var _ drivers.Displayer = &painter{}
