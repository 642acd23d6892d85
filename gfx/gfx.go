// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfx draws shapes and text on a monochrome canvas such as a
// sh110x.Dev.
//
// Nothing is sent to the display until Canvas.Display() is called.
package gfx

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
)

// Canvas is a monochrome pixel surface in logical coordinates.
//
// *sh110x.Dev implements it.
type Canvas interface {
	// Bounds is the logical size. Min is {0, 0}.
	Bounds() image.Rectangle
	SetPixel(x, y int, c sh110x.Color)
	Pixel(x, y int) bool
	Rotation() sh110x.Rotation
	// Display sends the pending changes to the panel.
	Display() error
}

// Image returns the canvas as a draw.Image, for use with image/draw and
// golang.org/x/image/font.
//
// Colors at half intensity or more turn the pixel on.
func Image(c Canvas) draw.Image {
	return &canvasImage{c: c}
}

type canvasImage struct {
	c Canvas
}

func (i *canvasImage) ColorModel() color.Model {
	return image1bit.BitModel
}

func (i *canvasImage) Bounds() image.Rectangle {
	return i.c.Bounds()
}

func (i *canvasImage) At(x, y int) color.Color {
	return image1bit.Bit(i.c.Pixel(x, y))
}

func (i *canvasImage) Set(x, y int, col color.Color) {
	if image1bit.BitModel.Convert(col).(image1bit.Bit) {
		i.c.SetPixel(x, y, sh110x.White)
	} else {
		i.c.SetPixel(x, y, sh110x.Black)
	}
}

// Paint applies col to every canvas pixel where mask is lit, the mask pixel
// at sp being drawn at the canvas origin. The other pixels are left as is.
//
// With sh110x.Inverse, the lit pixels of the mask are flipped.
func Paint(c Canvas, mask image.Image, sp image.Point, col sh110x.Color) {
	r := c.Bounds()
	mr := mask.Bounds().Sub(sp).Intersect(r)
	for y := mr.Min.Y; y < mr.Max.Y; y++ {
		for x := mr.Min.X; x < mr.Max.X; x++ {
			if image1bit.BitModel.Convert(mask.At(x+sp.X, y+sp.Y)).(image1bit.Bit) {
				c.SetPixel(x, y, col)
			}
		}
	}
}

// Fill sets every pixel of the canvas.
func Fill(c Canvas, col sh110x.Color) {
	r := c.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.SetPixel(x, y, col)
		}
	}
}

var _ Canvas = &sh110x.Dev{}
