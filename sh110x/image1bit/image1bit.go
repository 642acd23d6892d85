// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image1bit implements a 1-bit image in the memory layout used by the
// SH110x and SSD1306 family of OLED controllers.
//
// Pixels are grouped in horizontal bands of 8 rows called pages. Each byte
// holds 8 vertically stacked pixels of one column, the least significant bit
// being the top row. Pages follow each other, so the byte holding (x, y) is at
// x + (y/8)*width.
package image1bit

import (
	"image"
	"image/color"
	"image/draw"
)

// Bit implements a 1 bit color.
type Bit bool

// Possible bitness.
const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA returns either all white or all black.
//
// Technically the monochrome display could be colored but this information is
// unavailable here.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 65535, 65535, 65535, 65535
	}
	return 0, 0, 0, 65535
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// BitModel is the color Model for 1 bit color.
var BitModel = color.ModelFunc(convert)

// VerticalLSB is a 1 bit image where each byte holds 8 vertical pixels.
type VerticalLSB struct {
	// Pix holds the image's pixels, in vertical pages of 8 rows.
	Pix []byte
	// Stride is the number of bytes of one page, which is the image width.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewVerticalLSB returns an initialized VerticalLSB instance, all pixels are
// Off. A height that is not a multiple of 8 is rounded up in memory.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w := r.Dx()
	h := r.Dy()
	if w <= 0 || h <= 0 {
		return &VerticalLSB{Rect: r}
	}
	pages := (h + 7) / 8
	return &VerticalLSB{Pix: make([]byte, pages*w), Stride: w, Rect: r}
}

// ColorModel implements image.Image.
func (i *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (i *VerticalLSB) Bounds() image.Rectangle {
	return i.Rect
}

// Pages returns the number of 8 rows bands in the image.
func (i *VerticalLSB) Pages() int {
	return (i.Rect.Dy() + 7) / 8
}

// At implements image.Image.
func (i *VerticalLSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At().
func (i *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{x, y}.In(i.Rect)) {
		return Off
	}
	offset, mask := i.PixOffset(x, y)
	return Bit(i.Pix[offset]&mask != 0)
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (i *VerticalLSB) Opaque() bool {
	return true
}

// PixOffset returns the index of the byte holding the pixel at (x, y) and
// the bit mask selecting it within that byte.
func (i *VerticalLSB) PixOffset(x, y int) (int, byte) {
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	return x + (y/8)*i.Stride, byte(1 << uint(y&7))
}

// Set implements draw.Image
func (i *VerticalLSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, convertBit(c))
}

// SetBit is the optimized version of Set().
func (i *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	offset, mask := i.PixOffset(x, y)
	if b {
		i.Pix[offset] |= mask
	} else {
		i.Pix[offset] &^= mask
	}
}

// ToggleBit inverts the pixel at (x, y).
func (i *VerticalLSB) ToggleBit(x, y int) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	offset, mask := i.PixOffset(x, y)
	i.Pix[offset] ^= mask
}

// Clear turns all the pixels Off.
func (i *VerticalLSB) Clear() {
	for j := range i.Pix {
		i.Pix[j] = 0
	}
}

// Page returns the bytes of one 8 rows band. It aliases Pix.
func (i *VerticalLSB) Page(p int) []byte {
	return i.Pix[p*i.Stride : (p+1)*i.Stride]
}

var _ draw.Image = &VerticalLSB{}

// A channel at half intensity or more turns the pixel On.
func convert(c color.Color) color.Color {
	return convertBit(c)
}

func convertBit(c color.Color) Bit {
	switch t := c.(type) {
	case Bit:
		return t
	default:
		r, g, b, _ := c.RGBA()
		return Bit((r | g | b) >= 0x8000)
	}
}
