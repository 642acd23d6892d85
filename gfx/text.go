// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"

	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the 7x13 fixed font used when no face is specified.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws s with the baseline starting at (x, y) and returns the x
// coordinate after the last glyph.
//
// Glyph pixels at half coverage or more are painted with col, the background
// is left as is. A nil face selects DefaultFace.
func Text(c Canvas, face font.Face, x, y int, s string, col sh110x.Color) int {
	if face == nil {
		face = DefaultFace
	}
	mask := image.NewAlpha(c.Bounds())
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	Paint(c, mask, image.Point{}, col)
	return d.Dot.X.Ceil()
}

// TextWidth returns the advance of s in pixels.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		face = DefaultFace
	}
	return font.MeasureString(face, s).Ceil()
}

// LoadTrueType parses a TrueType font and returns a face of the given size in
// points, at 72 DPI so a point is a pixel.
func LoadTrueType(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

// GoRegular returns the Go Regular font at the given size in points.
func GoRegular(size float64) (font.Face, error) {
	return LoadTrueType(goregular.TTF, size)
}
