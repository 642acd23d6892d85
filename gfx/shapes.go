// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"
	"image/color"

	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/fogleman/gg"
)

// Render runs draw on a vector context the size of the canvas, then paints
// the pixels covered at least by half with col.
//
// Draw in white on the transparent context:
//
//	gfx.Render(dev, sh110x.White, func(dc *gg.Context) {
//		dc.DrawEllipse(32, 16, 20, 10)
//		dc.Stroke()
//	})
func Render(c Canvas, col sh110x.Color, draw func(dc *gg.Context)) {
	r := c.Bounds()
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetColor(color.White)
	dc.SetLineWidth(1)
	draw(dc)
	Paint(c, dc.Image(), image.Point{}, col)
}

// Line draws a one pixel wide line between both points, included. Each
// pixel is set once so Inverse works.
func Line(c Canvas, x0, y0, x1, y1 int, col sh110x.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Rect draws the outline of r.
func Rect(c Canvas, r image.Rectangle, col sh110x.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	x1, y1 := r.Max.X-1, r.Max.Y-1
	for x := r.Min.X; x <= x1; x++ {
		c.SetPixel(x, r.Min.Y, col)
		if y1 != r.Min.Y {
			c.SetPixel(x, y1, col)
		}
	}
	for y := r.Min.Y + 1; y < y1; y++ {
		c.SetPixel(r.Min.X, y, col)
		if x1 != r.Min.X {
			c.SetPixel(x1, y, col)
		}
	}
}

// FillRect sets every pixel of r.
func FillRect(c Canvas, r image.Rectangle, col sh110x.Color) {
	Render(c, col, func(dc *gg.Context) {
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Fill()
	})
}

// Circle draws the outline of the circle centered on the pixel (x, y).
func Circle(c Canvas, x, y, radius int, col sh110x.Color) {
	Render(c, col, func(dc *gg.Context) {
		dc.DrawCircle(float64(x)+0.5, float64(y)+0.5, float64(radius))
		dc.Stroke()
	})
}

// FillCircle sets every pixel of the disc centered on the pixel (x, y).
func FillCircle(c Canvas, x, y, radius int, col sh110x.Color) {
	Render(c, col, func(dc *gg.Context) {
		dc.DrawCircle(float64(x)+0.5, float64(y)+0.5, float64(radius)+0.5)
		dc.Fill()
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
