// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
	"github.com/adafruit/Adafruit-SH110x/sh110x/sh110xsim"
	"github.com/fogleman/gg"
	"github.com/google/go-cmp/cmp"
)

// memCanvas is a Canvas in memory.
type memCanvas struct {
	img      *image1bit.VerticalLSB
	displays int
}

func newMem(w, h int) *memCanvas {
	return &memCanvas{img: image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))}
}

func (m *memCanvas) Bounds() image.Rectangle {
	return m.img.Bounds()
}

func (m *memCanvas) SetPixel(x, y int, c sh110x.Color) {
	if !(image.Point{X: x, Y: y}).In(m.img.Rect) {
		return
	}
	switch c {
	case sh110x.White:
		m.img.SetBit(x, y, image1bit.On)
	case sh110x.Black:
		m.img.SetBit(x, y, image1bit.Off)
	case sh110x.Inverse:
		m.img.ToggleBit(x, y)
	}
}

func (m *memCanvas) Pixel(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.img.Rect) {
		return false
	}
	return bool(m.img.BitAt(x, y))
}

func (m *memCanvas) Rotation() sh110x.Rotation {
	return sh110x.Rotation0
}

func (m *memCanvas) Display() error {
	m.displays++
	return nil
}

// lit returns the coordinates of the pixels that are on.
func (m *memCanvas) lit() []image.Point {
	var out []image.Point
	r := m.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.Pixel(x, y) {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}

func points(p ...int) []image.Point {
	var out []image.Point
	for i := 0; i < len(p); i += 2 {
		out = append(out, image.Point{X: p[i], Y: p[i+1]})
	}
	return out
}

func TestImage(t *testing.T) {
	m := newMem(16, 8)
	img := Image(m)
	if b := img.Bounds(); b != image.Rect(0, 0, 16, 8) {
		t.Fatal(b)
	}
	draw.Draw(img, image.Rect(2, 1, 4, 3), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	if diff := cmp.Diff(points(2, 1, 3, 1, 2, 2, 3, 2), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if img.At(2, 1) != image1bit.On || img.At(0, 0) != image1bit.Off {
		t.Fatal("unexpected At")
	}
	img.Set(2, 1, color.Black)
	if m.Pixel(2, 1) {
		t.Fatal("pixel should be off")
	}
	if img.ColorModel() != image1bit.BitModel {
		t.Fatal("unexpected color model")
	}
}

func TestPaint(t *testing.T) {
	m := newMem(8, 8)
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	mask.SetAlpha(1, 1, color.Alpha{A: 0xFF})
	mask.SetAlpha(2, 2, color.Alpha{A: 0x40})
	Paint(m, mask, image.Point{}, sh110x.White)
	if diff := cmp.Diff(points(1, 1), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	// The mask pixel at sp lands at the origin.
	Paint(m, mask, image.Point{X: 1, Y: 1}, sh110x.Inverse)
	if diff := cmp.Diff(points(0, 0, 1, 1), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	Fill(m, sh110x.White)
	if n := len(m.lit()); n != 64 {
		t.Fatal(n)
	}
	Fill(m, sh110x.Inverse)
	if n := len(m.lit()); n != 0 {
		t.Fatal(n)
	}
}

func TestLine(t *testing.T) {
	data := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{"point", 2, 2, 2, 2, points(2, 2)},
		{"horizontal", 1, 0, 4, 0, points(1, 0, 2, 0, 3, 0, 4, 0)},
		{"vertical reversed", 0, 3, 0, 1, points(0, 1, 0, 2, 0, 3)},
		{"diagonal", 0, 0, 3, 3, points(0, 0, 1, 1, 2, 2, 3, 3)},
		{"clipped", -2, 0, 1, 0, points(0, 0, 1, 0)},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			m := newMem(8, 8)
			Line(m, line.x0, line.y0, line.x1, line.y1, sh110x.White)
			if diff := cmp.Diff(line.want, m.lit()); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
	// Each pixel is flipped once.
	m := newMem(8, 8)
	Line(m, 0, 0, 7, 3, sh110x.Inverse)
	if n := len(m.lit()); n != 8 {
		t.Fatalf("got %d pixels", n)
	}
}

func TestRect(t *testing.T) {
	m := newMem(8, 8)
	Rect(m, image.Rect(1, 1, 4, 4), sh110x.White)
	want := points(1, 1, 2, 1, 3, 1, 1, 2, 3, 2, 1, 3, 2, 3, 3, 3)
	if diff := cmp.Diff(want, m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	m = newMem(8, 8)
	Rect(m, image.Rect(0, 0, 1, 3), sh110x.Inverse)
	if diff := cmp.Diff(points(0, 0, 0, 1, 0, 2), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	Rect(m, image.Rectangle{}, sh110x.White)
	if n := len(m.lit()); n != 3 {
		t.Fatal(n)
	}
}

func TestFillRect(t *testing.T) {
	m := newMem(8, 8)
	FillRect(m, image.Rect(2, 3, 5, 5), sh110x.White)
	want := points(2, 3, 3, 3, 4, 3, 2, 4, 3, 4, 4, 4)
	if diff := cmp.Diff(want, m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if m.displays != 0 {
		t.Fatal("drawing must not display")
	}
}

func TestCircle(t *testing.T) {
	m := newMem(32, 32)
	FillCircle(m, 16, 16, 5, sh110x.White)
	if !m.Pixel(16, 16) || !m.Pixel(20, 16) || !m.Pixel(16, 12) {
		t.Fatal("disc should be filled")
	}
	if m.Pixel(23, 16) || m.Pixel(0, 0) || m.Pixel(21, 21) {
		t.Fatal("outside of the disc")
	}
	m = newMem(32, 32)
	Circle(m, 16, 16, 8, sh110x.White)
	if m.Pixel(16, 16) {
		t.Fatal("the outline must be hollow")
	}
	if len(m.lit()) == 0 {
		t.Fatal("nothing drawn")
	}
	for _, p := range m.lit() {
		if d := (p.X-16)*(p.X-16) + (p.Y-16)*(p.Y-16); d < 36 || d > 100 {
			t.Fatalf("%v is not on the outline", p)
		}
	}
}

func TestRender(t *testing.T) {
	m := newMem(16, 16)
	Render(m, sh110x.White, func(dc *gg.Context) {
		if dc.Width() != 16 || dc.Height() != 16 {
			t.Errorf("context is %dx%d", dc.Width(), dc.Height())
		}
		dc.DrawRectangle(0, 0, 2, 1)
		dc.Fill()
	})
	if diff := cmp.Diff(points(0, 0, 1, 0), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	m := newMem(64, 16)
	end := Text(m, nil, 0, 12, "Hi", sh110x.White)
	if end != 14 {
		t.Fatalf("dot at %d", end)
	}
	if w := TextWidth(nil, "Hi"); w != 14 {
		t.Fatal(w)
	}
	lit := m.lit()
	if len(lit) == 0 {
		t.Fatal("nothing drawn")
	}
	for _, p := range lit {
		if p.X >= 14 || p.Y < 1 || p.Y > 14 {
			t.Fatalf("%v is outside of the glyphs", p)
		}
	}
}

func TestGoRegular(t *testing.T) {
	face, err := GoRegular(12)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	m := newMem(64, 16)
	end := Text(m, face, 2, 12, "Go", sh110x.White)
	if end <= 2 {
		t.Fatalf("dot at %d", end)
	}
	if len(m.lit()) == 0 {
		t.Fatal("nothing drawn")
	}
	if _, err := LoadTrueType([]byte("not a font"), 12); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestWriteLine(t *testing.T) {
	m := newMem(32, 16)
	WriteLine(m, nil, 0, 8, "T", sh110x.White)
	lit := m.lit()
	if len(lit) == 0 {
		t.Fatal("nothing drawn")
	}
	for _, p := range lit {
		if p.Y > 8 {
			t.Fatalf("%v is below the baseline", p)
		}
	}
	// Drawing again with Inverse clears it.
	WriteLine(m, nil, 0, 8, "T", sh110x.Inverse)
	if n := len(m.lit()); n != 0 {
		t.Fatalf("%d pixels left", n)
	}
}

func TestDisplayer(t *testing.T) {
	m := newMem(16, 8)
	d := NewDisplayer(m)
	if w, h := d.Size(); w != 16 || h != 8 {
		t.Fatal(w, h)
	}
	d.SetPixel(3, 4, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	d.SetPixel(5, 4, color.RGBA{R: 0x10, A: 0xFF})
	if diff := cmp.Diff(points(3, 4), m.lit()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	d.SetPixel(3, 4, color.RGBA{A: 0xFF})
	if len(m.lit()) != 0 {
		t.Fatal("pixel should be off")
	}
	if err := d.Display(); err != nil || m.displays != 1 {
		t.Fatal(err, m.displays)
	}
}

func TestDev(t *testing.T) {
	p, err := sh110xsim.New(sh110xsim.SH1106Opts())
	if err != nil {
		t.Fatal(err)
	}
	dev, err := sh110x.NewI2C(p, &sh110x.Opts{W: 128, H: 64, Variant: sh110x.SH1106G, Rotation: sh110x.Rotation180})
	if err != nil {
		t.Fatal(err)
	}
	Rect(dev, dev.Bounds(), sh110x.White)
	Text(dev, nil, 4, 20, "periph", sh110x.White)
	if err := dev.Display(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dev.Buffer(), p.Frame().Pix); diff != "" {
		t.Fatalf("panel mismatch (-driver +panel):\n%s", diff)
	}
	f := p.Frame()
	if !f.BitAt(0, 0) || !f.BitAt(127, 63) {
		t.Fatal("the border must be drawn")
	}
}
