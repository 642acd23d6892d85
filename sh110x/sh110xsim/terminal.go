// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110xsim

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// TerminalOpts represents the options available to render a panel.
type TerminalOpts struct {
	// W is where the frames are written. nil selects stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// Lit is the color of the pixels that are on. nil selects white.
	Lit color.Color

	_ struct{}
}

// Terminal shows the content of a Panel in the console using ANSI color
// codes.
type Terminal struct {
	w    io.Writer
	lit  string
	dark string

	buf bytes.Buffer
}

// NewTerminal returns a Terminal that draws at the console.
func NewTerminal(opts *TerminalOpts) *Terminal {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	lit := opts.Lit
	if lit == nil {
		lit = color.White
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Terminal{
		w:    w,
		lit:  p.Block(color.NRGBAModel.Convert(lit).(color.NRGBA)),
		dark: p.Block(color.NRGBA{A: 255}),
	}
}

func (t *Terminal) String() string {
	return "Terminal"
}

// Render draws the panel as seen by a viewer: a panel turned off is dark and
// the inversion is applied.
func (t *Terminal) Render(p *Panel) error {
	img := p.Frame()
	on := p.On()
	inverted := p.Inverted()
	// This code is designed to minimize the amount of memory allocated per call.
	t.buf.Reset()
	_, _ = t.buf.WriteString("\033[H\033[0m")
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			lit := on && bool(img.BitAt(x, y)) != inverted
			if lit {
				_, _ = t.buf.WriteString(t.lit)
			} else {
				_, _ = t.buf.WriteString(t.dark)
			}
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}

// Halt resets the terminal colors.
func (t *Terminal) Halt() error {
	_, err := t.w.Write([]byte("\n\033[0m"))
	return err
}
