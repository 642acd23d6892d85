// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh110xsim emulates a SH1106 or SH1107 controller on a fake bus.
//
// The Panel decodes the command and data streams the driver sends and keeps
// the controller RAM, so the visible frame can be inspected in tests or shown
// in a terminal while the hardware is not at hand.
package sh110xsim

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// ErrInjected is returned by the bus once FailAfter expired.
var ErrInjected = errors.New("sh110xsim: injected bus failure")

// Opts describes the emulated panel.
type Opts struct {
	// W and H are the visible size in pixels.
	W int
	H int
	// RAMWidth is the number of columns of the controller RAM. 0 selects W.
	RAMWidth int
	// ColOffset is the first RAM column shown on the panel.
	ColOffset int
	// Addr is the I²C address the panel answers to. 0 selects 0x3C.
	Addr uint16
	// MaxTx is reported through conn.Limits. 0 means unlimited.
	MaxTx int
}

// SH1106Opts returns the geometry of a 128x64 SH1106G panel.
func SH1106Opts() Opts {
	return Opts{W: 128, H: 64, RAMWidth: 132, ColOffset: 2}
}

// SH1107Opts returns the geometry of a SH1107 panel of w x h pixels.
func SH1107Opts(w, h int) Opts {
	return Opts{W: w, H: h}
}

// Write is one transaction received by the panel.
type Write struct {
	Data  bool
	Bytes []byte
}

// Panel is an emulated controller and its panel.
//
// It is safe for concurrent use.
type Panel struct {
	mu    sync.Mutex
	opts  Opts
	ram   []byte
	pages int

	page, col int
	// pending is the command waiting for its argument byte.
	pending    byte
	hasPending bool

	on        bool
	inverted  bool
	contrast  byte
	startLine byte

	speeds    []physic.Frequency
	writes    []Write
	failAfter int
}

// New returns an emulated panel. Its RAM is blank and the display is off.
func New(opts Opts) (*Panel, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("sh110xsim: invalid size %dx%d", opts.W, opts.H)
	}
	if opts.RAMWidth == 0 {
		opts.RAMWidth = opts.W
	}
	if opts.ColOffset < 0 || opts.ColOffset+opts.W > opts.RAMWidth {
		return nil, fmt.Errorf("sh110xsim: %d columns at offset %d do not fit in %d RAM columns", opts.W, opts.ColOffset, opts.RAMWidth)
	}
	if opts.Addr == 0 {
		opts.Addr = 0x3C
	}
	pages := (opts.H + 7) / 8
	return &Panel{
		opts:      opts,
		ram:       make([]byte, pages*opts.RAMWidth),
		pages:     pages,
		failAfter: -1,
	}, nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("sh110xsim(%dx%d)", p.opts.W, p.opts.H)
}

// Tx implements i2c.Bus.
//
// The first byte is the control byte: 0x00 for commands, 0x40 for data.
func (p *Panel) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if addr != p.opts.Addr {
		return fmt.Errorf("sh110xsim: no device at address 0x%02X", addr)
	}
	if len(r) != 0 {
		return errors.New("sh110xsim: reads are not supported")
	}
	if len(w) == 0 {
		return nil
	}
	switch w[0] {
	case 0x00:
		return p.txLocked(false, w[1:], len(w))
	case 0x40:
		return p.txLocked(true, w[1:], len(w))
	default:
		return fmt.Errorf("sh110xsim: unsupported control byte 0x%02X", w[0])
	}
}

// SetSpeed implements i2c.Bus. The requested speeds are recorded.
func (p *Panel) SetSpeed(f physic.Frequency) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speeds = append(p.speeds, f)
	return nil
}

// MaxTxSize implements conn.Limits.
func (p *Panel) MaxTxSize() int {
	return p.opts.MaxTx
}

// FailAfter makes every transaction fail once n more succeeded. A negative
// value disables the failure.
func (p *Panel) FailAfter(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failAfter = n
}

// Speeds returns the bus speeds requested so far.
func (p *Panel) Speeds() []physic.Frequency {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]physic.Frequency(nil), p.speeds...)
}

// Writes returns the transactions received so far.
func (p *Panel) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Write(nil), p.writes...)
}

// ResetLog forgets the recorded writes and speeds. The RAM is kept.
func (p *Panel) ResetLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = nil
	p.speeds = nil
}

// On returns true when the display is turned on.
func (p *Panel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

// Inverted returns true when the display shows black on white.
func (p *Panel) Inverted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inverted
}

// Contrast returns the last contrast set.
func (p *Panel) Contrast() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contrast
}

// StartLine returns the display start line.
func (p *Panel) StartLine() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startLine
}

// Frame returns a copy of the visible part of the RAM.
//
// The inversion and the start line are not applied.
func (p *Panel) Frame() *image1bit.VerticalLSB {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, p.opts.W, p.opts.H))
	for page := 0; page < p.pages; page++ {
		src := p.ram[page*p.opts.RAMWidth+p.opts.ColOffset:]
		copy(img.Page(page), src[:p.opts.W])
	}
	return img
}

func (p *Panel) txLocked(data bool, b []byte, size int) error {
	if p.failAfter == 0 {
		return ErrInjected
	}
	if p.failAfter > 0 {
		p.failAfter--
	}
	if p.opts.MaxTx > 0 && size > p.opts.MaxTx {
		return fmt.Errorf("sh110xsim: transaction of %d bytes exceeds %d", size, p.opts.MaxTx)
	}
	p.writes = append(p.writes, Write{Data: data, Bytes: append([]byte(nil), b...)})
	if data {
		p.writeRAM(b)
	} else {
		p.command(b)
	}
	return nil
}

// writeRAM stores pixels at the current page and column. The column pointer
// stops at the end of the RAM row.
func (p *Panel) writeRAM(b []byte) {
	if p.page >= p.pages {
		return
	}
	row := p.ram[p.page*p.opts.RAMWidth : (p.page+1)*p.opts.RAMWidth]
	for _, v := range b {
		if p.col >= len(row) {
			return
		}
		row[p.col] = v
		p.col++
	}
}

// command decodes a command stream. A command argument may arrive in the
// next transaction.
func (p *Panel) command(b []byte) {
	for _, c := range b {
		if p.hasPending {
			p.hasPending = false
			p.argument(p.pending, c)
			continue
		}
		switch {
		case c <= 0x0F:
			p.col = p.col&0xF0 | int(c)
		case c <= 0x17:
			p.col = p.col&0x0F | int(c&0x07)<<4
		case c >= 0x40 && c <= 0x7F:
			p.startLine = c & 0x3F
		case c >= 0xB0 && c <= 0xBF:
			p.page = int(c & 0x0F)
		case c == 0xA6:
			p.inverted = false
		case c == 0xA7:
			p.inverted = true
		case c == 0xAE:
			p.on = false
		case c == 0xAF:
			p.on = true
		case twoBytes[c]:
			p.pending = c
			p.hasPending = true
		}
	}
}

func (p *Panel) argument(cmd, arg byte) {
	switch cmd {
	case 0x81:
		p.contrast = arg
	case 0xDC:
		p.startLine = arg & 0x7F
	}
}

// twoBytes lists the commands followed by one argument byte.
var twoBytes = map[byte]bool{
	0x81: true, // contrast
	0xA8: true, // multiplex ratio
	0xAD: true, // DC-DC
	0xD3: true, // display offset
	0xD5: true, // clock divider
	0xD9: true, // precharge
	0xDA: true, // COM pins
	0xDB: true, // VCOM deselect
	0xDC: true, // display start line
}

var _ i2c.Bus = &Panel{}
var _ conn.Limits = &Panel{}
