// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Register is one controller command and its arguments.
type Register struct {
	Cmd  byte
	Args []byte
}

// InitSequence is the ordered list of commands sent once at initialization.
//
// It must not contain the display on command, it is sent after a settle
// delay.
type InitSequence []Register

// Bytes returns the command stream.
func (s InitSequence) Bytes() []byte {
	var out []byte
	for _, r := range s {
		out = append(out, r.Cmd)
		out = append(out, r.Args...)
	}
	return out
}

// contrast returns the last contrast set by the sequence.
func (s InitSequence) contrast() (byte, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Cmd == _SETCONTRAST && len(s[i].Args) == 1 {
			return s[i].Args[0], true
		}
	}
	return 0, false
}

// pack groups the registers in command writes of at most max bytes. A
// register is never split across writes.
func (s InitSequence) pack(max int) ([][]byte, error) {
	var out [][]byte
	var cur []byte
	for _, r := range s {
		n := 1 + len(r.Args)
		if n > max {
			return nil, fmt.Errorf("sh110x: command 0x%02X with %d arguments does not fit in %d bytes", r.Cmd, len(r.Args), max)
		}
		if len(cur)+n > max {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, r.Cmd)
		cur = append(cur, r.Args...)
	}
	if len(cur) != 0 {
		out = append(out, cur)
	}
	return out, nil
}

// SH1107Init returns the initialization sequence for SH1107 panels.
//
// 64x128 panels are wired with a 0x60 COM offset, 128x128 ones without.
func SH1107Init(opts *Opts) InitSequence {
	offset, mux := byte(0x60), byte(0x3F)
	if opts.W == 128 && opts.H == 128 {
		offset, mux = 0x00, 0x7F
	}
	return InitSequence{
		{Cmd: _DISPLAYOFF},
		{Cmd: _SETDISPLAYCLOCKDIV, Args: []byte{0x51}},
		{Cmd: _MEMORYMODE}, // Page addressing mode
		{Cmd: _SETCONTRAST, Args: []byte{0x4F}},
		{Cmd: _DCDC, Args: []byte{0x8A}},
		{Cmd: _SEGREMAP},
		{Cmd: _COMSCANINC},
		{Cmd: _SETDISPSTARTLINE, Args: []byte{0x00}},
		{Cmd: _SETDISPLAYOFFSET, Args: []byte{offset}},
		{Cmd: _SETPRECHARGE, Args: []byte{0x22}},
		{Cmd: _SETVCOMDETECT, Args: []byte{0x35}},
		{Cmd: _SETMULTIPLEX, Args: []byte{mux}},
		{Cmd: _DISPLAYALLON_RESUME},
		{Cmd: _NORMALDISPLAY},
	}
}

// SH1106Init returns the initialization sequence for SH1106G panels.
func SH1106Init(opts *Opts) InitSequence {
	mux := byte(0x3F)
	if opts.H > 0 && opts.H < 64 {
		mux = byte(opts.H - 1)
	}
	return InitSequence{
		{Cmd: _DISPLAYOFF},
		{Cmd: _SETDISPLAYCLOCKDIV, Args: []byte{0x80}},
		{Cmd: _SETMULTIPLEX, Args: []byte{mux}},
		{Cmd: _SETDISPLAYOFFSET, Args: []byte{0x00}},
		{Cmd: _SETSTARTLINE},
		{Cmd: _DCDC, Args: []byte{0x8B}}, // DC/DC on
		{Cmd: _SEGREMAP + 1},
		{Cmd: _COMSCANDEC},
		{Cmd: _SETCOMPINS, Args: []byte{0x12}},
		{Cmd: _SETCONTRAST, Args: []byte{0xFF}},
		{Cmd: _SETPRECHARGE, Args: []byte{0x1F}},
		{Cmd: _SETVCOMDETECT, Args: []byte{0x40}},
		{Cmd: _SETVPP9V},
		{Cmd: _NORMALDISPLAY},
		{Cmd: _MEMORYMODE, Args: []byte{0x10}},
		{Cmd: _DISPLAYALLON_RESUME},
	}
}

func defaultInit(v Variant, opts *Opts) InitSequence {
	if v == SH1106G {
		return SH1106Init(opts)
	}
	return SH1107Init(opts)
}

// sleep is replaced in tests.
var sleep = time.Sleep

// bringUp resets the controller if a reset pin is available, sends the
// initialization sequence then turns the display on.
func (d *Dev) bringUp(seq InitSequence) error {
	if rst := d.opts.Reset; rst != nil {
		for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := rst.Out(l); err != nil {
				return fmt.Errorf("sh110x: reset: %w", err)
			}
			sleep(10 * time.Millisecond)
		}
	}
	writes, err := seq.pack(d.t.maxPayload())
	if err != nil {
		return err
	}
	for _, w := range writes {
		if err := d.sendCommand(w); err != nil {
			return fmt.Errorf("sh110x: initializing %s: %w", d.variant, err)
		}
	}
	// 100ms delay recommended before turning the panel on.
	sleep(100 * time.Millisecond)
	if err := d.sendCommand([]byte{_DISPLAYON}); err != nil {
		return fmt.Errorf("sh110x: initializing %s: %w", d.variant, err)
	}
	return nil
}
