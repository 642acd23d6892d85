// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import "fmt"

// Display sends the pixels modified since the last successful call to the
// controller.
//
// For every page touched, one addressing command is sent, then the modified
// columns are streamed in writes no larger than the bus accepts. The Yielder
// is called before starting and after every data write.
//
// When nothing changed, there is no bus traffic. On error the remaining pages
// are skipped and the modified area is kept, so the next call sends it again.
func (d *Dev) Display() (err error) {
	d.yield.Yield()
	if d.win.empty() {
		return nil
	}
	if err := d.t.setSpeed(d.opts.ClockDuring); err != nil {
		return fmt.Errorf("sh110x: setting bus clock: %w", err)
	}
	defer func() {
		if err2 := d.t.setSpeed(d.opts.ClockAfter); err2 != nil && err == nil {
			err = fmt.Errorf("sh110x: restoring bus clock: %w", err2)
		}
	}()

	for _, s := range d.win.spans(d.rect.Dx(), d.buffer.Pages(), d.opts.FullPageFlush) {
		if err := d.sendCommand(addressCmd(s.page, s.col+d.colOffset)); err != nil {
			return fmt.Errorf("sh110x: addressing page %d: %w", s.page, err)
		}
		if err := d.stream(d.buffer.Pix[s.offset : s.offset+s.length]); err != nil {
			return fmt.Errorf("sh110x: streaming page %d: %w", s.page, err)
		}
	}
	d.win.reset()
	return nil
}

// stream writes p in chunks, yielding between each.
func (d *Dev) stream(p []byte) error {
	n := d.t.maxPayload()
	for len(p) != 0 {
		chunk := min(len(p), n)
		if err := d.sendData(p[:chunk]); err != nil {
			return err
		}
		p = p[chunk:]
		d.yield.Yield()
	}
	return nil
}

func (d *Dev) sendData(p []byte) error {
	if d.halted {
		// Transparently enable the display.
		if err := d.sendCommand(nil); err != nil {
			return err
		}
	}
	return d.t.data(p)
}

func (d *Dev) sendCommand(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		c = append([]byte{_DISPLAYON}, c...)
	}
	if err := d.t.command(c); err != nil {
		return err
	}
	d.halted = false
	return nil
}
