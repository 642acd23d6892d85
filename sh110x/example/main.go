// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// example draws a small animation on a SH110x display.
//
// Without -bus, an emulated panel is used and shown in the terminal.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/adafruit/Adafruit-SH110x/gfx"
	"github.com/adafruit/Adafruit-SH110x/sh110x"
	"github.com/adafruit/Adafruit-SH110x/sh110x/sh110xsim"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	bus := flag.String("bus", "", "I²C or SPI bus to use; empty for the emulated panel")
	useSPI := flag.Bool("spi", false, "use SPI instead of I²C")
	dcName := flag.String("dc", "", "SPI D/C pin name")
	rstName := flag.String("rst", "", "reset pin name")
	variant := flag.String("variant", string(sh110x.SH1107), "controller: SH1107 or SH1106G")
	w := flag.Int("width", 64, "panel width")
	h := flag.Int("height", 128, "panel height")
	rot := flag.Int("rotation", 1, "rotation in steps of 90°")
	fast := flag.Int("khz", 400, "I²C speed during updates in kHz")
	frames := flag.Int("frames", 64, "number of frames to draw")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %v", flag.Args())
	}

	opts := sh110x.DefaultOpts
	opts.W, opts.H = *w, *h
	opts.Variant = sh110x.Variant(*variant)
	opts.Rotation = sh110x.Rotation(*rot)
	opts.ClockDuring = physic.Frequency(*fast) * physic.KiloHertz

	var dev *sh110x.Dev
	var show func() error
	if *bus == "" {
		panel, err := newPanel(opts)
		if err != nil {
			return err
		}
		if dev, err = sh110x.NewI2C(panel, &opts); err != nil {
			return err
		}
		show = func() error { return nil }
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			term := sh110xsim.NewTerminal(&sh110xsim.TerminalOpts{})
			defer func() {
				if err := term.Halt(); err != nil {
					log.Printf("terminal: %v", err)
				}
			}()
			show = func() error { return term.Render(panel) }
		}
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		if *rstName != "" {
			if opts.Reset = gpioreg.ByName(*rstName); opts.Reset == nil {
				return fmt.Errorf("unknown pin %q", *rstName)
			}
		}
		var c io.Closer
		var err error
		if *useSPI {
			dev, c, err = openSPI(*bus, *dcName, &opts)
		} else {
			dev, c, err = openI2C(*bus, &opts)
		}
		if err != nil {
			return err
		}
		defer c.Close()
		show = func() error { return nil }
	}
	log.Printf("%s", dev)
	return run(dev, *frames, show)
}

func newPanel(opts sh110x.Opts) (*sh110xsim.Panel, error) {
	if opts.Variant == sh110x.SH1106G {
		return sh110xsim.New(sh110xsim.SH1106Opts())
	}
	return sh110xsim.New(sh110xsim.SH1107Opts(opts.W, opts.H))
}

// openI2C returns the device and the bus to close when done.
func openI2C(name string, opts *sh110x.Opts) (*sh110x.Dev, io.Closer, error) {
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	dev, err := sh110x.NewI2C(b, opts)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return dev, b, nil
}

func openSPI(name, dc string, opts *sh110x.Opts) (*sh110x.Dev, io.Closer, error) {
	var pin gpio.PinIO
	if dc != "" {
		pin = gpioreg.ByName(dc)
	}
	if pin == nil {
		return nil, nil, fmt.Errorf("a valid -dc pin is required, got %q", dc)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	dev, err := sh110x.NewSPI(p, pin, opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return dev, p, nil
}

// run draws a bouncing ball over a frame and a title.
func run(dev *sh110x.Dev, frames int, show func() error) error {
	b := dev.Bounds()
	gfx.Rect(dev, b, sh110x.White)
	gfx.Text(dev, nil, 3, 14, "SH110x", sh110x.White)
	gfx.WriteLine(dev, nil, 3, b.Dy()-4, time.Now().Format("15:04:05"), sh110x.White)
	const r = 3
	x, y, dx, dy := b.Dx()/2, b.Dy()/2, 2, 1
	arena := image.Rect(1+r, 18+r, b.Dx()-1-r, b.Dy()-10-r)
	for i := 0; i < frames; i++ {
		gfx.FillCircle(dev, x, y, r, sh110x.Inverse)
		start := time.Now()
		if err := dev.Display(); err != nil {
			return err
		}
		if err := show(); err != nil {
			return err
		}
		if i == 0 {
			log.Printf("first frame sent in %s", time.Since(start))
		}
		time.Sleep(50 * time.Millisecond)
		// Erase by flipping the same pixels again.
		gfx.FillCircle(dev, x, y, r, sh110x.Inverse)
		if x+dx < arena.Min.X || x+dx >= arena.Max.X {
			dx = -dx
		}
		if y+dy < arena.Min.Y || y+dy >= arena.Max.Y {
			dy = -dy
		}
		x, y = x+dx, y+dy
	}
	if err := dev.Display(); err != nil {
		return err
	}
	return dev.Halt()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sh110x: %s.\n", err)
		os.Exit(1)
	}
}
