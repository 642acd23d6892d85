// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

// The SH1106 and SH1107 are OLED controllers close to the SSD1306. The
// SH1107 is found on 64x128 and 128x128 panels, for example the Adafruit
// FeatherWing OLED.
//
// https://learn.adafruit.com/adafruit-128x64-oled-featherwing
//
// https://www.displayfuture.com/Display/datasheet/controller/SH1107.pdf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/adafruit/Adafruit-SH110x/sh110x/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	_MEMORYMODE          = 0x20
	_SETCONTRAST         = 0x81
	_SEGREMAP            = 0xA0
	_DISPLAYALLON_RESUME = 0xA4
	_NORMALDISPLAY       = 0xA6
	_INVERTDISPLAY       = 0xA7
	_SETMULTIPLEX        = 0xA8
	_DCDC                = 0xAD
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_SETPAGEADDR         = 0xB0
	_COMSCANINC          = 0xC0
	_COMSCANDEC          = 0xC8
	_SETDISPLAYOFFSET    = 0xD3
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETPRECHARGE        = 0xD9
	_SETCOMPINS          = 0xDA
	_SETVCOMDETECT       = 0xDB
	_SETDISPSTARTLINE    = 0xDC
	_SETLOWCOLUMN        = 0x00
	_SETHIGHCOLUMN       = 0x10
	_SETSTARTLINE        = 0x40
	_SETVPP9V            = 0x33
)

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

// Variant is the display controller model. It is not detected, the SH110x
// has no readable ID register.
type Variant string

// Supported controllers.
const (
	// SH1106G drives 128x64 panels. Its RAM is 132 columns wide and the
	// visible area starts at column 2.
	SH1106G Variant = "SH1106G"
	// SH1107 drives 64x128 and 128x128 panels.
	SH1107 Variant = "SH1107"
)

// ErrInvalidSize is returned when the requested panel size cannot be driven
// by the selected variant.
var ErrInvalidSize = errors.New("sh110x: invalid display size")

// ErrStartLine is returned by SetDisplayStartLine when the line is past the
// controller's RAM.
var ErrStartLine = errors.New("sh110x: start line out of range")

// DefaultOpts is the recommended default options, matching the 64x128
// FeatherWing OLED.
var DefaultOpts = Opts{
	W:           64,
	H:           128,
	Variant:     SH1107,
	Addr:        0x3C,
	ClockDuring: 400 * physic.KiloHertz,
	ClockAfter:  100 * physic.KiloHertz,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the physical panel size in pixels, before rotation.
	W int
	H int
	// Variant selects the controller command set and RAM geometry.
	Variant Variant
	// The I²C address of the display. 0 selects 0x3C.
	Addr uint16
	// Rotation is the initial orientation of the logical coordinates.
	Rotation Rotation

	// ClockDuring is the I²C bus speed used while flushing. Many SH110x
	// modules and hosts tolerate 400kHz or more. 0 leaves the bus untouched.
	ClockDuring physic.Frequency
	// ClockAfter is the I²C bus speed restored once a flush ends, so slower
	// devices sharing the bus keep working. 0 leaves the bus untouched.
	ClockAfter physic.Frequency
	// MaxTxSize is the largest single bus write in bytes, including the I²C
	// control byte. 0 selects 32 on I²C and 4096 on SPI. The value reported by
	// the bus through conn.Limits wins when it is smaller.
	MaxTxSize int
	// FullPageFlush streams whole pages instead of the dirty columns only.
	FullPageFlush bool

	// Reset is the optional RST pin. When set, a hardware reset is done before
	// the initialization sequence.
	Reset gpio.PinOut
	// CS is the optional SPI chip select pin, driven Low during transfers.
	// Leave nil when the SPI port handles CS.
	CS gpio.PinOut

	// Init replaces the built-in initialization sequence of the variant.
	Init InitSequence
	// Yielder is called at chunk boundaries during a flush. nil never yields.
	Yielder Yielder
}

// NewSPI returns a Dev object that communicates over SPI to a SH110x display
// controller.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS or to opts.CS.
//
// dc is the data/command pin: Low while sending commands, High while sending
// pixels. 3-wire SPI is not supported.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("sh110x: a dc pin is required, 3-wire SPI is not supported")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	if opts.CS != nil {
		if err := opts.CS.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	limit, err := txLimit(opts.MaxTxSize, 4096, c)
	if err != nil {
		return nil, err
	}
	return newDev(&spiTransport{c: c, dc: dc, cs: opts.CS, limit: limit}, opts)
}

// NewI2C returns a Dev object that communicates over I²C to a SH110x display
// controller.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts.Addr == 0x00 {
		opts.Addr = DefaultOpts.Addr
	}
	limit, err := txLimit(opts.MaxTxSize, 32, b)
	if err != nil {
		return nil, err
	}
	return newDev(&i2cTransport{dev: i2c.Dev{Bus: b, Addr: opts.Addr}, limit: limit}, opts)
}

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use. A single goroutine must own all the
// drawing and Display calls.
type Dev struct {
	// Communication
	t transport

	variant Variant
	opts    Opts

	// Physical size controlled by the controller.
	rect image.Rectangle
	// buffer holds the pixels in the controller's page layout, pages of 8
	// rows by W columns. It is never resized.
	buffer *image1bit.VerticalLSB
	// win is in physical coordinates, after rotation.
	win      window
	rotation Rotation
	yield    Yielder

	// The SH1106 RAM is 132 bytes wide but only the center 128 are visible,
	// so writes are offset by two columns.
	colOffset int
	contrast  byte
	halted    bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s.Dev{%s, %s}", d.variant, d.t, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
//
// It returns the logical size, width and height are swapped when rotated by
// 90° or 270°.
func (d *Dev) Bounds() image.Rectangle {
	if d.rotation&1 != 0 {
		return image.Rect(0, 0, d.rect.Dy(), d.rect.Dx())
	}
	return d.rect
}

// Variant returns the controller model.
func (d *Dev) Variant() Variant {
	return d.variant
}

// Draw implements display.Drawer.
//
// The source is composed into the frame buffer in logical coordinates, then
// the modified area is sent to the display. It draws synchronously, once this
// function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && d.rotation == Rotation0 && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, native encoding: fast path!
		copy(d.buffer.Pix, img.Pix)
		d.MarkDirty()
	} else {
		draw.Src.Draw(canvas{d}, r, src, sp)
	}
	return d.Display()
}

// Write replaces the whole frame buffer and sends it to the display.
//
// The format is unusual as each byte represent 8 vertical pixels at a time.
// The format is horizontal bands of 8 pixels high, as returned by Buffer().
// Rotation is not applied.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, fmt.Errorf("sh110x: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer.Pix), len(pixels))
	}
	copy(d.buffer.Pix, pixels)
	d.MarkDirty()
	if err := d.Display(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	if err := d.sendCommand([]byte{_SETCONTRAST, level}); err != nil {
		return fmt.Errorf("sh110x: contrast: %w", err)
	}
	d.contrast = level
	return nil
}

// Dim lowers the contrast to the minimum when dim is true, and restores the
// last contrast set otherwise.
func (d *Dev) Dim(dim bool) error {
	level := d.contrast
	if dim {
		level = 0
	}
	if err := d.sendCommand([]byte{_SETCONTRAST, level}); err != nil {
		return fmt.Errorf("sh110x: dim: %w", err)
	}
	return nil
}

// Invert swaps lit and dark pixels on the panel without touching the RAM.
func (d *Dev) Invert(inverted bool) error {
	cmd := byte(_NORMALDISPLAY)
	if inverted {
		cmd = _INVERTDISPLAY
	}
	if err := d.sendCommand([]byte{cmd}); err != nil {
		return fmt.Errorf("sh110x: invert: %w", err)
	}
	return nil
}

// SetDisplayStartLine sets the RAM row shown on the top line of the panel,
// scrolling the content vertically.
//
// The SH1107 addresses 128 rows with a two bytes command, the SH1106G 64 rows
// encoded in the command byte itself.
func (d *Dev) SetDisplayStartLine(line byte) error {
	if last := d.maxStartLine(); line > last {
		return fmt.Errorf("%w: %s accepts 0 to %d, got %d", ErrStartLine, d.variant, last, line)
	}
	cmd := []byte{_SETSTARTLINE | line}
	if d.variant == SH1107 {
		cmd = []byte{_SETDISPSTARTLINE, line}
	}
	if err := d.sendCommand(cmd); err != nil {
		return fmt.Errorf("sh110x: start line: %w", err)
	}
	return nil
}

func (d *Dev) maxStartLine() byte {
	if d.variant == SH1107 {
		return 127
	}
	return 63
}

// Halt turns the panel off. The RAM content is retained.
//
// The next command sent, including a Display, turns it back on.
func (d *Dev) Halt() error {
	// Not through sendCommand, which would turn a halted panel on first.
	if err := d.t.command([]byte{_DISPLAYOFF}); err != nil {
		return fmt.Errorf("sh110x: halt: %w", err)
	}
	d.halted = true
	return nil
}

// newDev is the common initialization code that is independent of the
// communication protocol (I²C or SPI) being used.
func newDev(t transport, opts *Opts) (*Dev, error) {
	v := opts.Variant
	if v == "" {
		v = SH1107
	}
	if err := validSize(v, opts.W, opts.H); err != nil {
		return nil, err
	}
	d := &Dev{
		t:        t,
		variant:  v,
		opts:     *opts,
		rect:     image.Rect(0, 0, opts.W, opts.H),
		buffer:   image1bit.NewVerticalLSB(image.Rect(0, 0, opts.W, opts.H)),
		rotation: opts.Rotation & 3,
		yield:    opts.Yielder,
	}
	if d.yield == nil {
		d.yield = NoYield{}
	}
	if v == SH1106G {
		d.colOffset = 2
	}
	// The RAM content is unknown after power up, the first Display() sends
	// the whole frame.
	d.win.reset()
	d.MarkDirty()

	seq := opts.Init
	if seq == nil {
		seq = defaultInit(v, opts)
	}
	if c, ok := seq.contrast(); ok {
		d.contrast = c
	}
	if err := d.bringUp(seq); err != nil {
		return nil, err
	}
	return d, nil
}

func validSize(v Variant, w, h int) error {
	switch v {
	case SH1106G:
		if w < 1 || w > 128 || h < 1 || h > 64 {
			return fmt.Errorf("%w: %s supports up to 128x64, got %dx%d", ErrInvalidSize, v, w, h)
		}
	case SH1107:
		if w < 1 || w > 128 || h < 1 || h > 128 {
			return fmt.Errorf("%w: %s supports up to 128x128, got %dx%d", ErrInvalidSize, v, w, h)
		}
	default:
		return fmt.Errorf("sh110x: unknown variant %q", v)
	}
	return nil
}

// minTxSize fits the I²C control byte, the display on command sent after a
// Halt and the 3 bytes page addressing command.
const minTxSize = 5

// txLimit returns the largest write the bus accepts, as bounded by the user
// and by the bus itself.
func txLimit(user, def int, c interface{}) (int, error) {
	limit := def
	if user != 0 {
		if user < minTxSize {
			return 0, fmt.Errorf("sh110x: MaxTxSize %d is too small, need at least %d", user, minTxSize)
		}
		limit = user
	}
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 && m < limit {
			limit = m
		}
	}
	if limit < minTxSize {
		return 0, fmt.Errorf("sh110x: bus transfers of %d bytes are too small, need at least %d", limit, minTxSize)
	}
	return limit, nil
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
