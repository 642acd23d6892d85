// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// transport abstracts the bus the controller is on.
//
// Every write is atomic: it is a single bus transaction.
type transport interface {
	fmt.Stringer
	// command sends a stream of command bytes.
	command(c []byte) error
	// data sends a stream of pixel bytes.
	data(p []byte) error
	// maxPayload is the largest slice accepted by command and data.
	maxPayload() int
	// setSpeed changes the bus clock. 0 is ignored.
	setSpeed(f physic.Frequency) error
}

// i2cTransport prefixes every write with the control byte telling the
// controller whether commands or pixels follow.
type i2cTransport struct {
	dev   i2c.Dev
	limit int
	// buf is reused across writes to not allocate for every chunk.
	buf []byte
}

func (t *i2cTransport) String() string {
	return t.dev.String()
}

func (t *i2cTransport) command(c []byte) error {
	return t.tx(i2cCmd, c)
}

func (t *i2cTransport) data(p []byte) error {
	return t.tx(i2cData, p)
}

func (t *i2cTransport) tx(control byte, p []byte) error {
	t.buf = append(t.buf[:0], control)
	t.buf = append(t.buf, p...)
	return t.dev.Tx(t.buf, nil)
}

func (t *i2cTransport) maxPayload() int {
	return t.limit - 1
}

func (t *i2cTransport) setSpeed(f physic.Frequency) error {
	if f == 0 {
		return nil
	}
	return t.dev.Bus.SetSpeed(f)
}

// spiTransport uses the D/C pin to discriminate commands from pixels.
type spiTransport struct {
	c     conn.Conn
	dc    gpio.PinOut
	cs    gpio.PinOut
	limit int
}

func (t *spiTransport) String() string {
	if t.cs != nil {
		return fmt.Sprintf("%s, %s, %s", t.c, t.dc, t.cs)
	}
	return fmt.Sprintf("%s, %s", t.c, t.dc)
}

func (t *spiTransport) command(c []byte) error {
	return t.tx(gpio.Low, c)
}

func (t *spiTransport) data(p []byte) error {
	return t.tx(gpio.High, p)
}

func (t *spiTransport) tx(dc gpio.Level, p []byte) error {
	eh := errorHandler{t: t}
	eh.csOut(gpio.Low)
	eh.dcOut(dc)
	eh.cTx(p)
	eh.releaseCS()
	return eh.err
}

func (t *spiTransport) maxPayload() int {
	return t.limit
}

// setSpeed is a no-op, the SPI clock is set once by Connect.
func (t *spiTransport) setSpeed(f physic.Frequency) error {
	return nil
}
