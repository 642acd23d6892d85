// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110xsim

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Port returns a 4-wire SPI port connected to the panel, and the D/C pin to
// pass to the driver. The level of the pin during a transfer tells commands
// (Low) from pixels (High).
func (p *Panel) Port() (spi.PortCloser, *gpiotest.Pin) {
	dc := &gpiotest.Pin{N: "DC", L: gpio.Low}
	return &port{p: p, dc: dc}, dc
}

type port struct {
	p  *Panel
	dc *gpiotest.Pin
}

func (s *port) String() string {
	return s.p.String()
}

func (s *port) Close() error {
	return nil
}

func (s *port) LimitSpeed(f physic.Frequency) error {
	return nil
}

func (s *port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("sh110xsim: %d bits per word is not supported", bits)
	}
	_ = s.p.SetSpeed(f)
	return &spiConn{s: s}, nil
}

type spiConn struct {
	s *port
}

func (c *spiConn) String() string {
	return c.s.String()
}

func (c *spiConn) Duplex() conn.Duplex {
	return conn.Half
}

func (c *spiConn) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("sh110xsim: reads are not supported")
	}
	if len(w) == 0 {
		return nil
	}
	c.s.p.mu.Lock()
	defer c.s.p.mu.Unlock()
	return c.s.p.txLocked(c.s.dc.Read() == gpio.High, w, len(w))
}

func (c *spiConn) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if err := c.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

func (c *spiConn) MaxTxSize() int {
	return c.s.p.MaxTxSize()
}

var _ spi.Conn = &spiConn{}
var _ conn.Limits = &spiConn{}
