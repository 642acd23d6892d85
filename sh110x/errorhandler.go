// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh110x

import (
	"periph.io/x/conn/v3/gpio"
)

// errorHandler chains the steps of a SPI transfer, the first failure skips
// the remaining ones.
type errorHandler struct {
	t   *spiTransport
	err error
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.t.cs == nil {
		return
	}
	eh.err = eh.t.cs.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.t.dc.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.t.c.Tx(w, nil)
}

// releaseCS deasserts CS even after a failure so the bus is left usable by
// other devices.
func (eh *errorHandler) releaseCS() {
	if eh.t.cs == nil {
		return
	}
	if err := eh.t.cs.Out(gpio.High); eh.err == nil {
		eh.err = err
	}
}
