// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"time"

	"github.com/GermanBionicSystems/epd/epdif"
)

// errorHandler runs chip sequences against a bus, latching the first
// error. It implements controller.
type errorHandler struct {
	bus     epdif.Interface
	timeout time.Duration
	err     error
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.WriteCommand(cmd)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.WriteData(data)
}

// sendByte sends a command followed by its (short) parameter bytes.
func (eh *errorHandler) sendByte(cmd byte, data ...byte) {
	eh.sendCommand(cmd)
	if len(data) > 0 {
		eh.sendData(data)
	}
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.WaitUntilReady(eh.timeout)
}

func (eh *errorHandler) reset() {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.Reset()
}
