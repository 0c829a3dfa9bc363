// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdif defines the bus capability an e-paper controller is
// driven through: command and data writes distinguished by the DC line,
// a hardware reset pulse, and a bounded wait on the busy line.
//
// The canonical implementation is SPI (see NewSPI and NewHat), but
// anything honoring the contract works; package epdsim drives the same
// chip sequences against a terminal renderer.
package epdif

import (
	"errors"
	"time"
)

// Errors returned by Interface implementations. Drivers treat both as
// fatal for the current operation: the controller state is unknown
// afterwards and a full re-init is required.
var (
	// ErrBusyTimeout means the busy line did not release within the
	// allotted time.
	ErrBusyTimeout = errors.New("epdif: busy line timeout")

	// ErrTransfer means a bus or control line operation failed.
	ErrTransfer = errors.New("epdif: bus transfer failed")
)

// Interface is the control surface of an e-paper controller.
//
// Implementations are not required to be concurrency safe; drivers call
// them from a single goroutine and block until each operation completes.
type Interface interface {
	// WriteCommand sends a one byte command with the DC line in command
	// position.
	WriteCommand(cmd byte) error
	// WriteData sends a payload with the DC line in data position. Large
	// payloads may be split into several bus transactions.
	WriteData(data []byte) error
	// Reset pulses the hardware reset line and waits for the controller
	// to come back up.
	Reset() error
	// WaitUntilReady blocks until the busy line reports ready, or returns
	// an error wrapping ErrBusyTimeout after the timeout elapses.
	WaitUntilReady(timeout time.Duration) error
}
