// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "errors"

// Sentinel errors returned by Dev operations. Use errors.Is to test for
// them; the returned errors usually wrap these with context.
var (
	// ErrNotReady is returned when an operation is requested in a state
	// that cannot serve it, for example DisplayFrame while the panel is
	// sleeping or faulted. The request is rejected, never queued.
	ErrNotReady = errors.New("epd: device not ready")

	// ErrInvalidBufferSize is returned when a frame buffer's plane count
	// or plane length does not match the panel geometry. The device state
	// is left untouched and nothing is sent on the bus.
	ErrInvalidBufferSize = errors.New("epd: invalid buffer size")

	// ErrUnsupported is returned when a chip variant cannot serve a
	// request, such as a LUT upload on a controller with a fixed OTP
	// waveform, or a plane mode the chip has no RAM for.
	ErrUnsupported = errors.New("epd: unsupported feature")
)
