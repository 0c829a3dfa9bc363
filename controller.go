// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// controller is the narrow surface chip sequences are written against.
// Implementations latch the first error and turn subsequent calls into
// no-ops, so sequences read straight line and check the error once at
// the end. The fake used in tests records the traffic instead.
type controller interface {
	sendCommand(cmd byte)
	sendData(data []byte)
	sendByte(cmd byte, data ...byte)
	waitUntilIdle()
	reset()
}
