// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd implements drivers for SPI-connected e-paper display
// controllers.
//
// The package splits the problem in three layers. Package epdif holds the
// bus capability: the four operations (write command, write data, reset,
// wait until ready) a host platform must provide to make a display
// reachable, along with an implementation over periph.io SPI and GPIO.
// Chip values encode the controller specific command sequences for the
// supported families (SSD1608, SSD1680, SSD1619A, UC8176). Dev binds a
// chip to a panel preset and a bus and exposes the uniform lifecycle:
// Init, DisplayFrame, SetLUT, Sleep, Wake.
//
// Frame contents travel as FrameBuffer values, one bit packed plane per
// color channel. Pack builds them from any image.Image; Fit and Dither
// prepare arbitrary images for packing.
//
// Package epdsim contains a simulated bus that renders refreshed frames to
// a terminal, useful for development without hardware attached.
package epd
