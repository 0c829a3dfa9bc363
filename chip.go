// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// Chip is one controller variant. The exported values below are the
// supported variants; the interface is sealed, its sequence methods
// take the package private controller.
//
// Chip methods are pure command sequences: they hold no state and are
// safe to share between any number of Dev values.
type Chip interface {
	// String returns the chip name, for example "SSD1680".
	String() string
	// Supports reports whether the chip can drive a panel in the given
	// plane mode.
	Supports(mode PlaneMode) bool

	// init brings the controller from post-reset to configured.
	init(ctrl controller, p *PanelDescriptor)
	// defaultLUT returns the waveform to upload when the panel preset
	// does not name one. nil means use the chip's factory waveform.
	defaultLUT(p *PanelDescriptor) LUT
	// setLUT uploads a waveform table. Chips with a fixed OTP waveform
	// return ErrUnsupported.
	setLUT(ctrl controller, lut LUT) error
	// writePlane streams one bit plane into controller RAM. plane 0 is
	// black/white, plane 1 the red/yellow or gray high-bit channel.
	writePlane(ctrl controller, plane int, data []byte)
	// refresh triggers the panel waveform and blocks until it finishes.
	// lut is the currently active table, nil when running from OTP.
	refresh(ctrl controller, lut LUT)
	// sleep puts the controller into deep sleep. RAM and LUT are lost.
	sleep(ctrl controller)
}

// Supported chip variants.
var (
	// ChipSSD1608 drives SSD1608 class controllers with the full
	// refresh waveform.
	ChipSSD1608 Chip = &ssd1608{lut: SSD1608FullLUT}
	// ChipSSD1608Fast is ChipSSD1608 with the short fast-update
	// waveform as default. Faster, more ghosting.
	ChipSSD1608Fast Chip = &ssd1608{fast: true, lut: SSD1608FastLUT}
	// ChipSSD1680 drives SSD1680 class controllers from their factory
	// waveform.
	ChipSSD1680 Chip = &ssd1680{}
	// ChipSSD1619A drives SSD1619A class controllers.
	ChipSSD1619A Chip = &ssd1619a{}
	// ChipUC8176 drives UC8176 class controllers. Note the inverted
	// busy line; pass epdif.UC8176Opts when wiring over SPI.
	ChipUC8176 Chip = &uc8176{}
)

// Helpers shared by the SSD16xx variants. They all address RAM through
// the same window/cursor registers and keep the black/white plane at
// 0x24 and the second plane at 0x26.

var ssd16xxPlaneCmd = [2]byte{writeRAMBW, writeRAMRed}

func ssd16xxSetWindow(ctrl controller, p *PanelDescriptor) {
	w := (p.Width - 1) >> 3
	h := p.Height - 1
	ctrl.sendByte(setRAMXRange, 0x00, byte(w))
	ctrl.sendByte(setRAMYRange, 0x00, 0x00, byte(h&0xFF), byte(h>>8))
}

func ssd16xxSetCursor(ctrl controller) {
	ctrl.sendByte(setRAMXCursor, 0x00)
	ctrl.sendByte(setRAMYCursor, 0x00, 0x00)
}

func ssd16xxDriverOutput(ctrl controller, p *PanelDescriptor) {
	h := p.Height - 1
	ctrl.sendByte(driverOutputControl, byte(h&0xFF), byte(h>>8), 0x00)
}

// ssd16xxBlankRed zeroes the second RAM so a mono frame shows no color
// residue. Done once at init; mono frames never touch that RAM again.
func ssd16xxBlankRed(ctrl controller, p *PanelDescriptor) {
	ssd16xxSetCursor(ctrl)
	ctrl.sendCommand(writeRAMRed)
	ctrl.sendData(make([]byte, p.PlaneSize()))
}

func ssd16xxSleep(ctrl controller) {
	ctrl.sendByte(deepSleepMode, 0x01)
}
