// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// ssd1680 implements Chip. The SSD1680 always refreshes from its OTP
// waveform, so there is nothing to upload and SetLUT is not available.
type ssd1680 struct{}

func (s *ssd1680) String() string { return "SSD1680" }

func (s *ssd1680) Supports(mode PlaneMode) bool {
	return mode == Mono || mode == TriColor
}

func (s *ssd1680) init(ctrl controller, p *PanelDescriptor) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ssd16xxDriverOutput(ctrl, p)
	ctrl.sendByte(dataEntryModeSetting, 0x03)
	ctrl.sendByte(displayUpdateControl1, 0x00, 0x80)
	ssd16xxSetWindow(ctrl, p)

	if p.Mode == Mono {
		ssd16xxBlankRed(ctrl, p)
	}
}

func (s *ssd1680) defaultLUT(p *PanelDescriptor) LUT { return nil }

func (s *ssd1680) setLUT(ctrl controller, lut LUT) error {
	return ErrUnsupported
}

func (s *ssd1680) writePlane(ctrl controller, plane int, data []byte) {
	ssd16xxSetCursor(ctrl)
	ctrl.sendCommand(ssd16xxPlaneCmd[plane])
	ctrl.sendData(data)
	ctrl.sendCommand(nop)
}

func (s *ssd1680) refresh(ctrl controller, lut LUT) {
	ctrl.sendByte(displayUpdateControl2, 0xF7)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

func (s *ssd1680) sleep(ctrl controller) {
	ssd16xxSleep(ctrl)
}
