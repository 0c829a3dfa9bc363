// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "fmt"

// Waveform tables for SSD1608 class controllers. The format is 20 VS
// bytes followed by 8 TP bytes and 2 option bytes, 30 bytes total.
var (
	// SSD1608FullLUT is the standard full refresh waveform: several
	// inversion cycles, no ghosting, around two seconds per refresh.
	SSD1608FullLUT = LUT{
		0x50, 0xAA, 0x55, 0xAA, 0x11,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0x1F, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}

	// SSD1608FastLUT is a single short drive phase. Sub-second refresh
	// at the cost of ghosting; run a full refresh now and then.
	SSD1608FastLUT = LUT{
		0x99, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x0A, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}

	// SSD1608Gray4LUT drives the dual RAM 4-level gray mode: one very
	// short darkening pulse whose effect depends on both RAM planes.
	SSD1608Gray4LUT = LUT{
		0x11, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}
)

// ssd1608 implements Chip. fast selects the short waveform as the
// fallback default, nothing else differs between the two variants.
type ssd1608 struct {
	fast bool
	lut  LUT
}

func (s *ssd1608) String() string {
	if s.fast {
		return "SSD1608Fast"
	}
	return "SSD1608"
}

func (s *ssd1608) Supports(mode PlaneMode) bool {
	return mode == Mono || mode == Gray4
}

func (s *ssd1608) init(ctrl controller, p *PanelDescriptor) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendByte(boosterSoftStart, 0xD7, 0xD6, 0x9D)
	ctrl.sendByte(writeVcomRegister, 0x7C)
	ctrl.sendByte(setDummyLinePeriod, 0x1A)
	ctrl.sendByte(setGateLineWidth, 0x08)
	ctrl.sendByte(borderWaveformControl, 0xE0)
	ctrl.sendByte(dataEntryModeSetting, 0x03)

	ssd16xxDriverOutput(ctrl, p)
	ssd16xxSetWindow(ctrl, p)

	if p.Mode == Gray4 {
		// Lower drive voltages and the shortest gate width make the
		// four levels distinguishable.
		ctrl.sendByte(writeVcomRegister, 0xB8)
		ctrl.sendByte(sourceDrivingVoltage, 0x00)
		ctrl.sendByte(setGateLineWidth, 0x00)
	}
}

func (s *ssd1608) defaultLUT(p *PanelDescriptor) LUT {
	if p.Mode == Gray4 {
		return SSD1608Gray4LUT
	}
	return s.lut
}

func (s *ssd1608) setLUT(ctrl controller, lut LUT) error {
	if len(lut) != 30 {
		return fmt.Errorf("%w: SSD1608 LUT is 30 bytes, got %d", ErrInvalidBufferSize, len(lut))
	}
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut)
	return nil
}

func (s *ssd1608) writePlane(ctrl controller, plane int, data []byte) {
	ssd16xxSetCursor(ctrl)
	ctrl.sendCommand(ssd16xxPlaneCmd[plane])
	ctrl.sendData(data)
	ctrl.sendCommand(terminateFrameWrite)
}

func (s *ssd1608) refresh(ctrl controller, lut LUT) {
	ctrl.sendByte(displayUpdateControl2, 0xC4)
	ctrl.sendCommand(masterActivation)
	ctrl.sendCommand(terminateFrameWrite)
	ctrl.waitUntilIdle()
}

func (s *ssd1608) sleep(ctrl controller) {
	ssd16xxSleep(ctrl)
}
