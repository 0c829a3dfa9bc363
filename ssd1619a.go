// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "fmt"

// Waveform tables for SSD1619A class controllers: 35 VS bytes (5 levels
// of 7) followed by 35 TP/RP bytes, 70 bytes total.
var (
	// SSD1619AFullLUT restores the normal black/white waveform after
	// fast or gray updates.
	SSD1619AFullLUT = LUT{
		0xAA, 0x55, 0x40, 0x00, 0x00, 0x00, 0x00,
		0xAA, 0x55, 0x80, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x0F, 0x00, 0x00, 0x00, 0x00,
		0x0F, 0x00, 0x00, 0x00, 0x00,
		0x1F, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}

	// SSD1619AFastLUT is a single drive phase black/white waveform.
	SSD1619AFastLUT = LUT{
		0x90, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x60, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x1F, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}

	// SSD1619AGray4LUT drives the dual RAM 4-level gray mode.
	SSD1619AGray4LUT = LUT{
		0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}
)

// ssd1619a implements Chip. Refreshes run from the OTP waveform unless
// a LUT has been uploaded, in which case the RAM waveform is selected.
type ssd1619a struct{}

func (s *ssd1619a) String() string { return "SSD1619A" }

func (s *ssd1619a) Supports(mode PlaneMode) bool {
	return mode == Mono || mode == TriColor || mode == Gray4
}

func (s *ssd1619a) init(ctrl controller, p *PanelDescriptor) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendByte(setAnalogBlockControl, 0x54)
	ctrl.sendByte(setDigitalBlockControl, 0x3B)
	// Reduces glitching under ACVCOM.
	ctrl.sendByte(acVcomSetting, 0x03, 0x63)
	ctrl.sendByte(boosterSoftStart, 0x8B, 0x9C, 0x96, 0x0F)

	ssd16xxDriverOutput(ctrl, p)
	ctrl.sendByte(dataEntryModeSetting, 0x03)
	ctrl.sendByte(borderWaveformControl, 0x01)

	// Internal temperature sensor, then load the matching waveform.
	ctrl.sendByte(tempSensorControl, 0x80)
	ctrl.sendByte(displayUpdateControl2, 0xB9)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()

	ssd16xxSetWindow(ctrl, p)

	if p.Mode == Mono {
		ssd16xxBlankRed(ctrl, p)
	}
}

func (s *ssd1619a) defaultLUT(p *PanelDescriptor) LUT {
	if p.Mode == Gray4 {
		return SSD1619AGray4LUT
	}
	// Tri-color and mono run fine from OTP.
	return nil
}

func (s *ssd1619a) setLUT(ctrl controller, lut LUT) error {
	if len(lut) != 70 {
		return fmt.Errorf("%w: SSD1619A LUT is 70 bytes, got %d", ErrInvalidBufferSize, len(lut))
	}
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut)
	return nil
}

func (s *ssd1619a) writePlane(ctrl controller, plane int, data []byte) {
	ssd16xxSetCursor(ctrl)
	ctrl.sendCommand(ssd16xxPlaneCmd[plane])
	ctrl.sendData(data)
}

func (s *ssd1619a) refresh(ctrl controller, lut LUT) {
	// 0xF7 runs the OTP waveform, 0xC5 the uploaded one.
	mode := byte(0xF7)
	if lut != nil {
		mode = 0xC5
	}
	ctrl.sendByte(displayUpdateControl2, mode)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

func (s *ssd1619a) sleep(ctrl controller) {
	ssd16xxSleep(ctrl)
}
