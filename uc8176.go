// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// uc8176 implements Chip. UC8176 parts differ from the SSD16xx family
// in two ways that matter here: the busy line is active low (wire with
// epdif.UC8176Opts), and the waveform is fixed in OTP so setLUT is not
// available.
type uc8176 struct{}

func (u *uc8176) String() string { return "UC8176" }

func (u *uc8176) Supports(mode PlaneMode) bool {
	return mode == Mono || mode == TriColor
}

func (u *uc8176) init(ctrl controller, p *PanelDescriptor) {
	ctrl.waitUntilIdle()

	ctrl.sendByte(ucPowerSetting, 0x03, 0x00, 0x2B, 0x2B, 0x13)
	ctrl.sendByte(ucBoosterSoftStart, 0x17, 0x17, 0x17)
	ctrl.sendCommand(ucPowerOn)
	ctrl.waitUntilIdle()

	ctrl.sendByte(ucPLLControl, 0x3C)
	ctrl.sendByte(ucVcmDCSetting, 0x12)
	ctrl.sendByte(ucVcomInterval, 0x97)
	ctrl.sendByte(ucResolution,
		byte(p.Width>>8), byte(p.Width),
		byte(p.Height>>8), byte(p.Height))

	// Blank the red channel so stale RAM never bleeds into the first
	// frame; mono frames never write it at all.
	ctrl.sendCommand(ucDataTransmission2)
	ctrl.sendData(make([]byte, p.PlaneSize()))
}

func (u *uc8176) defaultLUT(p *PanelDescriptor) LUT { return nil }

func (u *uc8176) setLUT(ctrl controller, lut LUT) error {
	return ErrUnsupported
}

func (u *uc8176) writePlane(ctrl controller, plane int, data []byte) {
	cmd := ucDataTransmission1
	if plane == 1 {
		cmd = ucDataTransmission2
	}
	ctrl.sendCommand(cmd)
	ctrl.sendData(data)
}

func (u *uc8176) refresh(ctrl controller, lut LUT) {
	ctrl.sendCommand(ucPowerOn)
	ctrl.waitUntilIdle()
	ctrl.sendCommand(ucDisplayRefresh)
	ctrl.waitUntilIdle()
}

func (u *uc8176) sleep(ctrl controller) {
	ctrl.sendCommand(ucPowerOff)
	ctrl.waitUntilIdle()
	ctrl.sendByte(ucDeepSleep, 0xA5)
}
