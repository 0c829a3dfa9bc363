// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// SSD16xx family command set (SSD1608, SSD1680, SSD1619A).
const (
	driverOutputControl    byte = 0x01
	sourceDrivingVoltage   byte = 0x04
	boosterSoftStart       byte = 0x0C
	deepSleepMode          byte = 0x10
	dataEntryModeSetting   byte = 0x11
	swReset                byte = 0x12
	tempSensorControl      byte = 0x18
	masterActivation       byte = 0x20
	displayUpdateControl1  byte = 0x21
	displayUpdateControl2  byte = 0x22
	writeRAMBW             byte = 0x24
	writeRAMRed            byte = 0x26
	acVcomSetting          byte = 0x2B
	writeVcomRegister      byte = 0x2C
	writeLutRegister       byte = 0x32
	setDummyLinePeriod     byte = 0x3A
	setGateLineWidth       byte = 0x3B
	borderWaveformControl  byte = 0x3C
	setRAMXRange           byte = 0x44
	setRAMYRange           byte = 0x45
	setRAMXCursor          byte = 0x4E
	setRAMYCursor          byte = 0x4F
	setAnalogBlockControl  byte = 0x74
	setDigitalBlockControl byte = 0x7E
	nop                    byte = 0x7F
	terminateFrameWrite    byte = 0xFF
)

// UC81xx family command set.
const (
	ucPowerSetting      byte = 0x01
	ucPowerOff          byte = 0x02
	ucPowerOn           byte = 0x04
	ucBoosterSoftStart  byte = 0x06
	ucDeepSleep         byte = 0x07
	ucDataTransmission1 byte = 0x10
	ucDisplayRefresh    byte = 0x12
	ucDataTransmission2 byte = 0x13
	ucPLLControl        byte = 0x30
	ucVcomInterval      byte = 0x50
	ucResolution        byte = 0x61
	ucVcmDCSetting      byte = 0x82
)
