// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdif

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// Opts holds the tunables of a SPI bus binding. The zero value selects
// the defaults below.
type Opts struct {
	// Speed is the SPI clock frequency. Defaults to 5 MHz, the fastest
	// clock the common panel breakouts are specified for.
	Speed physic.Frequency

	// BusyLow inverts the busy polarity: SSD16xx parts drive the busy
	// line high while working (the default), UC81xx parts drive it low.
	BusyLow bool

	// PollInterval is the busy line sampling period. Defaults to 10ms.
	PollInterval time.Duration

	// ResetPulse is how long the reset line is held low. Defaults to
	// 200ms.
	ResetPulse time.Duration

	// ResetSettle is how long to wait after releasing reset before the
	// controller accepts commands. Defaults to 200ms.
	ResetSettle time.Duration
}

// UC8176Opts returns options for a UC81xx style wiring, whose busy
// line is active low.
func UC8176Opts() *Opts {
	return &Opts{BusyLow: true}
}

// SPI drives a controller over a SPI port plus the DC, CS, RST and BUSY
// control lines. It implements Interface.
type SPI struct {
	c    spi.Conn
	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO
	opts Opts
}

// NewSPI binds a SPI port and the four control lines into an Interface.
//
// dc selects between command and data bytes, cs frames each transfer,
// rst is the active low hardware reset and busy is the controller's
// busy output. opts may be nil for defaults.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*SPI, error) {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Speed == 0 {
		o.Speed = 5 * physic.MegaHertz
	}
	if o.PollInterval == 0 {
		o.PollInterval = 10 * time.Millisecond
	}
	if o.ResetPulse == 0 {
		o.ResetPulse = 200 * time.Millisecond
	}
	if o.ResetSettle == 0 {
		o.ResetSettle = 200 * time.Millisecond
	}
	c, err := p.Connect(o.Speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	s := &SPI{c: c, dc: dc, cs: cs, rst: rst, busy: busy, opts: o}
	if err := s.cs.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	if err := s.dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	if err := s.rst.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	if err := s.busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
	return s, nil
}

// NewHat binds the standard Waveshare e-paper hat wiring on a Raspberry
// Pi: DC on P1_22, CS on P1_24, RST on P1_11 and BUSY on P1_18.
func NewHat(p spi.Port, opts *Opts) (*SPI, error) {
	return NewSPI(p, rpi.P1_22, rpi.P1_24, rpi.P1_11, rpi.P1_18, opts)
}

func (s *SPI) String() string {
	return fmt.Sprintf("epdif.SPI{%s, dc:%s, cs:%s, rst:%s, busy:%s}", s.c, s.dc, s.cs, s.rst, s.busy)
}

// WriteCommand implements Interface.
func (s *SPI) WriteCommand(cmd byte) error {
	if err := s.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: dc: %v", ErrTransfer, err)
	}
	return s.tx([]byte{cmd})
}

// WriteData implements Interface.
//
// Payloads longer than the SPI driver's transfer limit are split into
// 4096 byte transactions; DC stays in data position throughout.
func (s *SPI) WriteData(data []byte) error {
	if err := s.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: dc: %v", ErrTransfer, err)
	}
	for len(data) > 0 {
		n := len(data)
		if n > 4096 {
			n = 4096
		}
		if err := s.tx(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (s *SPI) tx(w []byte) error {
	if err := s.cs.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: cs: %v", ErrTransfer, err)
	}
	txErr := s.c.Tx(w, nil)
	if err := s.cs.Out(gpio.High); err != nil && txErr == nil {
		txErr = err
	}
	if txErr != nil {
		return fmt.Errorf("%w: %v", ErrTransfer, txErr)
	}
	return nil
}

// Reset implements Interface. It pulses the reset line low and waits
// for the controller to settle.
func (s *SPI) Reset() error {
	if err := s.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: rst: %v", ErrTransfer, err)
	}
	time.Sleep(s.opts.ResetPulse)
	if err := s.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: rst: %v", ErrTransfer, err)
	}
	time.Sleep(s.opts.ResetPulse)
	if err := s.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: rst: %v", ErrTransfer, err)
	}
	time.Sleep(s.opts.ResetSettle)
	return nil
}

// WaitUntilReady implements Interface. It polls the busy line until it
// leaves the busy level or the timeout elapses.
func (s *SPI) WaitUntilReady(timeout time.Duration) error {
	busy := gpio.High
	if s.opts.BusyLow {
		busy = gpio.Low
	}
	deadline := time.Now().Add(timeout)
	for s.busy.Read() == busy {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %s", ErrBusyTimeout, timeout)
		}
		time.Sleep(s.opts.PollInterval)
	}
	return nil
}

var _ Interface = &SPI{}
