// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/GermanBionicSystems/epd/epdif"
)

// DefaultBusyTimeout bounds every busy wait. Full refreshes on large
// panels take up to ~20s in the cold; anything beyond this means the
// panel is gone.
const DefaultBusyTimeout = 30 * time.Second

// Opts holds the optional knobs for New.
type Opts struct {
	// BusyTimeout overrides DefaultBusyTimeout.
	BusyTimeout time.Duration
}

// Dev is a handle to one e-paper panel. It is a display.Drawer.
//
// A Dev is a strict state machine: frames are only accepted while
// Idle, everything else returns ErrNotReady without touching the bus.
// Bus failures and busy timeouts latch the Faulted state; only Init
// clears it. Dev is not safe for concurrent use.
type Dev struct {
	bus     epdif.Interface
	chip    Chip
	panel   PanelDescriptor
	timeout time.Duration

	lut   LUT
	state State
	cause error
}

// New binds a chip variant and a panel descriptor to a bus. The device
// starts Uninitialized; call Init before displaying anything.
func New(bus epdif.Interface, chip Chip, panel PanelDescriptor, opts *Opts) (*Dev, error) {
	if !chip.Supports(panel.Mode) {
		return nil, fmt.Errorf("%w: %s cannot drive %s panels", ErrUnsupported, chip, panel.Mode)
	}
	timeout := DefaultBusyTimeout
	if opts != nil && opts.BusyTimeout != 0 {
		timeout = opts.BusyTimeout
	}
	return &Dev{bus: bus, chip: chip, panel: panel, timeout: timeout}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, %s}", d.chip, &d.panel)
}

// State returns the current lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Fault returns the error that latched the Faulted state, or nil.
func (d *Dev) Fault() error {
	return d.cause
}

// Panel returns a copy of the panel descriptor the device drives.
func (d *Dev) Panel() PanelDescriptor {
	p := d.panel
	p.DefaultLUT = append(LUT(nil), p.DefaultLUT...)
	if len(p.DefaultLUT) == 0 {
		p.DefaultLUT = nil
	}
	return p
}

func (d *Dev) newEH() *errorHandler {
	return &errorHandler{bus: d.bus, timeout: d.timeout}
}

// finish latches the sequence outcome: on error the device faults with
// that cause, otherwise it moves to next.
func (d *Dev) finish(eh *errorHandler, next State) error {
	if eh.err != nil {
		d.state = Faulted
		d.cause = eh.err
		return eh.err
	}
	d.state = next
	return nil
}

// Init resets and configures the controller, uploads the panel's
// waveform if it has one, and leaves the device Idle. It is accepted
// in every state and is the only way out of Faulted; running it on an
// already initialized device performs the exact same sequence again.
func (d *Dev) Init() error {
	d.state = Initializing
	d.cause = nil
	eh := d.newEH()
	eh.reset()
	d.chip.init(eh, &d.panel)

	lut := d.panel.DefaultLUT
	if lut == nil {
		lut = d.chip.defaultLUT(&d.panel)
	}
	if lut != nil {
		if err := d.chip.setLUT(eh, lut); err != nil {
			d.state = Faulted
			d.cause = err
			return err
		}
	}
	eh.waitUntilIdle()
	if err := d.finish(eh, Idle); err != nil {
		return err
	}
	d.lut = append(LUT(nil), lut...)
	if len(d.lut) == 0 {
		d.lut = nil
	}
	return nil
}

// SetLUT uploads a waveform table, replacing the active one until the
// next Init or Sleep. Only accepted while Idle. Chips with fixed OTP
// waveforms return ErrUnsupported; a wrong length LUT is rejected
// before anything is sent.
func (d *Dev) SetLUT(lut LUT) error {
	if d.state != Idle {
		return fmt.Errorf("%w: SetLUT in state %s", ErrNotReady, d.state)
	}
	eh := d.newEH()
	if err := d.chip.setLUT(eh, lut); err != nil {
		return err
	}
	if err := d.finish(eh, Idle); err != nil {
		return err
	}
	d.lut = append(LUT(nil), lut...)
	return nil
}

// DisplayFrame transfers a frame and refreshes the panel, blocking
// until the refresh completes. Only accepted while Idle; the frame
// must match the panel geometry exactly. Each plane is transferred in
// a single pass, black/white first.
func (d *Dev) DisplayFrame(fb *FrameBuffer) error {
	if d.state != Idle {
		return fmt.Errorf("%w: DisplayFrame in state %s", ErrNotReady, d.state)
	}
	if err := fb.check(&d.panel); err != nil {
		return err
	}
	d.state = TransferringData
	eh := d.newEH()
	for i, plane := range fb.planes {
		d.chip.writePlane(eh, i, plane)
	}
	if err := d.finish(eh, Refreshing); err != nil {
		return err
	}
	d.chip.refresh(eh, d.lut)
	return d.finish(eh, Idle)
}

// Sleep puts the controller into deep sleep. The panel keeps showing
// the last frame without power, but controller RAM and any uploaded
// LUT are lost; Wake runs a full re-init. Only accepted while Idle.
func (d *Dev) Sleep() error {
	if d.state != Idle {
		return fmt.Errorf("%w: Sleep in state %s", ErrNotReady, d.state)
	}
	eh := d.newEH()
	d.chip.sleep(eh)
	if err := d.finish(eh, Sleeping); err != nil {
		return err
	}
	d.lut = nil
	return nil
}

// Wake brings the controller out of deep sleep. Deep sleep wipes RAM
// and LUT, so this is a full Init.
func (d *Dev) Wake() error {
	return d.Init()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	switch d.panel.Mode {
	case TriColor:
		return TriColorPalette
	case Gray4:
		return color.GrayModel
	default:
		return image1bit.BitModel
	}
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.panel.Bounds()
}

// Draw implements display.Drawer. Only full frame updates are
// supported: r must cover Bounds exactly.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if r != d.Bounds() {
		return fmt.Errorf("epd: only full frame updates are supported")
	}
	next := image.NewRGBA(d.Bounds())
	draw.Draw(next, next.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(next, r, src, sp, draw.Over)
	fb, err := Pack(&d.panel, next)
	if err != nil {
		return err
	}
	return d.DisplayFrame(fb)
}

// Halt implements conn.Resource. It clears the panel to white and puts
// the controller to sleep.
func (d *Dev) Halt() error {
	if err := d.DisplayFrame(NewFrameBuffer(&d.panel)); err != nil {
		return err
	}
	return d.Sleep()
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
