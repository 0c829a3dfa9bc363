// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd_test

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/epd"
	"github.com/GermanBionicSystems/epd/epdif"
	"github.com/GermanBionicSystems/epd/epdsim"
)

func newSim(t *testing.T, f epd.Family, size string) (*epdsim.Sim, epd.PanelDescriptor) {
	t.Helper()
	panel, err := epd.Lookup(f, size)
	if err != nil {
		t.Fatal(err)
	}
	return epdsim.New(panel, &epdsim.Opts{W: io.Discard}), panel
}

func newDev(t *testing.T, sim *epdsim.Sim, chip epd.Chip, panel epd.PanelDescriptor) *epd.Dev {
	t.Helper()
	dev, err := epd.New(sim, chip, panel, nil)
	if err != nil {
		t.Fatal(err)
	}
	return dev
}

// countCmd returns how many of the recorded commands are cmd.
func countCmd(records []epdsim.Record, cmd byte) int {
	n := 0
	for _, r := range records {
		if r.Cmd == cmd {
			n++
		}
	}
	return n
}

func TestNewRejectsUnsupportedMode(t *testing.T) {
	panel, err := epd.Lookup(epd.UC8176, "4in2")
	if err != nil {
		t.Fatal(err)
	}
	panel.Mode = epd.Gray4
	sim := epdsim.New(panel, &epdsim.Opts{W: io.Discard})

	if _, err := epd.New(sim, epd.ChipUC8176, panel, nil); !errors.Is(err, epd.ErrUnsupported) {
		t.Errorf("New() = %v, want ErrUnsupported", err)
	}
}

func TestLifecycle(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)

	if got := dev.State(); got != epd.Uninitialized {
		t.Fatalf("State() = %s, want Uninitialized", got)
	}

	// Nothing is accepted, and nothing reaches the bus, before Init.
	if err := dev.DisplayFrame(epd.NewFrameBuffer(&panel)); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("DisplayFrame() before Init = %v, want ErrNotReady", err)
	}
	if n := len(sim.Records()); n != 0 {
		t.Fatalf("%d commands on the bus before Init", n)
	}

	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Fatalf("State() after Init = %s, want Idle", got)
	}
	if got := sim.Resets(); got != 1 {
		t.Fatalf("Resets() = %d, want 1", got)
	}

	if err := dev.DisplayFrame(epd.NewFrameBuffer(&panel)); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Fatalf("State() after DisplayFrame = %s, want Idle", got)
	}
	if got := sim.FrameCount(); got != 1 {
		t.Fatalf("FrameCount() = %d, want 1", got)
	}

	if err := dev.Sleep(); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Sleeping {
		t.Fatalf("State() after Sleep = %s, want Sleeping", got)
	}
	if !sim.Sleeping() {
		t.Error("Sleeping() = false after Sleep")
	}
	if err := dev.DisplayFrame(epd.NewFrameBuffer(&panel)); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("DisplayFrame() while Sleeping = %v, want ErrNotReady", err)
	}
	if err := dev.Sleep(); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("Sleep() while Sleeping = %v, want ErrNotReady", err)
	}

	// Deep sleep wipes RAM and LUT; Wake is a full re-init.
	if err := dev.Wake(); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Fatalf("State() after Wake = %s, want Idle", got)
	}
	if got := sim.Resets(); got != 2 {
		t.Fatalf("Resets() after Wake = %d, want 2", got)
	}
}

func TestInitIsRepeatable(t *testing.T) {
	for _, tc := range []struct {
		name string
		chip epd.Chip
		f    epd.Family
		size string
	}{
		{"ssd1680", epd.ChipSSD1680, epd.SSD1680, "2in9"},
		{"ssd1608 with lut upload", epd.ChipSSD1608, epd.SSD1608, "2in13g"},
		{"uc8176", epd.ChipUC8176, epd.UC8176, "4in2"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sim, panel := newSim(t, tc.f, tc.size)
			dev := newDev(t, sim, tc.chip, panel)

			if err := dev.Init(); err != nil {
				t.Fatal(err)
			}
			first := len(sim.Records())
			if err := dev.Init(); err != nil {
				t.Fatal(err)
			}

			records := sim.Records()
			if len(records) != 2*first {
				t.Fatalf("second Init sent %d commands, first sent %d", len(records)-first, first)
			}
			if diff := cmp.Diff(records[first:], records[:first]); diff != "" {
				t.Errorf("second Init differs from first (-second +first):\n%s", diff)
			}
		})
	}
}

func TestDisplayFrameTransfersEachPlaneOnce(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9b")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	before := len(sim.Records())

	bw := bytes.Repeat([]byte{0xAA}, panel.PlaneSize())
	red := bytes.Repeat([]byte{0x55}, panel.PlaneSize())
	fb, err := epd.FromPlanes(&panel, bw, red)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.DisplayFrame(fb); err != nil {
		t.Fatal(err)
	}

	frame := sim.Records()[before:]
	if got := countCmd(frame, 0x24); got != 1 {
		t.Errorf("%d black/white transfers, want 1", got)
	}
	if got := countCmd(frame, 0x26); got != 1 {
		t.Errorf("%d red transfers, want 1", got)
	}

	// Black/white goes first.
	bwIdx, redIdx := -1, -1
	for i, r := range frame {
		switch r.Cmd {
		case 0x24:
			bwIdx = i
		case 0x26:
			redIdx = i
		}
	}
	if bwIdx > redIdx {
		t.Errorf("black/white plane sent at %d, after red at %d", bwIdx, redIdx)
	}

	if diff := cmp.Diff(sim.Plane(0), bw); diff != "" {
		t.Errorf("black/white RAM difference:\n%s", diff)
	}
	if diff := cmp.Diff(sim.Plane(1), red); diff != "" {
		t.Errorf("red RAM difference:\n%s", diff)
	}
}

func TestDisplayFrameValidation(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9b")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	before := len(sim.Records())

	mono, err := epd.Lookup(epd.SSD1680, "2in9")
	if err != nil {
		t.Fatal(err)
	}
	// One plane for a two plane panel.
	err = dev.DisplayFrame(epd.NewFrameBuffer(&mono))
	if !errors.Is(err, epd.ErrInvalidBufferSize) {
		t.Fatalf("DisplayFrame() = %v, want ErrInvalidBufferSize", err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Errorf("State() after rejected frame = %s, want Idle", got)
	}
	if n := len(sim.Records()); n != before {
		t.Errorf("rejected frame sent %d commands", n-before)
	}
}

func TestBusyTimeoutFaults(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	sim.BusyStuck = true
	err := dev.DisplayFrame(epd.NewFrameBuffer(&panel))
	if !errors.Is(err, epdif.ErrBusyTimeout) {
		t.Fatalf("DisplayFrame() = %v, want ErrBusyTimeout", err)
	}
	if got := dev.State(); got != epd.Faulted {
		t.Fatalf("State() = %s, want Faulted", got)
	}
	if dev.Fault() == nil {
		t.Fatal("Fault() = nil after a busy timeout")
	}

	// Faulted rejects everything except Init.
	if err := dev.DisplayFrame(epd.NewFrameBuffer(&panel)); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("DisplayFrame() while Faulted = %v, want ErrNotReady", err)
	}
	if err := dev.Sleep(); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("Sleep() while Faulted = %v, want ErrNotReady", err)
	}

	sim.BusyStuck = false
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Fatalf("State() after recovery Init = %s, want Idle", got)
	}
	if dev.Fault() != nil {
		t.Errorf("Fault() = %v after recovery", dev.Fault())
	}
}

func TestTransferFailureFaults(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	sim.FailWrites = true
	dev := newDev(t, sim, epd.ChipSSD1680, panel)

	err := dev.Init()
	if !errors.Is(err, epdif.ErrTransfer) {
		t.Fatalf("Init() = %v, want ErrTransfer", err)
	}
	if got := dev.State(); got != epd.Faulted {
		t.Fatalf("State() = %s, want Faulted", got)
	}
}

func TestSetLUT(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1619A, "4in2")
	dev := newDev(t, sim, epd.ChipSSD1619A, panel)

	if err := dev.SetLUT(epd.SSD1619AFastLUT); !errors.Is(err, epd.ErrNotReady) {
		t.Fatalf("SetLUT() before Init = %v, want ErrNotReady", err)
	}

	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}
	before := len(sim.Records())

	if err := dev.SetLUT(make(epd.LUT, 30)); !errors.Is(err, epd.ErrInvalidBufferSize) {
		t.Fatalf("SetLUT() with 30 bytes = %v, want ErrInvalidBufferSize", err)
	}
	if n := len(sim.Records()); n != before {
		t.Errorf("rejected LUT sent %d commands", n-before)
	}

	if err := dev.SetLUT(epd.SSD1619AFastLUT); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Errorf("State() after SetLUT = %s, want Idle", got)
	}
}

func TestSetLUTUnsupported(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	if err := dev.SetLUT(make(epd.LUT, 30)); !errors.Is(err, epd.ErrUnsupported) {
		t.Fatalf("SetLUT() = %v, want ErrUnsupported", err)
	}
	if got := dev.State(); got != epd.Idle {
		t.Errorf("State() = %s, want Idle", got)
	}
}

func TestDraw(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	src := image.NewRGBA(dev.Bounds())
	if err := dev.Draw(dev.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := sim.FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d, want 1", got)
	}

	if err := dev.Draw(image.Rect(0, 0, 10, 10), src, image.Point{}); err == nil {
		t.Error("partial Draw() succeeded, want error")
	}
}

func TestHalt(t *testing.T) {
	sim, panel := newSim(t, epd.SSD1680, "2in9")
	dev := newDev(t, sim, epd.ChipSSD1680, panel)
	if err := dev.Init(); err != nil {
		t.Fatal(err)
	}

	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := dev.State(); got != epd.Sleeping {
		t.Errorf("State() after Halt = %s, want Sleeping", got)
	}
	if got := sim.FrameCount(); got != 1 {
		t.Errorf("FrameCount() after Halt = %d, want 1", got)
	}
	// The cleared frame is all white.
	for i, b := range sim.Plane(0) {
		if b != 0xFF {
			t.Fatalf("Plane(0)[%d] = %#02x, want 0xFF", i, b)
		}
	}
}
