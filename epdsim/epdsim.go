// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdsim implements a simulated e-paper bus that renders
// refreshed frames to the terminal using ANSI color codes.
//
// Useful while you are waiting for your panel to come by mail: wire a
// Sim where the epdif.SPI would go and the chip driver runs unchanged,
// painting every refresh as colored blocks on stdout. Sim also records
// the raw command/data traffic, which is what the package's own tests
// feed on.
package epdsim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/epd"
	"github.com/GermanBionicSystems/epd/epdif"
)

// Record is one command and the data bytes that followed it.
type Record struct {
	Cmd  byte
	Data []byte
}

// Opts represents the options available for the simulator.
type Opts struct {
	// W receives the rendered frames. Defaults to a colorable stdout;
	// pass io.Discard to silence rendering.
	W io.Writer
	// Palette maps frame colors to terminal codes. Defaults to
	// ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// Sim is an in-memory epdif.Interface that mimics a controller's RAM
// and busy behavior for one panel. It is driven exactly like hardware:
// reset, init sequence, plane writes, refresh.
type Sim struct {
	panel   epd.PanelDescriptor
	w       io.Writer
	palette ansi256.Palette

	// Fault injection knobs for exercising driver error paths.
	BusyStuck  bool
	FailWrites bool

	records  []Record
	planes   [2][]byte
	inData   int // plane being written, -1 when the last command takes no frame data
	offset   int
	frames   int
	resets   int
	sleeping bool
	buf      bytes.Buffer
}

// New returns a simulator for the given panel.
func New(panel epd.PanelDescriptor, opts *Opts) *Sim {
	var w io.Writer
	var p *ansi256.Palette
	if opts != nil {
		w = opts.W
		p = opts.Palette
	}
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if p == nil {
		p = ansi256.Default
	}
	s := &Sim{panel: panel, w: w, palette: *p, inData: -1}
	for i := range s.planes {
		s.planes[i] = make([]byte, panel.PlaneSize())
	}
	return s
}

func (s *Sim) String() string {
	return fmt.Sprintf("epdsim.Sim{%s}", &s.panel)
}

// Records returns the traffic seen so far, one entry per command.
func (s *Sim) Records() []Record {
	return s.records
}

// FrameCount returns how many refreshes have been triggered.
func (s *Sim) FrameCount() int {
	return s.frames
}

// Resets returns how many hardware resets have been seen.
func (s *Sim) Resets() int {
	return s.resets
}

// Sleeping reports whether the controller has seen a deep sleep
// command since the last reset.
func (s *Sim) Sleeping() bool {
	return s.sleeping
}

// Plane returns a copy of the simulated RAM for one plane.
func (s *Sim) Plane(i int) []byte {
	return append([]byte(nil), s.planes[i]...)
}

// WriteCommand implements epdif.Interface.
func (s *Sim) WriteCommand(cmd byte) error {
	if s.FailWrites {
		return fmt.Errorf("%w: injected", epdif.ErrTransfer)
	}
	s.records = append(s.records, Record{Cmd: cmd})
	s.inData = -1
	s.offset = 0

	uc := s.panel.Family == epd.UC8176
	switch {
	case !uc && cmd == 0x24, uc && cmd == 0x10:
		s.inData = 0
	case !uc && cmd == 0x26, uc && cmd == 0x13:
		s.inData = 1
	case !uc && cmd == 0x20, uc && cmd == 0x12:
		s.frames++
		s.render()
	case !uc && cmd == 0x10, uc && cmd == 0x07:
		s.sleeping = true
	}
	return nil
}

// WriteData implements epdif.Interface.
func (s *Sim) WriteData(data []byte) error {
	if s.FailWrites {
		return fmt.Errorf("%w: injected", epdif.ErrTransfer)
	}
	if len(s.records) == 0 {
		return fmt.Errorf("%w: data before any command", epdif.ErrTransfer)
	}
	last := &s.records[len(s.records)-1]
	last.Data = append(last.Data, data...)
	if s.inData >= 0 {
		n := copy(s.planes[s.inData][s.offset:], data)
		s.offset += n
	}
	return nil
}

// Reset implements epdif.Interface.
func (s *Sim) Reset() error {
	s.resets++
	s.sleeping = false
	s.inData = -1
	return nil
}

// WaitUntilReady implements epdif.Interface. The simulated controller
// is always ready unless BusyStuck is set.
func (s *Sim) WaitUntilReady(timeout time.Duration) error {
	if s.BusyStuck {
		return fmt.Errorf("%w after %s", epdif.ErrBusyTimeout, timeout)
	}
	return nil
}

func (s *Sim) pixel(x, y int) color.NRGBA {
	stride := (s.panel.Width + 7) / 8
	mask := byte(0x80) >> (x % 8)
	bw := s.planes[0][y*stride+x/8]&mask != 0
	hi := s.planes[1][y*stride+x/8]&mask != 0
	switch s.panel.Mode {
	case epd.TriColor:
		if hi {
			return color.NRGBA{R: 0xFF, A: 0xFF}
		}
		if bw {
			return color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
		}
		return color.NRGBA{A: 0xFF}
	case epd.Gray4:
		level := byte(0)
		if bw {
			level |= 1
		}
		if hi {
			level |= 2
		}
		g := level * 0x55
		return color.NRGBA{g, g, g, 0xFF}
	default:
		if bw {
			return color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
		}
		return color.NRGBA{A: 0xFF}
	}
}

// render paints the current RAM contents, downsampled to fit a
// terminal. One block per sample, nearest neighbor.
func (s *Sim) render() {
	// buf is reused between refreshes.
	sx := (s.panel.Width + 79) / 80
	if sx < 1 {
		sx = 1
	}
	// Terminal cells are roughly twice as tall as wide.
	sy := 2 * sx
	s.buf.Reset()
	for y := 0; y < s.panel.Height; y += sy {
		_, _ = s.buf.WriteString("\033[0m")
		for x := 0; x < s.panel.Width; x += sx {
			_, _ = io.WriteString(&s.buf, s.palette.Block(s.pixel(x, y)))
		}
		_, _ = s.buf.WriteString("\033[0m\n")
	}
	_, _ = s.buf.WriteTo(s.w)
}

var _ epdif.Interface = &Sim{}
var _ fmt.Stringer = &Sim{}
