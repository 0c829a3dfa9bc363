// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"fmt"
	"image"
)

// PlaneMode is the color capability of a panel, which fixes how many
// bit planes a frame carries.
type PlaneMode int

// Valid PlaneMode values.
const (
	// Mono is 1-bit black and white, one plane.
	Mono PlaneMode = iota
	// TriColor is black/white plus a red or yellow channel, two planes.
	// The black/white plane is always transferred first.
	TriColor
	// Gray4 is 4-level gray scale, two planes (low bit then high bit).
	Gray4
)

// String implements fmt.Stringer.
func (p PlaneMode) String() string {
	switch p {
	case Mono:
		return "Mono"
	case TriColor:
		return "TriColor"
	case Gray4:
		return "Gray4"
	default:
		return "Unknown"
	}
}

// Set implements flag.Value.
func (p *PlaneMode) Set(s string) error {
	switch s {
	case "Mono", "mono":
		*p = Mono
	case "TriColor", "tricolor":
		*p = TriColor
	case "Gray4", "gray4":
		*p = Gray4
	default:
		return fmt.Errorf("epd: unknown plane mode %q: expected Mono, TriColor or Gray4", s)
	}
	return nil
}

// Planes returns how many bit planes a frame in this mode carries.
func (p PlaneMode) Planes() int {
	if p == Mono {
		return 1
	}
	return 2
}

// Family identifies a display controller chip family.
type Family int

// Valid Family values.
const (
	SSD1608 Family = iota
	SSD1680
	SSD1619A
	UC8176
)

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case SSD1608:
		return "SSD1608"
	case SSD1680:
		return "SSD1680"
	case SSD1619A:
		return "SSD1619A"
	case UC8176:
		return "UC8176"
	default:
		return "Unknown"
	}
}

// Set implements flag.Value.
func (f *Family) Set(s string) error {
	switch s {
	case "SSD1608", "ssd1608":
		*f = SSD1608
	case "SSD1680", "ssd1680":
		*f = SSD1680
	case "SSD1619A", "ssd1619a":
		*f = SSD1619A
	case "UC8176", "uc8176":
		*f = UC8176
	default:
		return fmt.Errorf("epd: unknown chip family %q: expected SSD1608, SSD1680, SSD1619A or UC8176", s)
	}
	return nil
}

// LUT is a waveform look-up table as uploaded to the controller. Its
// length is chip specific (30 bytes on SSD1608, 70 on SSD1619A).
type LUT []byte

// PanelDescriptor describes one physical panel: its raster geometry,
// color capability and, when the factory waveform is not suitable, the
// LUT to upload at init time.
//
// Width counts pixels along the packed (source driver) axis, so a row
// occupies (Width+7)/8 bytes; Height counts gate lines.
type PanelDescriptor struct {
	Family Family
	Size   string
	Width  int
	Height int
	Mode   PlaneMode
	// DefaultLUT, when non-nil, is uploaded during Init instead of the
	// chip's built-in default.
	DefaultLUT LUT
}

// PlaneSize returns the byte length of one bit plane for this geometry.
func (p *PanelDescriptor) PlaneSize() int {
	return (p.Width + 7) / 8 * p.Height
}

// Planes returns how many bit planes a frame for this panel carries.
func (p *PanelDescriptor) Planes() int {
	return p.Mode.Planes()
}

// Bounds returns the panel raster as an image rectangle.
func (p *PanelDescriptor) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

func (p *PanelDescriptor) String() string {
	return fmt.Sprintf("%s-%s(%dx%d %s)", p.Family, p.Size, p.Width, p.Height, p.Mode)
}

type panelKey struct {
	family Family
	size   string
}

// The preset catalog. Geometry and waveforms are per the vendor panel
// reference designs; entries are never mutated, Lookup hands out copies.
var panelCatalog = map[panelKey]PanelDescriptor{
	{SSD1680, "2in9"}:   {Family: SSD1680, Size: "2in9", Width: 128, Height: 296, Mode: Mono},
	{SSD1680, "2in9b"}:  {Family: SSD1680, Size: "2in9b", Width: 128, Height: 296, Mode: TriColor},
	{SSD1608, "2in13"}:  {Family: SSD1608, Size: "2in13", Width: 122, Height: 250, Mode: Mono},
	{SSD1608, "2in13g"}: {Family: SSD1608, Size: "2in13g", Width: 122, Height: 250, Mode: Gray4, DefaultLUT: SSD1608Gray4LUT},
	{SSD1619A, "4in2"}:  {Family: SSD1619A, Size: "4in2", Width: 400, Height: 300, Mode: TriColor},
	{SSD1619A, "4in2g"}: {Family: SSD1619A, Size: "4in2g", Width: 400, Height: 300, Mode: Gray4, DefaultLUT: SSD1619AGray4LUT},
	{UC8176, "4in2"}:    {Family: UC8176, Size: "4in2", Width: 400, Height: 300, Mode: TriColor},
}

// Lookup returns the panel preset for a chip family and panel size, for
// example Lookup(SSD1680, "2in9"). The returned descriptor is a copy;
// callers may adjust it (to flip the mode of a tri-color panel to Mono,
// say) without affecting the catalog.
func Lookup(f Family, size string) (PanelDescriptor, error) {
	p, ok := panelCatalog[panelKey{f, size}]
	if !ok {
		return PanelDescriptor{}, fmt.Errorf("epd: no %s panel preset %q", f, size)
	}
	p.DefaultLUT = append(LUT(nil), p.DefaultLUT...)
	if len(p.DefaultLUT) == 0 {
		p.DefaultLUT = nil
	}
	return p, nil
}
