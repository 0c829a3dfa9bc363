// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither"
	"golang.org/x/image/draw"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// TriColorPalette is the color model of tri-color panels. Index order
// matters: white, black, colored (red or yellow depending on the film).
var TriColorPalette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xFF, A: 0xFF},
}

// gray4Palette is the four levels a Gray4 panel can show.
var gray4Palette = color.Palette{
	color.Gray{Y: 0x00},
	color.Gray{Y: 0x55},
	color.Gray{Y: 0xAA},
	color.Gray{Y: 0xFF},
}

// FrameBuffer holds one frame as bit packed planes, ready for
// transfer. Within a plane, bytes are row major and bits MSB first;
// bit 1 is white (respectively "no color" on the second plane of a
// tri-color frame). Construction is pure: the same pixels always pack
// to the same bytes.
type FrameBuffer struct {
	mode   PlaneMode
	width  int
	height int
	planes [][]byte
}

func rowBytes(width int) int {
	return (width + 7) / 8
}

// NewFrameBuffer returns an all-white frame for the panel.
func NewFrameBuffer(p *PanelDescriptor) *FrameBuffer {
	fb := &FrameBuffer{
		mode:   p.Mode,
		width:  p.Width,
		height: p.Height,
		planes: make([][]byte, p.Planes()),
	}
	for i := range fb.planes {
		fb.planes[i] = make([]byte, p.PlaneSize())
		fill := byte(0xFF)
		if p.Mode == TriColor && i == 1 {
			// No color.
			fill = 0x00
		}
		for j := range fb.planes[i] {
			fb.planes[i][j] = fill
		}
	}
	return fb
}

// FromPlanes wraps pre-packed planes without copying. The plane count
// and lengths must match the panel geometry.
func FromPlanes(p *PanelDescriptor, planes ...[]byte) (*FrameBuffer, error) {
	fb := &FrameBuffer{mode: p.Mode, width: p.Width, height: p.Height, planes: planes}
	if err := fb.check(p); err != nil {
		return nil, err
	}
	return fb, nil
}

// Mode returns the plane mode the frame was built for.
func (fb *FrameBuffer) Mode() PlaneMode {
	return fb.mode
}

// Bounds returns the frame geometry as an image rectangle.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// Plane returns the packed bytes of one plane. The slice is not a
// copy; the caller must not grow it.
func (fb *FrameBuffer) Plane(i int) []byte {
	return fb.planes[i]
}

func (fb *FrameBuffer) check(p *PanelDescriptor) error {
	if len(fb.planes) != p.Planes() {
		return fmt.Errorf("%w: %d planes for a %s panel, want %d",
			ErrInvalidBufferSize, len(fb.planes), p.Mode, p.Planes())
	}
	for i, plane := range fb.planes {
		if len(plane) != p.PlaneSize() {
			return fmt.Errorf("%w: plane %d is %d bytes, want %d for %dx%d",
				ErrInvalidBufferSize, i, len(plane), p.PlaneSize(), p.Width, p.Height)
		}
	}
	return nil
}

// Pack converts an image into a frame for the panel. src must have
// exactly the panel geometry; use Fit (and optionally Dither) to
// prepare arbitrary images. Packing is pure: identical pixels always
// produce identical bytes.
func Pack(p *PanelDescriptor, src image.Image) (*FrameBuffer, error) {
	if b := src.Bounds(); b.Dx() != p.Width || b.Dy() != p.Height {
		return nil, fmt.Errorf("%w: image is %dx%d, panel is %dx%d",
			ErrInvalidBufferSize, b.Dx(), b.Dy(), p.Width, p.Height)
	}
	fb := NewFrameBuffer(p)
	switch p.Mode {
	case TriColor:
		fb.packTriColor(src)
	case Gray4:
		fb.packGray4(src)
	default:
		fb.packMono(src)
	}
	return fb, nil
}

func (fb *FrameBuffer) packMono(src image.Image) {
	// Round-trip through image1bit for the thresholding.
	bit := image1bit.NewVerticalLSB(fb.Bounds())
	draw.Draw(bit, bit.Bounds(), src, src.Bounds().Min, draw.Src)
	stride := rowBytes(fb.width)
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			if bit.BitAt(x, y) == image1bit.Off {
				fb.planes[0][y*stride+x/8] &^= 0x80 >> (x % 8)
			}
		}
	}
}

func (fb *FrameBuffer) packTriColor(src image.Image) {
	min := src.Bounds().Min
	stride := rowBytes(fb.width)
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			mask := byte(0x80) >> (x % 8)
			switch TriColorPalette.Index(src.At(min.X+x, min.Y+y)) {
			case 1: // black
				fb.planes[0][y*stride+x/8] &^= mask
			case 2: // colored
				fb.planes[1][y*stride+x/8] |= mask
			}
		}
	}
}

func (fb *FrameBuffer) packGray4(src image.Image) {
	min := src.Bounds().Min
	stride := rowBytes(fb.width)
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			mask := byte(0x80) >> (x % 8)
			gray := color.GrayModel.Convert(src.At(min.X+x, min.Y+y)).(color.Gray)
			// 0 black .. 3 white; low bit in plane 0, high bit in plane 1.
			level := gray.Y >> 6
			if level&1 == 0 {
				fb.planes[0][y*stride+x/8] &^= mask
			}
			if level&2 == 0 {
				fb.planes[1][y*stride+x/8] &^= mask
			}
		}
	}
}

// Rotation is an orientation of drawn content relative to the panel
// raster, for panels mounted sideways or upside down. Rotations are
// clockwise.
type Rotation int

// Valid Rotation values.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// String implements fmt.Stringer.
func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "Rotate0"
	case Rotate90:
		return "Rotate90"
	case Rotate180:
		return "Rotate180"
	case Rotate270:
		return "Rotate270"
	default:
		return "Unknown"
	}
}

// Set implements flag.Value.
func (r *Rotation) Set(s string) error {
	switch s {
	case "Rotate0", "0":
		*r = Rotate0
	case "Rotate90", "90":
		*r = Rotate90
	case "Rotate180", "180":
		*r = Rotate180
	case "Rotate270", "270":
		*r = Rotate270
	default:
		return fmt.Errorf("epd: unknown rotation %q: expected 0, 90, 180 or 270", s)
	}
	return nil
}

// Rotate turns src clockwise by the given rotation. Apply before Fit
// when the panel is mounted in a different orientation than the
// content is drawn in; Rotate0 returns src unchanged.
func Rotate(r Rotation, src image.Image) image.Image {
	switch r {
	case Rotate90:
		return imaging.Rotate270(src)
	case Rotate180:
		return imaging.Rotate180(src)
	case Rotate270:
		return imaging.Rotate90(src)
	default:
		return src
	}
}

// Fit scales src to the panel geometry, preserving aspect ratio, and
// centers it on a white canvas.
func Fit(p *PanelDescriptor, src image.Image) image.Image {
	fitted := imaging.Fit(src, p.Width, p.Height, imaging.Lanczos)
	return imaging.PasteCenter(imaging.New(p.Width, p.Height, color.White), fitted)
}

// Dither error-diffuses src into the panel's palette. Combine with Fit
// before packing photographic content.
func Dither(p *PanelDescriptor, src image.Image) image.Image {
	var pal color.Palette
	switch p.Mode {
	case TriColor:
		pal = TriColorPalette
	case Gray4:
		pal = gray4Palette
	default:
		pal = color.Palette{color.Black, color.White}
	}
	d := dither.NewDitherer([]color.Color(pal))
	d.Matrix = dither.FloydSteinberg
	d.Serpentine = true
	if out := d.Dither(src); out != nil {
		return out
	}
	return src
}
