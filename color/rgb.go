// SPDX-License-Identifier: Unlicense OR MIT

// Package color implements the palette-indexed color model shared by the
// map textures: 24-bit source colors (Rgb), the 16-bit per-pixel location
// index that addresses them (R16), and the ordered palette between the two
// (R16Palette).
package color

import "fmt"

// Rgb is an opaque 24-bit color.
type Rgb struct {
	r, g, b uint8
}

// NewRgb builds an Rgb from individual components.
func NewRgb(r, g, b uint8) Rgb {
	return Rgb{r: r, g: g, b: b}
}

func (c Rgb) R() uint8 { return c.r }
func (c Rgb) G() uint8 { return c.g }
func (c Rgb) B() uint8 { return c.b }

// Key packs the color into the 24-bit LUT key used by Ingest.
func (c Rgb) Key() uint32 {
	return uint32(c.r)<<16 | uint32(c.g)<<8 | uint32(c.b)
}

// String renders the color as lowercase hex, e.g. "0852a5".
func (c Rgb) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.r, c.g, c.b)
}
