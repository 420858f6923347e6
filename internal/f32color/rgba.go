// SPDX-License-Identifier: Unlicense OR MIT

// Package f32color implements the sRGB <-> linear conversions needed to
// blend map-mode gradient colors correctly. Interpolating directly in sRGB
// space (as a naive lerp over the raw byte values would) visibly darkens
// the midpoints of a gradient; blending happens in linear light instead,
// then the result is converted back for the GPU texture.
package f32color

import (
	"image/color"
	"math"
)

// RGBA is a premultiplied-alpha color with components in linear light,
// each channel normalized to [0,1].
type RGBA struct {
	R, G, B, A float32
}

// clamp1 clamps v to [0,1] the way linear color math tends to want after
// ordinary arithmetic pushes it briefly out of range.
func clamp1(v float32) float32 {
	if v >= 1 {
		return 1
	}
	if v <= 0 {
		return 0
	}
	return v
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*pow(c, 1.0/2.4) - 0.055
}

func pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// LinearFromSRGB converts a straight-alpha sRGB color to premultiplied
// linear RGBA.
func LinearFromSRGB(c color.NRGBA) RGBA {
	a := float32(c.A) / 0xFF
	return RGBA{
		R: srgbToLinear(float32(c.R)/0xFF) * a,
		G: srgbToLinear(float32(c.G)/0xFF) * a,
		B: srgbToLinear(float32(c.B)/0xFF) * a,
		A: a,
	}
}

// NRGBAToLinearRGBA is LinearFromSRGB under the name used where the
// straight/premultiplied distinction matters more than the color-space
// one: the result's alpha always equals the input's alpha channel exactly.
func NRGBAToLinearRGBA(c color.NRGBA) RGBA {
	return LinearFromSRGB(c)
}

// SRGB converts back to straight-alpha sRGB, the inverse of LinearFromSRGB.
func (c RGBA) SRGB() color.NRGBA {
	if c.A == 0 {
		return color.NRGBA{}
	}
	unmul := func(v float32) uint8 {
		v = clamp1(v / c.A)
		return uint8(linearToSRGB(v)*0xFF + 0.5)
	}
	return color.NRGBA{
		R: unmul(c.R),
		G: unmul(c.G),
		B: unmul(c.B),
		A: uint8(clamp1(c.A)*0xFF + 0.5),
	}
}

// Lerp blends a and b in linear light by t in [0,1].
func Lerp(a, b RGBA, t float32) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
