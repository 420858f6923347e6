// SPDX-License-Identifier: Unlicense OR MIT

// Package world holds the immutable indexed-texture data model: two
// hemispheres of R16 location indices plus the ingest pipeline that builds
// them from a source image, and the spatial/topology accelerators built on
// top.
package world

import "pdxmap.dev/core/units"

// Hemisphere is an owned, contiguous, row-major buffer of T, width*height
// in size. It never mutates after construction.
type Hemisphere[T any] struct {
	data   []T
	width  units.HemisphereLength
	height uint32
}

// NewHemisphere wraps data as a width x height row-major buffer. Panics if
// data's length doesn't match width*height.
func NewHemisphere[T any](data []T, width units.HemisphereLength) Hemisphere[T] {
	if width.Value == 0 {
		if len(data) != 0 {
			panic("world: zero-width hemisphere must have no data")
		}
		return Hemisphere[T]{data: data, width: width}
	}
	height := uint32(len(data)) / width.Value
	if height*width.Value != uint32(len(data)) {
		panic("world: hemisphere data length must be a multiple of width")
	}
	return Hemisphere[T]{data: data, width: width, height: height}
}

func (h Hemisphere[T]) Size() units.HemisphereSize[uint32] {
	return units.HemisphereSize[uint32]{Width: h.width.Value, Height: h.height}
}

func (h Hemisphere[T]) Width() units.HemisphereLength { return h.width }

func (h Hemisphere[T]) Height() uint32 { return h.height }

func (h Hemisphere[T]) AsSlice() []T { return h.data }

// Row returns the y-th row as a slice view into the underlying buffer.
func (h Hemisphere[T]) Row(y uint32) []T {
	start := y * h.width.Value
	return h.data[start : start+h.width.Value]
}

// Rows calls f for every row, in order.
func (h Hemisphere[T]) Rows(f func(row []T)) {
	for y := uint32(0); y < h.height; y++ {
		f(h.Row(y))
	}
}

func (h Hemisphere[T]) Equal(other Hemisphere[T], eq func(a, b T) bool) bool {
	if h.width != other.width || h.height != other.height {
		return false
	}
	for i := range h.data {
		if !eq(h.data[i], other.data[i]) {
			return false
		}
	}
	return true
}
