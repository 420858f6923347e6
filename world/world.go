// SPDX-License-Identifier: Unlicense OR MIT

package world

import (
	"sync"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/units"
)

// World is a pair of equally-sized hemispheres: west and east. The EU5 map
// is too large to fit in a single texture (16384x8192), so it is split into
// two 8192x8192 textures; World keeps that split on the CPU side too, so
// queries don't need to first reassemble a single buffer.
type World struct {
	west, east        Hemisphere[pdxcolor.R16]
	maxLocationIndex  sync.Once
	computedMaxLocIdx pdxcolor.R16
	seededMaxLocIdx   *pdxcolor.R16
}

// Builder constructs a World, optionally seeding the lazily-computed
// max-location-index so the first call to MaxLocationIndex doesn't have to
// scan both hemispheres.
type Builder struct {
	west, east Hemisphere[pdxcolor.R16]
	seededMax  *pdxcolor.R16
}

func NewBuilder(west, east Hemisphere[pdxcolor.R16]) *Builder {
	return &Builder{west: west, east: east}
}

// WithMaxLocationIndex seeds the max-location-index shortcut. The caller
// must ensure max is exactly the highest location index present in either
// hemisphere: supplying an incorrect value means MaxLocationIndex and
// LocationCapacity silently under- or over-report, which downstream GPU
// buffer sizing trusts without re-checking.
func (b *Builder) WithMaxLocationIndex(max pdxcolor.R16) *Builder {
	b.seededMax = &max
	return b
}

func (b *Builder) Build() *World {
	if b.west.Size() != b.east.Size() {
		panic("world: west and east hemispheres must have the same size")
	}
	w := &World{west: b.west, east: b.east}
	w.seededMaxLocIdx = b.seededMax
	return w
}

func (w *World) Size() units.WorldSize[uint32] {
	s := w.west.Size()
	return units.HemisphereToWorld(s)
}

func (w *World) West() Hemisphere[pdxcolor.R16] { return w.west }
func (w *World) East() Hemisphere[pdxcolor.R16] { return w.east }

// Rows calls f once per world row, west columns first, then east.
func (w *World) Rows(f func(y uint32, row []pdxcolor.R16)) {
	height := w.west.Height()
	hw := w.west.Width().Value
	buf := make([]pdxcolor.R16, hw*2)
	for y := uint32(0); y < height; y++ {
		copy(buf[:hw], w.west.Row(y))
		copy(buf[hw:], w.east.Row(y))
		f(y, buf)
	}
}

// MaxLocationIndex returns the maximum R16 present anywhere in either
// hemisphere, computed once and cached.
func (w *World) MaxLocationIndex() pdxcolor.R16 {
	w.maxLocationIndex.Do(func() {
		if w.seededMaxLocIdx != nil {
			w.computedMaxLocIdx = *w.seededMaxLocIdx
			return
		}
		w.computedMaxLocIdx = w.computeMaxLocationIndex()
	})
	return w.computedMaxLocIdx
}

func (w *World) computeMaxLocationIndex() pdxcolor.R16 {
	var max pdxcolor.R16
	for _, v := range w.west.AsSlice() {
		if v > max {
			max = v
		}
	}
	for _, v := range w.east.AsSlice() {
		if v > max {
			max = v
		}
	}
	return max
}

func (w *World) LocationCapacity() int {
	return int(w.MaxLocationIndex()) + 1
}

// At returns the location index at the given world coordinates. X wraps
// toroidally (rem_euclid over the world width); Y clamps to the world
// height rather than failing.
func (w *World) At(point units.WorldPoint[float32]) pdxcolor.R16 {
	hemiSize := w.west.Size()
	if hemiSize.Height == 0 {
		panic("world: world height must be greater than 0")
	}
	worldSize := units.HemisphereToWorld(hemiSize)

	x := int32(floor(point.X))
	y := int32(floor(point.Y))
	if y < 0 {
		y = 0
	} else if y >= int32(worldSize.Height) {
		y = int32(worldSize.Height) - 1
	}

	worldWidth := int32(worldSize.Width)
	wrappedX := remEuclid(x, worldWidth)

	hemiWidth := int32(hemiSize.Width)
	var data []pdxcolor.R16
	var col int32
	if wrappedX < hemiWidth {
		data = w.west.AsSlice()
		col = wrappedX
	} else {
		data = w.east.AsSlice()
		col = wrappedX - hemiWidth
	}

	offset := uint32(y)*hemiSize.Width + uint32(col)
	return data[offset]
}

// CenterOf returns the first pixel for loc in row-major order, weaving
// west and east rows, as an approximation for a location's center. If loc
// does not occur anywhere, returns (0,0): locations are assumed present,
// and an absent value degenerates to the origin rather than failing.
func (w *World) CenterOf(loc pdxcolor.R16) units.WorldPoint[uint32] {
	hemisphereWidth := w.west.Size().Width
	height := w.west.Height()

	for y := uint32(0); y < height; y++ {
		westRow := w.west.Row(y)
		if x, ok := indexOf(westRow, loc); ok {
			return units.WorldPoint[uint32]{X: uint32(x), Y: y}
		}
		eastRow := w.east.Row(y)
		if x, ok := indexOf(eastRow, loc); ok {
			return units.WorldPoint[uint32]{X: hemisphereWidth + uint32(x), Y: y}
		}
	}

	return units.WorldPoint[uint32]{X: 0, Y: 0}
}

func indexOf(row []pdxcolor.R16, loc pdxcolor.R16) (int, bool) {
	for i, v := range row {
		if v == loc {
			return i, true
		}
	}
	return 0, false
}

func floor(v float32) float32 {
	i := float32(int64(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

// remEuclid is Euclidean remainder: always non-negative for a positive
// divisor, matching Rust's i32::rem_euclid used for toroidal wrap.
func remEuclid(a, b int32) int32 {
	r := a % b
	if r < 0 {
		r += abs32(b)
	}
	return r
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
