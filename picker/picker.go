// SPDX-License-Identifier: Unlicense OR MIT

// Package picker implements the wire-level spatial query path: picking and
// AABB lookups over raw R16 byte buffers, as received at a serialization
// boundary (distinct from world.World, which operates on typed R16 values
// already in memory).
package picker

import (
	"fmt"

	"pdxmap.dev/core/units"
)

// GpuLocationIdx is a direct slot index, as resolved by a pick or AABB
// query.
type GpuLocationIdx uint16

// AABB is an inclusive axis-aligned bounding box over u16 world
// coordinates.
type AABB struct {
	Min, Max units.WorldPoint[uint16]
}

// EmptyAABB is the identity element ExpandTo grows from.
func EmptyAABB() AABB {
	return AABB{
		Min: units.WorldPoint[uint16]{X: 0xFFFF, Y: 0xFFFF},
		Max: units.WorldPoint[uint16]{X: 0, Y: 0},
	}
}

// NewAABB builds an AABB from explicit min/max corners.
func NewAABB(min, max units.WorldPoint[uint16]) AABB {
	return AABB{Min: min, Max: max}
}

// ExpandTo grows a to include point.
func (a *AABB) ExpandTo(point units.WorldPoint[uint16]) {
	if point.X < a.Min.X {
		a.Min.X = point.X
	}
	if point.Y < a.Min.Y {
		a.Min.Y = point.Y
	}
	if point.X > a.Max.X {
		a.Max.X = point.X
	}
	if point.Y > a.Max.Y {
		a.Max.Y = point.Y
	}
}

// Intersects reports whether a and b overlap, edges touching included.
// Written without short-circuit boolean operators to avoid branches.
func (a AABB) Intersects(b AABB) bool {
	return b2u(a.Min.X <= b.Max.X)&b2u(a.Max.X >= b.Min.X)&b2u(a.Min.Y <= b.Max.Y)&b2u(a.Max.Y >= b.Min.Y) == 1
}

// b2u turns a comparison result into 0 or 1 so the results can be ANDed
// bitwise.
func b2u(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

func (a AABB) String() string {
	return fmt.Sprintf("[(%d,%d)-(%d,%d)]", a.Min.X, a.Min.Y, a.Max.X, a.Max.Y)
}

// Single is a minimal picker over raw little-endian R16 byte buffers: one
// pick() sample, no precomputed index.
type Single struct {
	west, east []byte
	worldWidth uint32
}

// NewSingle wraps west/east hemisphere byte buffers. Panics if the buffers
// disagree in length, have an odd byte count, or don't divide evenly by
// worldWidth.
func NewSingle(west, east []byte, worldWidth uint32) *Single {
	if len(west) != len(east) {
		panic("picker: west and east hemispheres must be the same length")
	}
	if len(west)%2 != 0 {
		panic("picker: west and east hemispheres must have an even number of bytes")
	}
	if worldWidth == 0 {
		panic("picker: world_width must be greater than 0")
	}
	if len(west)%int(worldWidth) != 0 {
		panic("picker: west and east hemispheres must have a length that is a multiple of the world width")
	}
	return &Single{west: west, east: east, worldWidth: worldWidth}
}

// Pick returns the location index at point: X wraps toroidally, Y clamps.
func (s *Single) Pick(point units.WorldPoint[float32]) GpuLocationIdx {
	halfWidth := s.worldWidth / 2
	if halfWidth == 0 {
		panic("picker: half_width must be nonzero")
	}

	bytesPerRow := int(halfWidth) * 2
	height := len(s.west) / bytesPerRow

	x := int32(floor(point.X))
	y := int32(floor(point.Y))
	if y < 0 {
		y = 0
	} else if y >= int32(height) {
		y = int32(height) - 1
	}

	worldWidth := int32(s.worldWidth)
	wrappedX := ((x % worldWidth) + worldWidth) % worldWidth

	var data []byte
	var col int
	if wrappedX < int32(halfWidth) {
		data = s.west
		col = int(wrappedX)
	} else {
		data = s.east
		col = int(wrappedX) - int(halfWidth)
	}

	offset := int(y)*bytesPerRow + col*2
	return GpuLocationIdx(uint16(data[offset]) | uint16(data[offset+1])<<8)
}

func floor(v float32) float32 {
	i := float32(int64(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

// WithAABBs upgrades s to a Map by scanning every pixel to precompute
// per-location bounding boxes.
func (s *Single) WithAABBs() *Map {
	return buildMap(s)
}

// Map wraps a Single with precomputed per-location AABBs.
type Map struct {
	picker *Single
	aabbs  []AABB
}

func buildMap(picker *Single) *Map {
	halfWidth := int(picker.worldWidth / 2)
	bytesPerRow := halfWidth * 2
	height := len(picker.west) / bytesPerRow

	aabbs := make([]AABB, 0x10000)
	for i := range aabbs {
		aabbs[i] = EmptyAABB()
	}
	var maxLocationIdx uint16

	halves := []struct {
		xOffset int
		data    []byte
	}{{0, picker.west}, {halfWidth, picker.east}}

	for _, half := range halves {
		for row := 0; row < height; row++ {
			y := uint16(row)
			for col := 0; col < halfWidth; col++ {
				x := uint16(col + half.xOffset)
				offset := row*bytesPerRow + col*2
				locIdx := uint16(half.data[offset]) | uint16(half.data[offset+1])<<8

				if locIdx > maxLocationIdx {
					maxLocationIdx = locIdx
				}
				aabbs[locIdx].ExpandTo(units.WorldPoint[uint16]{X: x, Y: y})
			}
		}
	}

	aabbs = aabbs[:int(maxLocationIdx)+1]

	return &Map{picker: picker, aabbs: aabbs}
}

// Query returns every location whose AABB intersects query.
func (m *Map) Query(query AABB) []GpuLocationIdx {
	var out []GpuLocationIdx
	for idx, aabb := range m.aabbs {
		if aabb.Intersects(query) {
			out = append(out, GpuLocationIdx(idx))
		}
	}
	return out
}

// GetAABB returns loc's bounding box. Panics if loc is out of range.
func (m *Map) GetAABB(loc GpuLocationIdx) AABB {
	return m.aabbs[loc]
}

// LocationCount returns the number of locations with an AABB.
func (m *Map) LocationCount() int { return len(m.aabbs) }

// Pick forwards to the underlying Single picker.
func (m *Map) Pick(point units.WorldPoint[float32]) GpuLocationIdx {
	return m.picker.Pick(point)
}
