// SPDX-License-Identifier: Unlicense OR MIT

package world

import (
	pdxcolor "pdxmap.dev/core/color"
)

// Aabb is an inclusive axis-aligned bounding box in world pixel
// coordinates. Two boxes whose edges only touch count as intersecting.
// EmptyAabb is the identity element for ExpandTo: min at the max u16 value,
// max at zero, so the first ExpandTo call always wins.
type Aabb struct {
	MinX, MinY uint16
	MaxX, MaxY uint16
}

// EmptyAabb returns the identity box that ExpandTo grows from.
func EmptyAabb() Aabb {
	return Aabb{MinX: 0xFFFF, MinY: 0xFFFF, MaxX: 0, MaxY: 0}
}

func (a Aabb) isEmpty() bool {
	return a.MinX > a.MaxX || a.MinY > a.MaxY
}

// ExpandTo grows a to include (x, y), returning the new box.
func (a Aabb) ExpandTo(x, y uint16) Aabb {
	if x < a.MinX {
		a.MinX = x
	}
	if y < a.MinY {
		a.MinY = y
	}
	if x > a.MaxX {
		a.MaxX = x
	}
	if y > a.MaxY {
		a.MaxY = y
	}
	return a
}

// Intersects reports whether a and b overlap, including edge-touching.
// Written as the branchless conjunction of four interval comparisons so it
// compiles to comparisons and ANDs with no taken branches.
func (a Aabb) Intersects(b Aabb) bool {
	return b2u(a.MinX <= b.MaxX)&b2u(b.MinX <= a.MaxX)&b2u(a.MinY <= b.MaxY)&b2u(b.MinY <= a.MaxY) == 1
}

// b2u turns a comparison result into 0 or 1 so the results can be ANDed
// bitwise.
func b2u(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// SpatialIndex holds one Aabb per location index, precomputed by scanning
// every pixel in a World. It is a pure function of World: rebuilding from
// the same World always yields the same index.
type SpatialIndex struct {
	boxes []Aabb
}

// BuildSpatialIndex scans w and returns the per-location bounding boxes.
// Coordinates are world pixels: a location's box only ever reflects the
// hemisphere(s) it actually occurs in, and east-half pixels are offset by
// the hemisphere width so boxes remain comparable across the world.
func BuildSpatialIndex(w *World) *SpatialIndex {
	capacity := w.LocationCapacity()
	boxes := make([]Aabb, capacity)
	for i := range boxes {
		boxes[i] = EmptyAabb()
	}

	hemiWidth := w.west.Width().Value
	scan := func(h Hemisphere[pdxcolor.R16], xOffset uint32) {
		height := h.Height()
		for y := uint32(0); y < height; y++ {
			row := h.Row(y)
			for x, loc := range row {
				wx := uint32(x) + xOffset
				boxes[loc] = boxes[loc].ExpandTo(uint16(wx), uint16(y))
			}
		}
	}
	scan(w.west, 0)
	scan(w.east, hemiWidth)

	return &SpatialIndex{boxes: boxes}
}

// BoundsOf returns the bounding box for loc, or an empty box if loc has
// never been observed.
func (s *SpatialIndex) BoundsOf(loc pdxcolor.R16) Aabb {
	if int(loc) >= len(s.boxes) {
		return EmptyAabb()
	}
	return s.boxes[loc]
}

// Query returns every location whose bounding box intersects q.
func (s *SpatialIndex) Query(q Aabb) []pdxcolor.R16 {
	var out []pdxcolor.R16
	for i, b := range s.boxes {
		if b.isEmpty() {
			continue
		}
		if b.Intersects(q) {
			out = append(out, pdxcolor.R16(i))
		}
	}
	return out
}
