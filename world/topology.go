// SPDX-License-Identifier: Unlicense OR MIT

package world

import pdxcolor "pdxmap.dev/core/color"

// TopologyIndex holds the set of neighboring location indices for every
// location, derived from 4-neighborhood pixel adjacency. It is a pure
// function of World.
type TopologyIndex struct {
	neighbors []map[pdxcolor.R16]struct{}
}

// BuildTopologyIndex scans w and links any two locations that share a
// north/south/east/west pixel edge. Diagonal touches don't count.
func BuildTopologyIndex(w *World) *TopologyIndex {
	capacity := w.LocationCapacity()
	neighbors := make([]map[pdxcolor.R16]struct{}, capacity)
	for i := range neighbors {
		neighbors[i] = make(map[pdxcolor.R16]struct{})
	}

	link := func(a, b pdxcolor.R16) {
		if a == b {
			return
		}
		neighbors[a][b] = struct{}{}
		neighbors[b][a] = struct{}{}
	}

	worldSize := w.Size()
	width := worldSize.Width
	height := worldSize.Height

	var rows [][]pdxcolor.R16
	w.Rows(func(y uint32, row []pdxcolor.R16) {
		rows = append(rows, append([]pdxcolor.R16(nil), row...))
	})

	for y := uint32(0); y < height; y++ {
		row := rows[y]
		for x := uint32(0); x < width; x++ {
			here := row[x]

			if x+1 < width {
				link(here, row[x+1])
			} else {
				// toroidal wrap at the world seam
				link(here, row[0])
			}

			if y+1 < height {
				link(here, rows[y+1][x])
			}
		}
	}

	return &TopologyIndex{neighbors: neighbors}
}

// NeighborsOf returns the locations adjacent to loc, in no particular order.
func (t *TopologyIndex) NeighborsOf(loc pdxcolor.R16) []pdxcolor.R16 {
	if int(loc) >= len(t.neighbors) {
		return nil
	}
	set := t.neighbors[loc]
	out := make([]pdxcolor.R16, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

// AreAdjacent reports whether a and b share a pixel edge anywhere in the
// world.
func (t *TopologyIndex) AreAdjacent(a, b pdxcolor.R16) bool {
	if int(a) >= len(t.neighbors) {
		return false
	}
	_, ok := t.neighbors[a][b]
	return ok
}
