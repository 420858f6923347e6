// SPDX-License-Identifier: Unlicense OR MIT

// Package hashtable implements the GPU-resident open-addressed hash table
// that maps a palette color to its location's render state. The same hash
// and linear-probe sequence run on the CPU (Find) and are meant to be
// mirrored verbatim in the fragment shader: there is no separate
// dense per-location table on the GPU side.
package hashtable

import (
	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/internal/fnvcolor"
)

// GpuColor is a color key as stored in the hash table: the low 24 bits hold
// RGB, matching pdxcolor.Rgb.Key(). EMPTY is outside that range and can
// never collide with a real color.
type GpuColor uint32

// EmptyColor marks an unoccupied hash table slot.
const EmptyColor GpuColor = 0xFFFFFFFF

// ColorFromRgb packs an Rgb into its table key.
func ColorFromRgb(c pdxcolor.Rgb) GpuColor {
	return GpuColor(c.Key())
}

// Fnv hashes the color's RGB bytes for table placement.
func (c GpuColor) Fnv() uint32 {
	return fnvcolor.Hash(byte(c>>16), byte(c>>8), byte(c))
}
