// SPDX-License-Identifier: Unlicense OR MIT

package color

// R16Palette is a dense, append-only sequence of Rgb values indexed by R16.
// Insertion order is canonical: the palette is built first-seen,
// row-major, left to right. No duplicate colors are ever inserted by the
// ingest path (see world.Ingest).
type R16Palette struct {
	data []Rgb
}

// NewR16Palette wraps an already-built, duplicate-free color slice.
func NewR16Palette(data []Rgb) R16Palette {
	return R16Palette{data: data}
}

func (p R16Palette) Len() int { return len(p.data) }

func (p R16Palette) IsEmpty() bool { return len(p.data) == 0 }

// At returns the color for a location index. Panics if out of range, same
// as the Rust implementation's slice indexing.
func (p R16Palette) At(idx R16) Rgb {
	return p.data[idx]
}

func (p R16Palette) AsSlice() []Rgb {
	return p.data
}

// Iter calls f for every (color, index) pair in canonical order.
func (p R16Palette) Iter(f func(Rgb, R16)) {
	for i, c := range p.data {
		f(c, R16(uint16(i)))
	}
}

func (p R16Palette) Equal(other R16Palette) bool {
	if len(p.data) != len(other.data) {
		return false
	}
	for i := range p.data {
		if p.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
