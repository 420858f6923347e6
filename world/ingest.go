// SPDX-License-Identifier: Unlicense OR MIT

package world

import (
	"fmt"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/units"
)

// ErrPaletteOverflow is returned when a source image contains more than
// 65535 unique colors; index 65535 (R16Sentinel) is reserved.
type ErrPaletteOverflow struct{}

func (ErrPaletteOverflow) Error() string {
	return "world: palette exceeded 65535 colors (index 65535 reserved for sentinel)"
}

// maxPaletteColors is u16::MAX: once the palette reaches this many entries,
// the next unique color would collide with R16Sentinel and must be
// rejected. The valid palette therefore holds at most 65535 colors,
// indices [0, 65534].
const maxPaletteColors = 0xFFFF

// IngestRGB8 takes an 8-bit-per-channel RGB image (row-major, width*height*3
// bytes) and splits it into west/east R16 hemispheres plus the palette of
// unique colors encountered, first-seen order. world_width must be even.
func IngestRGB8(img []byte, width units.WorldLength) (*World, pdxcolor.R16Palette, error) {
	return ingest(img, width, 3)
}

// IngestRGBA8 is IngestRGB8 for 4-byte-per-pixel source data; the alpha
// channel is ignored.
func IngestRGBA8(img []byte, width units.WorldLength) (*World, pdxcolor.R16Palette, error) {
	return ingest(img, width, 4)
}

func ingest(img []byte, width units.WorldLength, srcDepth int) (*World, pdxcolor.R16Palette, error) {
	widthValue := int(width.Value)
	if widthValue%2 != 0 {
		panic("world: world width must be even")
	}
	if widthValue == 0 {
		panic("world: world width must be greater than 0")
	}

	rowBytes := widthValue * srcDepth
	if rowBytes == 0 || len(img)%rowBytes != 0 {
		return nil, pdxcolor.R16Palette{}, fmt.Errorf("world: image data length %d is not a multiple of width*depth (%d)", len(img), rowBytes)
	}
	height := len(img) / rowBytes

	hemisphereWidth := int(width.Hemisphere().Value)

	westData := make([]pdxcolor.R16, hemisphereWidth*height)
	eastData := make([]pdxcolor.R16, hemisphereWidth*height)

	// A dense 2^24-entry direct LUT: O(1) lookup, no hash-map overhead, and
	// cache-friendly for real map images that have huge contiguous regions
	// of the same color.
	colorLUT := make([]uint16, 1<<24)
	for i := range colorLUT {
		colorLUT[i] = uint16(pdxcolor.R16Sentinel)
	}

	palette := make([]pdxcolor.Rgb, 0, 30_000)

	// A one-entry cache exploiting spatial locality: neighboring pixels in
	// a map image usually repeat the same color.
	haveCache := false
	var cacheColor pdxcolor.Rgb
	var cacheIdx uint16

	for y := 0; y < height; y++ {
		rowStart := y * rowBytes
		row := img[rowStart : rowStart+rowBytes]
		westBytes := row[:hemisphereWidth*srcDepth]
		eastBytes := row[hemisphereWidth*srcDepth:]

		rowOffset := y * hemisphereWidth
		westDst := westData[rowOffset : rowOffset+hemisphereWidth]
		eastDst := eastData[rowOffset : rowOffset+hemisphereWidth]

		for _, half := range [2]struct {
			src []byte
			dst []pdxcolor.R16
		}{{westBytes, westDst}, {eastBytes, eastDst}} {
			for i := 0; i < hemisphereWidth; i++ {
				px := half.src[i*srcDepth : i*srcDepth+3]
				r, g, b := px[0], px[1], px[2]
				key := pdxcolor.NewRgb(r, g, b)

				if haveCache && cacheColor == key {
					half.dst[i] = pdxcolor.R16(cacheIdx)
					continue
				}

				lutKey := key.Key()
				idx := colorLUT[lutKey]
				if idx == uint16(pdxcolor.R16Sentinel) {
					if len(palette) >= maxPaletteColors {
						return nil, pdxcolor.R16Palette{}, ErrPaletteOverflow{}
					}
					idx = uint16(len(palette))
					palette = append(palette, key)
					colorLUT[lutKey] = idx
				}

				cacheColor, cacheIdx, haveCache = key, idx, true
				half.dst[i] = pdxcolor.R16(idx)
			}
		}
	}

	hemisphereWidthLen := width.Hemisphere()
	w := NewBuilder(
		NewHemisphere(westData, hemisphereWidthLen),
		NewHemisphere(eastData, hemisphereWidthLen),
	).Build()

	return w, pdxcolor.NewR16Palette(palette), nil
}
