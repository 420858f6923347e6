// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/hashtable"
	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/viewport"
)

// borderZoomThreshold is the zoom level at which location borders start
// being drawn (spec §4.6): below it, per-pixel outlines would alias into
// noise, so they're simply skipped.
const borderZoomThreshold = 0.85

// BaseMapLayer draws the two hemisphere quads: sample R16, look up the
// palette color, hash-probe LocationArrays, resolve primary/secondary by
// texel parity, and draw owner/location borders where neighboring
// fragments disagree.
//
// Unlike a hardware pipeline, the software device has no persistent
// fragment program bound to immutable uniforms: each Draw call builds a
// fresh closure capturing that frame's viewport, since the viewport is the
// only thing that changes frame to frame.
type BaseMapLayer struct {
	west, east        []uint16
	hemiWidth         int
	hemiHeight        int
	palette           pdxcolor.R16Palette
	locations         *hashtable.LocationArrays
	noLocationBorders bool
	noOwnerBorders    bool
	zoom              float32

	westTex, eastTex driver.Texture
}

// NewBaseMapLayer builds a layer over already-ingested hemisphere data.
// west/east are R16 indices in row-major order, hemiWidth*hemiHeight each.
func NewBaseMapLayer(west, east []uint16, hemiWidth, hemiHeight int, palette pdxcolor.R16Palette, locations *hashtable.LocationArrays) *BaseMapLayer {
	return &BaseMapLayer{
		west: west, east: east,
		hemiWidth: hemiWidth, hemiHeight: hemiHeight,
		palette:   palette,
		locations: locations,
		zoom:      1,
	}
}

// SetBorderToggles mirrors the CLI's --no-location-borders/--no-owner-borders
// flags.
func (l *BaseMapLayer) SetBorderToggles(noLocationBorders, noOwnerBorders bool) {
	l.noLocationBorders = noLocationBorders
	l.noOwnerBorders = noOwnerBorders
}

// SetZoom feeds the current zoom level for the border zoom gate (spec
// §4.6: location borders enable only at zoom >= 0.85).
func (l *BaseMapLayer) SetZoom(zoom float32) { l.zoom = zoom }

func (l *BaseMapLayer) Resize(dev driver.Device, format driver.TextureFormat, canvas CanvasSize) {
	westTex, err := dev.NewTexture(driver.TextureFormatR16Uint, l.hemiWidth, l.hemiHeight, driver.FilterNearest)
	if err != nil {
		panic(err)
	}
	eastTex, err := dev.NewTexture(driver.TextureFormatR16Uint, l.hemiWidth, l.hemiHeight, driver.FilterNearest)
	if err != nil {
		panic(err)
	}
	westTex.Upload(image.Point{}, image.Point{X: l.hemiWidth, Y: l.hemiHeight}, r16ToBytes(l.west))
	eastTex.Upload(image.Point{}, image.Point{X: l.hemiWidth, Y: l.hemiHeight}, r16ToBytes(l.east))
	l.westTex = westTex
	l.eastTex = eastTex
}

func r16ToBytes(vals []uint16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}

func (l *BaseMapLayer) Update(dev driver.Device) {}

func (l *BaseMapLayer) Draw(dev driver.Device, vb viewport.Bounds, canvas CanvasSize) {
	dev.BindTexture(0, l.westTex)
	dev.BindTexture(1, l.eastTex)
	dev.Viewport(0, 0, canvas.X, canvas.Y)

	fill, err := dev.NewProgram(nil, swgpu.FragmentShader(l.fillFragment(vb, canvas)))
	if err != nil {
		panic(err)
	}
	dev.SetBlend(false)
	dev.BindProgram(fill)
	dev.DrawArrays(driver.DrawModeTriangles, 0, 6)

	drawLocationBorders := !l.noLocationBorders && l.zoom >= borderZoomThreshold
	drawOwnerBorders := !l.noOwnerBorders
	if !drawLocationBorders && !drawOwnerBorders {
		return
	}
	borders, err := dev.NewProgram(nil, swgpu.FragmentShader(l.borderFragment(vb, canvas, drawLocationBorders, drawOwnerBorders)))
	if err != nil {
		panic(err)
	}
	dev.SetBlend(true)
	dev.BindProgram(borders)
	dev.DrawArrays(driver.DrawModeTriangles, 0, 6)
}

// worldToTexel maps a canvas pixel to the world-space texel it samples,
// given vb's visible rectangle stretched over canvas.
func (l *BaseMapLayer) worldToTexel(vb viewport.Bounds, canvas CanvasSize, x, y int) (int, int) {
	mapWidth := l.hemiWidth * 2
	wx := int(vb.X) + x*int(vb.Width)/maxInt(canvas.X, 1)
	wy := int(vb.Y) + y*int(vb.Height)/maxInt(canvas.Y, 1)
	wx = ((wx % mapWidth) + mapWidth) % mapWidth
	if wy < 0 {
		wy = 0
	} else if wy >= l.hemiHeight {
		wy = l.hemiHeight - 1
	}
	return wx, wy
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resolvedFragment is one fragment's fully-looked-up render state.
type resolvedFragment struct {
	found      bool
	color      [4]uint8
	ownerColor hashtable.GpuColor
	locIdx     hashtable.GpuLocationIdx
}

func (l *BaseMapLayer) resolve(wx, wy int) resolvedFragment {
	// Neighbor lookups past the map edge wrap in X and clamp in Y.
	mapWidth := l.hemiWidth * 2
	wx = ((wx % mapWidth) + mapWidth) % mapWidth
	if wy >= l.hemiHeight {
		wy = l.hemiHeight - 1
	}
	var r16 uint16
	if wx < l.hemiWidth {
		r16 = l.west[wy*l.hemiWidth+wx]
	} else {
		r16 = l.east[wy*l.hemiWidth+(wx-l.hemiWidth)]
	}
	if int(r16) >= l.palette.Len() {
		return resolvedFragment{}
	}
	rgb := l.palette.At(pdxcolor.R16(r16))
	key := hashtable.ColorFromRgb(rgb)
	slot, ok := l.locations.Find(key)
	if !ok {
		// A palette entry with no hash-table slot: render its raw
		// palette color rather than dropping the pixel, so a caller
		// that ingested an image without building LocationArrays for
		// every color still gets a usable preview.
		return resolvedFragment{color: [4]uint8{rgb.R(), rgb.G(), rgb.B(), 255}}
	}
	state := l.locations.GetMut(slot)

	var out hashtable.GpuColor
	if (wx+wy)%2 == 0 {
		out = state.PrimaryColor()
	} else {
		out = state.SecondaryColor()
	}
	return resolvedFragment{
		found:      true,
		color:      gpuColorToRGBA(out),
		ownerColor: state.OwnerColor(),
		locIdx:     slot,
	}
}

func gpuColorToRGBA(c hashtable.GpuColor) [4]uint8 {
	return [4]uint8{byte(c >> 16), byte(c >> 8), byte(c), 255}
}

func (l *BaseMapLayer) fillFragment(vb viewport.Bounds, canvas CanvasSize) swgpu.FragmentShader {
	return func(s *swgpu.SampleContext, x, y int) [4]uint8 {
		wx, wy := l.worldToTexel(vb, canvas, x, y)
		return l.resolve(wx, wy).color
	}
}

// locationBorderColor and ownerBorderColor are the translucent outline
// colors drawn where neighboring fragments disagree.
var (
	locationBorderColor = [4]uint8{40, 40, 40, 160}
	ownerBorderColor    = [4]uint8{0, 0, 0, 220}
)

func (l *BaseMapLayer) borderFragment(vb viewport.Bounds, canvas CanvasSize, drawLocation, drawOwner bool) swgpu.FragmentShader {
	return func(s *swgpu.SampleContext, x, y int) [4]uint8 {
		wx, wy := l.worldToTexel(vb, canvas, x, y)
		here := l.resolve(wx, wy)
		if !here.found {
			return [4]uint8{}
		}

		east := l.resolve(wx+1, wy)
		south := l.resolve(wx, wy+1)

		if drawOwner && ((east.found && east.ownerColor != here.ownerColor) ||
			(south.found && south.ownerColor != here.ownerColor)) {
			return ownerBorderColor
		}

		if drawLocation && !l.skipLocationBorder(here.locIdx) &&
			((east.found && east.locIdx != here.locIdx) ||
				(south.found && south.locIdx != here.locIdx)) {
			return locationBorderColor
		}

		return [4]uint8{}
	}
}

// skipLocationBorder implements the spec's "skipped when HIGHLIGHTED &
// NO_LOCATION_BORDERS is set" rule: a location opts out of its own border
// only when it's both flagged NoLocationBorders and currently Highlighted.
func (l *BaseMapLayer) skipLocationBorder(idx hashtable.GpuLocationIdx) bool {
	flags := l.locations.GetMut(idx).Flags()
	return flags.Contains(hashtable.NoLocationBorders | hashtable.Highlighted)
}
