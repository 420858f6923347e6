// SPDX-License-Identifier: Unlicense OR MIT

// Package viewport implements platform-agnostic map navigation: viewport
// position, zoom level, and the coordinate transforms between canvas
// (logical-pixel) space and world space. It holds no rendering or
// platform-specific state.
package viewport

import "pdxmap.dev/core/units"

// Bounds is the currently visible rectangle in world coordinates.
type Bounds struct {
	X, Y, Width, Height uint32
}

// MapViewport tracks viewport position and zoom against a fixed-size
// toroidal world. Horizontal position always wraps; vertical position
// clamps.
type MapViewport struct {
	viewportX, viewportY      uint32
	canvasWidth, canvasHeight uint32
	zoomLevel                 float32
	mapWidth, mapHeight       uint32
}

// New builds a viewport sized to the canvas, centered over a world that is
// 2*hemisphereWidth by hemisphereHeight (the world is always two horizontal
// hemispheres).
func New(canvasWidth, canvasHeight, hemisphereWidth, hemisphereHeight uint32) *MapViewport {
	mapWidth := hemisphereWidth * 2
	mapHeight := hemisphereHeight

	minZoomX := float32(canvasWidth) / float32(mapWidth)
	minZoomY := float32(canvasHeight) / float32(mapHeight)
	minZoom := max32(minZoomX, minZoomY)
	if minZoom < 1.0 {
		minZoom = 1.0
	}

	initialWorldWidth := canvasWidth
	if w := uint32(float32(canvasWidth) / minZoom); w > initialWorldWidth {
		initialWorldWidth = w
	}
	initialWorldHeight := canvasHeight
	if h := uint32(float32(canvasHeight) / minZoom); h > initialWorldHeight {
		initialWorldHeight = h
	}

	return &MapViewport{
		viewportX:    (mapWidth - initialWorldWidth) / 2,
		viewportY:    (mapHeight - initialWorldHeight) / 2,
		canvasWidth:  canvasWidth,
		canvasHeight: canvasHeight,
		zoomLevel:    minZoom,
		mapWidth:     mapWidth,
		mapHeight:    mapHeight,
	}
}

// ZoomAtPoint keeps the world point under the cursor stationary while
// scaling zoomLevel by delta, clamped to [minZoom, 2.0].
func (v *MapViewport) ZoomAtPoint(cursor units.LogicalPoint[float32], delta float32) {
	currentWorldWidth := float32(v.canvasWidth) / v.zoomLevel
	currentWorldHeight := float32(v.canvasHeight) / v.zoomLevel

	ratioX := cursor.X / float32(v.canvasWidth)
	ratioY := cursor.Y / float32(v.canvasHeight)
	worldX := float32(v.viewportX) + ratioX*currentWorldWidth
	worldY := float32(v.viewportY) + ratioY*currentWorldHeight

	v.zoomLevel *= delta

	minZoomX := float32(v.canvasWidth) / float32(v.mapWidth)
	minZoomY := float32(v.canvasHeight) / float32(v.mapHeight)
	minZoom := max32(minZoomX, minZoomY)
	v.zoomLevel = clamp32(v.zoomLevel, minZoom, 2.0)

	newWorldWidth := uint32(float32(v.canvasWidth) / v.zoomLevel)
	newWorldHeight := uint32(float32(v.canvasHeight) / v.zoomLevel)

	newViewportX := worldX - ratioX*float32(newWorldWidth)
	newViewportY := worldY - ratioY*float32(newWorldHeight)

	v.setPosition(newViewportX, newViewportY, newWorldHeight)
}

// Resize updates canvas dimensions, raising zoom to the new minimum if
// needed and renormalizing viewport position.
func (v *MapViewport) Resize(width, height uint32) {
	v.canvasWidth = width
	v.canvasHeight = height

	minZoomX := float32(width) / float32(v.mapWidth)
	minZoomY := float32(height) / float32(v.mapHeight)
	minZoom := max32(minZoomX, minZoomY)
	if v.zoomLevel < minZoom {
		v.zoomLevel = minZoom
	}

	worldHeight := uint32(float32(height) / v.zoomLevel)
	maxY := saturatingSub(v.mapHeight, worldHeight)
	v.viewportX %= v.mapWidth
	if v.viewportY > maxY {
		v.viewportY = maxY
	}
}

// PanBy translates the viewport origin by a world-space delta: X wraps mod
// map width, Y clamps to [0, mapHeight-worldHeight].
func (v *MapViewport) PanBy(delta units.WorldPoint[float32]) {
	_, worldHeight := v.worldArea()
	v.setPosition(float32(v.viewportX)+delta.X, float32(v.viewportY)+delta.Y, worldHeight)
}

func (v *MapViewport) ZoomLevel() float32 { return v.zoomLevel }
func (v *MapViewport) MapWidth() uint32   { return v.mapWidth }
func (v *MapViewport) MapHeight() uint32  { return v.mapHeight }

func (v *MapViewport) worldArea() (uint32, uint32) {
	return uint32(float32(v.canvasWidth) / v.zoomLevel), uint32(float32(v.canvasHeight) / v.zoomLevel)
}

// ViewportBounds returns the currently visible world rectangle.
func (v *MapViewport) ViewportBounds() Bounds {
	w, h := v.worldArea()
	return Bounds{X: v.viewportX, Y: v.viewportY, Width: w, Height: h}
}

// CanvasToWorld maps a logical canvas point to its world-space coordinate.
func (v *MapViewport) CanvasToWorld(canvas units.LogicalPoint[float32]) units.WorldPoint[float32] {
	worldWidth := float32(v.canvasWidth) / v.zoomLevel
	worldHeight := float32(v.canvasHeight) / v.zoomLevel

	ratioX := canvas.X / float32(v.canvasWidth)
	ratioY := canvas.Y / float32(v.canvasHeight)

	return units.WorldPoint[float32]{
		X: float32(v.viewportX) + ratioX*worldWidth,
		Y: float32(v.viewportY) + ratioY*worldHeight,
	}
}

// SetWorldPointUnderCursor repositions the viewport so world appears at the
// given canvas position — the inverse of CanvasToWorld, used to keep an
// anchor point stationary during drag/zoom.
func (v *MapViewport) SetWorldPointUnderCursor(world units.WorldPoint[float32], canvas units.LogicalPoint[float32]) {
	worldWidth := float32(v.canvasWidth) / v.zoomLevel
	worldHeight := float32(v.canvasHeight) / v.zoomLevel

	ratioX := canvas.X / float32(v.canvasWidth)
	ratioY := canvas.Y / float32(v.canvasHeight)

	newViewportX := world.X - ratioX*worldWidth
	newViewportY := world.Y - ratioY*worldHeight

	v.setPosition(newViewportX, newViewportY, uint32(worldHeight))
}

func (v *MapViewport) setPosition(x, y float32, worldHeight uint32) {
	maxY := v.mapHeight - worldHeight

	xi := int32(x)
	v.viewportX = uint32(((xi % int32(v.mapWidth)) + int32(v.mapWidth)) % int32(v.mapWidth))

	yi := int32(y)
	if yi < 0 {
		yi = 0
	}
	if yi > int32(maxY) {
		yi = int32(maxY)
	}
	v.viewportY = uint32(yi)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func saturatingSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}
