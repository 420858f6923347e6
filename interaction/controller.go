// SPDX-License-Identifier: Unlicense OR MIT

// Package interaction turns raw input events (cursor move, mouse button,
// scroll, keyboard, resize, tick) into viewport mutations, without any
// rendering or platform-specific concerns of its own.
package interaction

import (
	"math"
	"time"

	"pdxmap.dev/core/units"
	"pdxmap.dev/core/viewport"
)

const (
	scrollClampLines = 6.0
	scrollZoomBase   = 1.1
)

// Controller owns a viewport and publishes its bounds to the renderer each
// frame; it also tracks cursor, drag, and keyboard state.
type Controller struct {
	viewport *viewport.MapViewport

	cursorPos    units.LogicalPoint[float32]
	hasCursorPos bool

	dragAnchorWorld units.WorldPoint[float32]
	isDragging      bool

	keyboard          KeyboardState
	wasKeyboardActive bool
}

// New builds a controller over a fresh viewport sized to canvas, against a
// world that is 2*hemisphereWidth by hemisphereHeight.
func New(canvasWidth, canvasHeight, hemisphereWidth, hemisphereHeight uint32) *Controller {
	return &Controller{
		viewport: viewport.New(canvasWidth, canvasHeight, hemisphereWidth, hemisphereHeight),
	}
}

// OnCursorMove records the new cursor position and, if dragging, pans to
// keep the drag anchor under it.
func (c *Controller) OnCursorMove(cursor units.LogicalPoint[float32]) {
	c.cursorPos = cursor
	c.hasCursorPos = true

	if c.isDragging {
		c.viewport.SetWorldPointUnderCursor(c.dragAnchorWorld, cursor)
	}
}

// OnMouseButton starts or ends a drag on the Left button; Right and Middle
// are ignored.
func (c *Controller) OnMouseButton(button MouseButton, pressed bool) {
	if button != Left {
		return
	}

	if pressed {
		c.dragAnchorWorld = c.viewport.CanvasToWorld(c.CursorPosition())
		c.isDragging = true
	} else {
		c.isDragging = false
	}
}

// OnScroll applies exponential zoom at the cursor. Lines are clamped to
// [-6, 6] before converting to a zoom delta of 1.1^lines; near-zero scroll
// is ignored.
func (c *Controller) OnScroll(scrollLines float32) {
	if float32(math.Abs(float64(scrollLines))) < epsilon {
		return
	}

	clamped := clampf32(scrollLines, -scrollClampLines, scrollClampLines)
	zoomDelta := float32(math.Pow(scrollZoomBase, float64(clamped)))

	c.viewport.ZoomAtPoint(c.CursorPosition(), zoomDelta)

	if c.isDragging {
		c.dragAnchorWorld = c.viewport.CanvasToWorld(c.CursorPosition())
	}
}

const epsilon = 1e-6

// OnKeyDown/OnKeyUp track which pan directions are currently held.
func (c *Controller) OnKeyDown(key KeyboardKey) { c.keyboard.Set(key, true) }
func (c *Controller) OnKeyUp(key KeyboardKey)   { c.keyboard.Set(key, false) }

// Tick applies one frame's worth of keyboard panning. The first active
// frame after an idle period is treated as delta=0, so a stale delta
// accumulated while idle never produces a jump on the next keypress.
func (c *Controller) Tick(delta time.Duration) {
	isActive := c.keyboard.Active()

	if isActive && !c.wasKeyboardActive {
		delta = 0
	}
	c.wasKeyboardActive = isActive

	if isActive {
		c.applyKeyboard(delta)
	}
}

func (c *Controller) applyKeyboard(delta time.Duration) {
	bounds := c.viewport.ViewportBounds()
	minDim := bounds.Width
	if bounds.Height < minDim {
		minDim = bounds.Height
	}
	baseStep := float32(minDim) * float32(delta.Seconds())

	var dx, dy float32
	if c.keyboard.Left {
		dx -= 1
	}
	if c.keyboard.Right {
		dx += 1
	}
	if c.keyboard.Up {
		dy -= 1
	}
	if c.keyboard.Down {
		dy += 1
	}

	magnitude := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if magnitude < epsilon {
		return
	}
	dx /= magnitude
	dy /= magnitude

	c.viewport.PanBy(units.WorldPoint[float32]{X: dx * baseStep, Y: dy * baseStep})

	if c.isDragging {
		c.dragAnchorWorld = c.viewport.CanvasToWorld(c.CursorPosition())
	}
}

// KeyboardActive reports whether any pan direction is currently held.
func (c *Controller) KeyboardActive() bool { return c.keyboard.Active() }

// OnResize forwards a canvas resize to the viewport.
func (c *Controller) OnResize(width, height uint32) {
	c.viewport.Resize(width, height)
}

func (c *Controller) ViewportBounds() viewport.Bounds { return c.viewport.ViewportBounds() }
func (c *Controller) ZoomLevel() float32              { return c.viewport.ZoomLevel() }
func (c *Controller) IsDragging() bool                { return c.isDragging }

// CursorPosition returns the last known cursor position, defaulting to the
// canvas center if the cursor has never moved.
func (c *Controller) CursorPosition() units.LogicalPoint[float32] {
	if c.hasCursorPos {
		return c.cursorPos
	}
	bounds := c.viewport.ViewportBounds()
	return units.LogicalPoint[float32]{X: float32(bounds.Width) / 2, Y: float32(bounds.Height) / 2}
}

// WorldPosition returns the world point currently under the cursor.
func (c *Controller) WorldPosition() units.WorldPoint[float32] {
	return c.viewport.CanvasToWorld(c.CursorPosition())
}

// CenterOn repositions the viewport so world appears at the canvas center.
func (c *Controller) CenterOn(world units.WorldPoint[float32]) {
	bounds := c.viewport.ViewportBounds()
	center := units.LogicalPoint[float32]{X: float32(bounds.Width) / 2, Y: float32(bounds.Height) / 2}
	c.viewport.SetWorldPointUnderCursor(world, center)
}

func clampf32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
