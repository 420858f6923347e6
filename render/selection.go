// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"sync"

	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/units"
	"pdxmap.dev/core/viewport"
)

// SelectionBox is a rectangle in logical (CSS-pixel) canvas coordinates,
// as the interaction controller reports it (e.g. a drag-select gesture).
type SelectionBox struct {
	Min, Max units.LogicalPoint[float32]
}

// Normalized returns min/max reordered so Min is always the
// smaller-coordinate corner, tolerating a drag performed in any direction.
func (b SelectionBox) Normalized() (units.LogicalPoint[float32], units.LogicalPoint[float32]) {
	min, max := b.Min, b.Max
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	return min, max
}

// SharedSelectionState is a single-slot mailbox for the current selection,
// written by the interaction controller and read once per frame by
// SelectionLayer. Rendering is single-threaded by contract (spec §5), so
// lock contention here is a bug, not a race to recover from.
type SharedSelectionState struct {
	mu  sync.Mutex
	box *SelectionBox
}

// Set replaces the current selection, or clears it if box is nil.
func (s *SharedSelectionState) Set(box *SelectionBox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.box = box
}

// Get returns the current selection under a try-lock, panicking if the
// lock is already held — see SelectionLayer.Update.
func (s *SharedSelectionState) Get() *SelectionBox {
	if !s.mu.TryLock() {
		panic("render: SharedSelectionState lock contention — rendering must be single-threaded")
	}
	defer s.mu.Unlock()
	return s.box
}

var selectionQuadColor = [4]uint8{51, 128, 204, 77} // (0.2, 0.5, 0.8, 0.3) * 255

// SelectionLayer draws a single translucent quad over the current
// selection box, converting it from logical to physical pixels every time
// it draws.
type SelectionLayer struct {
	state       *SharedSelectionState
	scaleFactor float32

	hasSelection   bool
	lastSelection  *SelectionBox
	needsRedraw    bool
	canvas         CanvasSize
}

// NewSelectionLayer builds a layer reading from state, scaling logical
// coordinates to physical by scaleFactor (the device pixel ratio).
func NewSelectionLayer(state *SharedSelectionState, scaleFactor float32) *SelectionLayer {
	return &SelectionLayer{state: state, scaleFactor: scaleFactor, needsRedraw: true}
}

func (l *SelectionLayer) Resize(dev driver.Device, format driver.TextureFormat, canvas CanvasSize) {
	l.canvas = canvas
	l.needsRedraw = true
}

// Update reads the shared selection under a try-lock (panicking on
// contention, per the single-threaded rendering contract) and marks the
// layer dirty only when the selection actually changed.
func (l *SelectionLayer) Update(dev driver.Device) {
	current := l.state.Get()
	l.hasSelection = current != nil

	changed := (current == nil) != (l.lastSelection == nil)
	if !changed && current != nil && l.lastSelection != nil {
		changed = *current != *l.lastSelection
	}
	if changed {
		l.lastSelection = current
		l.needsRedraw = true
	}
}

func (l *SelectionLayer) Draw(dev driver.Device, vb viewport.Bounds, canvas CanvasSize) {
	if !l.hasSelection || l.lastSelection == nil {
		return
	}

	min, max := l.lastSelection.Normalized()
	physMin := units.ToPhysicalPoint(min, l.scaleFactor)
	physMax := units.ToPhysicalPoint(max, l.scaleFactor)

	x0 := clampToCanvas(int(physMin.X), canvas.X)
	y0 := clampToCanvas(int(physMin.Y), canvas.Y)
	x1 := clampToCanvas(int(physMax.X), canvas.X)
	y1 := clampToCanvas(int(physMax.Y), canvas.Y)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	dev.Viewport(x0, y0, x1-x0, y1-y0)
	prog, err := dev.NewProgram(nil, swgpu.FragmentShader(func(s *swgpu.SampleContext, x, y int) [4]uint8 {
		return selectionQuadColor
	}))
	if err != nil {
		panic(err)
	}
	dev.SetBlend(true)
	dev.BindProgram(prog)
	dev.DrawArrays(driver.DrawModeTriangles, 0, 6)
	dev.Viewport(0, 0, canvas.X, canvas.Y)
	l.needsRedraw = false
}

func clampToCanvas(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
