// SPDX-License-Identifier: Unlicense OR MIT

package interaction

import (
	"testing"
	"time"

	"pdxmap.dev/core/units"
)

func lp(x, y float32) units.LogicalPoint[float32] {
	return units.LogicalPoint[float32]{X: x, Y: y}
}

func TestDragLifecycle(t *testing.T) {
	c := New(800, 600, 500, 500)

	if c.IsDragging() {
		t.Fatal("expected not dragging initially")
	}

	c.OnCursorMove(lp(400, 300))
	if got := c.CursorPosition(); got != lp(400, 300) {
		t.Fatalf("CursorPosition() = %+v", got)
	}

	c.OnMouseButton(Left, true)
	if !c.IsDragging() {
		t.Fatal("expected dragging after left press")
	}

	initial := c.ViewportBounds()
	c.OnCursorMove(lp(450, 350))
	dragged := c.ViewportBounds()
	if initial == dragged {
		t.Fatal("expected viewport to change during drag")
	}

	c.OnMouseButton(Left, false)
	if c.IsDragging() {
		t.Fatal("expected drag to end on release")
	}
}

func TestRightAndMiddleButtonsIgnored(t *testing.T) {
	c := New(800, 600, 500, 500)

	c.OnMouseButton(Right, true)
	if c.IsDragging() {
		t.Fatal("right button must not start a drag")
	}
	c.OnMouseButton(Middle, true)
	if c.IsDragging() {
		t.Fatal("middle button must not start a drag")
	}
}

func TestScrollClamping(t *testing.T) {
	a := New(800, 600, 500, 500)
	a.OnScroll(100.0)

	b := New(800, 600, 500, 500)
	b.OnScroll(6.0)

	if a.ZoomLevel() != b.ZoomLevel() {
		t.Fatalf("clamped scroll mismatch: %f vs %f", a.ZoomLevel(), b.ZoomLevel())
	}
}

func TestScrollIgnoresNearZero(t *testing.T) {
	c := New(800, 600, 500, 500)
	initial := c.ZoomLevel()
	c.OnScroll(0)
	if c.ZoomLevel() != initial {
		t.Fatal("near-zero scroll must be a no-op")
	}
}

func TestKeyboardPanMovesViewport(t *testing.T) {
	c := New(800, 600, 500, 500)
	delta := time.Second

	initial := c.ViewportBounds()
	c.OnKeyDown(ArrowUp)
	c.Tick(delta)
	c.Tick(delta)
	moved := c.ViewportBounds()

	if moved.Y > initial.Y {
		t.Fatalf("expected upward pan to decrease Y, got %d -> %d", initial.Y, moved.Y)
	}
	c.OnKeyUp(ArrowUp)
}

func TestKeyboardPanWithWASD(t *testing.T) {
	c := New(800, 600, 500, 500)
	delta := time.Second

	initial := c.ViewportBounds()
	c.OnKeyDown(KeyW)
	c.Tick(delta)
	c.Tick(delta)
	moved := c.ViewportBounds()

	if moved.Y > initial.Y {
		t.Fatalf("expected W to pan up, got %d -> %d", initial.Y, moved.Y)
	}
	c.OnKeyUp(KeyW)
}

func TestKeyboardTapAfterIdleDoesNotJump(t *testing.T) {
	c := New(800, 600, 5000, 5000)
	step := 10 * time.Millisecond

	c.Tick(step)
	initial := c.ViewportBounds()

	minDim := initial.Width
	if initial.Height < minDim {
		minDim = initial.Height
	}
	expectedDelta := int32(float32(minDim) * float32(step.Seconds()))

	c.OnKeyDown(ArrowRight)
	c.Tick(step)
	c.Tick(step)
	first := c.ViewportBounds()
	firstDeltaX := int32(first.X) - int32(initial.X)

	c.OnKeyUp(ArrowRight)
	c.Tick(step)
	c.Tick(step)
	c.Tick(step)
	c.Tick(step)

	c.OnKeyDown(ArrowRight)
	c.Tick(step)
	c.Tick(step)
	second := c.ViewportBounds()
	secondDeltaX := int32(second.X) - int32(first.X)

	if absInt32(firstDeltaX-expectedDelta) > 1 {
		t.Fatalf("first tap delta = %d, want ~%d", firstDeltaX, expectedDelta)
	}
	if absInt32(secondDeltaX-expectedDelta) > 1 {
		t.Fatalf("second tap delta (after idle) = %d, want ~%d (should not jump)", secondDeltaX, expectedDelta)
	}

	c.OnKeyUp(ArrowRight)
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestResizeChangesBounds(t *testing.T) {
	c := New(800, 600, 500, 500)
	initial := c.ViewportBounds()
	c.OnResize(1024, 768)
	resized := c.ViewportBounds()
	if initial == resized {
		t.Fatal("expected resize to change viewport bounds")
	}
}
