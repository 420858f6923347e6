// SPDX-License-Identifier: Unlicense OR MIT

package viewport

import (
	"testing"

	"pdxmap.dev/core/units"
)

func lp(x, y float32) units.LogicalPoint[float32] {
	return units.LogicalPoint[float32]{X: x, Y: y}
}

func TestNewCentersViewportAndClampsZoom(t *testing.T) {
	v := New(1024, 768, 8192, 8192)
	if v.ZoomLevel() < 1.0 {
		t.Fatalf("ZoomLevel() = %f, want >= 1.0", v.ZoomLevel())
	}
	// World is 16384x8192 and 1024x768 of it is visible at zoom 1.
	if b := v.ViewportBounds(); b.X != (16384-1024)/2 || b.Y != (8192-768)/2 {
		t.Fatalf("ViewportBounds() = %+v, want origin (%d,%d)", b, (16384-1024)/2, (8192-768)/2)
	}
}

func TestZoomAtPoint(t *testing.T) {
	v := New(1024, 768, 8192, 8192)
	initialZoom := v.ZoomLevel()

	v.ZoomAtPoint(lp(512, 384), 2.0)
	if v.ZoomLevel() <= initialZoom {
		t.Fatalf("expected zoom in, got %f (was %f)", v.ZoomLevel(), initialZoom)
	}

	v.ZoomAtPoint(lp(512, 384), 0.5)
	if v.ZoomLevel() >= initialZoom*2.0 {
		t.Fatalf("expected zoom out, got %f", v.ZoomLevel())
	}
}

func TestResizeRaisesZoomToNewMinimum(t *testing.T) {
	v := New(1024, 768, 8192, 8192)
	v.Resize(2048, 1536)

	mapWidth := float32(8192 * 2)
	mapHeight := float32(8192)
	expectedMin := max32(2048.0/mapWidth, 1536.0/mapHeight)
	if v.ZoomLevel() < expectedMin {
		t.Fatalf("ZoomLevel() = %f, want >= %f", v.ZoomLevel(), expectedMin)
	}
}

func TestSetWorldPointUnderCursorRoundTrips(t *testing.T) {
	v := New(1024, 768, 8192, 8192)

	world := v.CanvasToWorld(lp(512, 384))
	v.SetWorldPointUnderCursor(world, lp(100, 100))
	roundTripped := v.CanvasToWorld(lp(100, 100))

	if absf32(roundTripped.X-world.X) >= 1.0 {
		t.Fatalf("X drifted: got %f, want ~%f", roundTripped.X, world.X)
	}
	if absf32(roundTripped.Y-world.Y) >= 1.0 {
		t.Fatalf("Y drifted: got %f, want ~%f", roundTripped.Y, world.Y)
	}
}

func TestPanWrapsHorizontallyAndClampsVertically(t *testing.T) {
	v := New(1024, 768, 8192, 8192)
	// Drive the viewport hard left of the world seam; expect wraparound,
	// not a negative position.
	v.SetWorldPointUnderCursor(units.WorldPoint[float32]{X: -100, Y: 0}, lp(0, 0))
	if v.viewportX >= v.mapWidth {
		t.Fatalf("viewportX = %d, want < mapWidth (%d)", v.viewportX, v.mapWidth)
	}

	v.SetWorldPointUnderCursor(units.WorldPoint[float32]{X: 0, Y: 1_000_000}, lp(0, 0))
	if v.viewportY > v.mapHeight {
		t.Fatalf("viewportY = %d, want <= mapHeight (%d)", v.viewportY, v.mapHeight)
	}
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
