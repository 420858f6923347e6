// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"testing"

	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/viewport"
)

func TestSurfaceMapRendererRenderAndPresent(t *testing.T) {
	dev := swgpu.NewDevice(8192)
	stamp := NewDateStampLayer("1444.11.11", 1)
	r := NewSurfaceMapRenderer(dev, CanvasSize{X: 50, Y: 30}, stamp)
	defer r.Release()

	r.Render(viewport.Bounds{Width: 50, Height: 30})
	img, err := r.Present()
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 30 {
		t.Fatalf("bounds = %v, want 50x30", img.Bounds())
	}

	foundNonZeroAlpha := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			foundNonZeroAlpha = true
			break
		}
	}
	if !foundNonZeroAlpha {
		t.Fatal("expected the date stamp quad to leave some opaque pixels")
	}
}

func TestSurfaceMapRendererResizeRebuildsLayers(t *testing.T) {
	dev := swgpu.NewDevice(8192)
	stamp := NewDateStampLayer("1444.11.11", 1)
	r := NewSurfaceMapRenderer(dev, CanvasSize{X: 50, Y: 30}, stamp)
	defer r.Release()

	r.Resize(CanvasSize{X: 20, Y: 20})
	r.Render(viewport.Bounds{Width: 20, Height: 20})
	img, err := r.Present()
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v, want 20x20", img.Bounds())
	}
}
