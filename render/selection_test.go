// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"
	"testing"

	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/units"
	"pdxmap.dev/core/viewport"
)

func lp(x, y float32) units.LogicalPoint[float32] {
	return units.LogicalPoint[float32]{X: x, Y: y}
}

func TestSharedSelectionStateGetPanicsOnContention(t *testing.T) {
	state := &SharedSelectionState{}
	state.mu.Lock() // simulate another goroutine already holding the lock

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on lock contention")
		}
	}()
	state.Get()
}

func TestSelectionBoxNormalizedReordersCorners(t *testing.T) {
	b := SelectionBox{Min: lp(100, 100), Max: lp(10, 10)}
	min, max := b.Normalized()
	if min != lp(10, 10) || max != lp(100, 100) {
		t.Fatalf("Normalized() = %+v, %+v", min, max)
	}
}

func TestSelectionLayerDrawsQuadWhenSelectionSet(t *testing.T) {
	state := &SharedSelectionState{}
	state.Set(&SelectionBox{Min: lp(0, 0), Max: lp(10, 10)})

	l := NewSelectionLayer(state, 1.0)
	dev := swgpu.NewDevice(8192)
	canvas := CanvasSize{X: 100, Y: 100}
	l.Resize(dev, driver.TextureFormatRGBA8, canvas)
	l.Update(dev)

	fbTex, _ := dev.NewTexture(driver.TextureFormatRGBA8, 100, 100, driver.FilterNearest)
	fb, _ := dev.NewFramebuffer(fbTex)
	dev.BindFramebuffer(fb)
	dev.Clear(0, 0, 0, 0)

	l.Draw(dev, viewport.Bounds{}, canvas)

	out := image.NewRGBA(image.Rect(0, 0, 100, 100))
	fb.(*swgpu.Framebuffer).ReadPixels(out.Bounds(), out.Pix)
	if out.Pix[3] == 0 {
		t.Fatal("expected translucent pixel inside the selection rect")
	}
	farOff := (50*100 + 50) * 4
	if out.Pix[farOff+3] != 0 {
		t.Fatal("expected no drawing outside the selection rect")
	}
}

func TestSelectionLayerSkipsDrawWhenNoSelection(t *testing.T) {
	state := &SharedSelectionState{}
	l := NewSelectionLayer(state, 1.0)
	dev := swgpu.NewDevice(8192)
	canvas := CanvasSize{X: 20, Y: 20}
	l.Resize(dev, driver.TextureFormatRGBA8, canvas)
	l.Update(dev)

	fbTex, _ := dev.NewTexture(driver.TextureFormatRGBA8, 20, 20, driver.FilterNearest)
	fb, _ := dev.NewFramebuffer(fbTex)
	dev.BindFramebuffer(fb)
	dev.Clear(0, 0, 0, 0)

	l.Draw(dev, viewport.Bounds{}, canvas)

	out := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fb.(*swgpu.Framebuffer).ReadPixels(out.Bounds(), out.Pix)
	for _, b := range out.Pix {
		if b != 0 {
			t.Fatal("expected untouched framebuffer with no active selection")
		}
	}
}
