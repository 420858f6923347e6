// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"

	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/viewport"
)

// SurfaceMapRenderer owns the device and a mutable layer list, and renders
// into a presentable target each frame. There is no windowing system in
// this module (an explicit Non-goal), so "presentable" here means the
// caller can read the frame back with Present(); a windowed build would
// swap Present() for an actual surface-present call without touching
// anything else.
type SurfaceMapRenderer struct {
	dev    driver.Device
	canvas CanvasSize
	layers []RenderLayer

	tex driver.Texture
	fb  driver.Framebuffer
}

// NewSurfaceMapRenderer builds a renderer over dev, sized to canvas, with
// layers composited in the given order (base map first per spec §4.6).
func NewSurfaceMapRenderer(dev driver.Device, canvas CanvasSize, layers ...RenderLayer) *SurfaceMapRenderer {
	r := &SurfaceMapRenderer{dev: dev, layers: layers}
	r.Resize(canvas)
	return r
}

// Resize reconfigures the render target and every layer for a new size.
func (r *SurfaceMapRenderer) Resize(canvas CanvasSize) {
	r.canvas = canvas
	tex, err := r.dev.NewTexture(driver.TextureFormatRGBA8, canvas.X, canvas.Y, driver.FilterNearest)
	if err != nil {
		panic(err)
	}
	fb, err := r.dev.NewFramebuffer(tex)
	if err != nil {
		panic(err)
	}
	r.tex = tex
	r.fb = fb
	for _, l := range r.layers {
		l.Resize(r.dev, driver.TextureFormatRGBA8, canvas)
	}
}

// Render runs one full frame: acquire, update every layer, draw every
// layer in order, present.
func (r *SurfaceMapRenderer) Render(vb viewport.Bounds) {
	frame := r.dev.BeginFrame(r.fb, true, image.Point{X: r.canvas.X, Y: r.canvas.Y})
	r.dev.BindFramebuffer(frame)
	for _, l := range r.layers {
		l.Update(r.dev)
	}
	for _, l := range r.layers {
		l.Draw(r.dev, vb, r.canvas)
	}
	r.dev.EndFrame()
}

// Present reads back the last rendered frame.
func (r *SurfaceMapRenderer) Present() (*image.RGBA, error) {
	return driver.DownloadImage(r.fb, image.Rect(0, 0, r.canvas.X, r.canvas.Y))
}

// Release frees the renderer's GPU resources.
func (r *SurfaceMapRenderer) Release() {
	if r.fb != nil {
		r.fb.Release()
	}
	if r.tex != nil {
		r.tex.Release()
	}
	r.dev.Release()
}
