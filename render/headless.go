// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"

	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/viewport"
)

// ViewportData is a captured frame's pixels, exposed row-by-row so a
// caller (the screenshot compositor, a test) can work with one scanline
// at a time instead of the whole buffer.
type ViewportData struct {
	width, height int
	pix           []byte // tightly packed RGBA8
}

func (v *ViewportData) Width() int  { return v.width }
func (v *ViewportData) Height() int { return v.height }

// Row returns the y-th scanline, 4 bytes per pixel.
func (v *ViewportData) Row(y int) []byte {
	start := y * v.width * 4
	return v.pix[start : start+v.width*4]
}

// Bytes returns the whole buffer.
func (v *ViewportData) Bytes() []byte { return v.pix }

// HeadlessMapRenderer renders into an offscreen color attachment with no
// presentable surface at all — the renderer a CLI tool or a screenshot
// service uses.
type HeadlessMapRenderer struct {
	dev    driver.Device
	canvas CanvasSize
	layers []RenderLayer

	tex driver.Texture
	fb  driver.Framebuffer
}

// NewHeadlessMapRenderer builds a renderer over dev, sized to canvas.
func NewHeadlessMapRenderer(dev driver.Device, canvas CanvasSize, layers ...RenderLayer) *HeadlessMapRenderer {
	r := &HeadlessMapRenderer{dev: dev, layers: layers}
	r.Resize(canvas)
	return r
}

// Resize reconfigures the offscreen target and every layer for a new
// size — used by the screenshot compositor to switch between the west
// and east hemisphere passes without tearing down the device.
func (r *HeadlessMapRenderer) Resize(canvas CanvasSize) {
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

// CaptureViewport renders vb and reads the result back.
func (r *HeadlessMapRenderer) CaptureViewport(vb viewport.Bounds) (*ViewportData, error) {
	frame := r.dev.BeginFrame(r.fb, true, image.Point{X: r.canvas.X, Y: r.canvas.Y})
	r.dev.BindFramebuffer(frame)
	for _, l := range r.layers {
		l.Update(r.dev)
	}
	for _, l := range r.layers {
		l.Draw(r.dev, vb, r.canvas)
	}
	r.dev.EndFrame()

	img, err := driver.DownloadImage(r.fb, image.Rect(0, 0, r.canvas.X, r.canvas.Y))
	if err != nil {
		return nil, err
	}
	return &ViewportData{width: r.canvas.X, height: r.canvas.Y, pix: img.Pix}, nil
}

// Finish releases the renderer's GPU resources.
func (r *HeadlessMapRenderer) Finish() {
	if r.fb != nil {
		r.fb.Release()
	}
	if r.tex != nil {
		r.tex.Release()
	}
	r.dev.Release()
}
