// SPDX-License-Identifier: Unlicense OR MIT

package swgpu

import (
	"errors"
	"image"

	"pdxmap.dev/core/render/driver"
)

// Texture is a CPU-resident image: RGBA8 textures store 4 bytes/pixel;
// R16Uint textures store 2 bytes/pixel (little-endian, matching the wire
// format world.Ingest produces).
type Texture struct {
	format driver.TextureFormat
	filter driver.TextureFilter
	width  int
	height int
	pix    []byte
}

func bytesPerPixel(format driver.TextureFormat) int {
	switch format {
	case driver.TextureFormatR16Uint:
		return 2
	default:
		return 4
	}
}

func newTexture(format driver.TextureFormat, width, height int, filter driver.TextureFilter) *Texture {
	bpp := bytesPerPixel(format)
	return &Texture{
		format: format,
		filter: filter,
		width:  width,
		height: height,
		pix:    make([]byte, width*height*bpp),
	}
}

func (t *Texture) bounds() image.Rectangle { return image.Rect(0, 0, t.width, t.height) }

// Upload writes pixels into the rectangle [offset, offset+size), assuming
// pixels is tightly packed row-major at the texture's bytes-per-pixel.
func (t *Texture) Upload(offset, size image.Point, pixels []byte) {
	bpp := bytesPerPixel(t.format)
	rowBytes := size.X * bpp
	for row := 0; row < size.Y; row++ {
		srcStart := row * rowBytes
		dstY := offset.Y + row
		dstStart := (dstY*t.width + offset.X) * bpp
		copy(t.pix[dstStart:dstStart+rowBytes], pixels[srcStart:srcStart+rowBytes])
	}
}

func (t *Texture) Release() {}

// SampleR16 returns the uint16 stored at (x, y), clamped to the texture's
// bounds (the clamp-to-edge sampler spec §6 requires).
func (t *Texture) SampleR16(x, y int) uint16 {
	x = clampInt(x, 0, t.width-1)
	y = clampInt(y, 0, t.height-1)
	off := (y*t.width + x) * 2
	return uint16(t.pix[off]) | uint16(t.pix[off+1])<<8
}

// SampleRGBA8 returns the straight-alpha color at (x, y), clamped to the
// texture's bounds.
func (t *Texture) SampleRGBA8(x, y int) [4]uint8 {
	x = clampInt(x, 0, t.width-1)
	y = clampInt(y, 0, t.height-1)
	off := (y*t.width + x) * 4
	return [4]uint8{t.pix[off], t.pix[off+1], t.pix[off+2], t.pix[off+3]}
}

func (t *Texture) setPixel(x, y int, c [4]uint8) {
	off := (y*t.width + x) * 4
	copy(t.pix[off:off+4], c[:])
}

func (t *Texture) blendPixel(x, y int, c [4]uint8) {
	off := (y*t.width + x) * 4
	srcA := float32(c[3]) / 0xFF
	dstA := float32(t.pix[off+3]) / 0xFF
	outA := srcA + dstA*(1-srcA)
	blend := func(src, dst uint8) uint8 {
		if outA == 0 {
			return 0
		}
		s := float32(src) / 0xFF * srcA
		d := float32(dst) / 0xFF * dstA * (1 - srcA)
		return uint8(clampF((s+d)/outA, 0, 1) * 0xFF)
	}
	t.pix[off] = blend(c[0], t.pix[off])
	t.pix[off+1] = blend(c[1], t.pix[off+1])
	t.pix[off+2] = blend(c[2], t.pix[off+2])
	t.pix[off+3] = uint8(clampF(outA, 0, 1) * 0xFF)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Framebuffer is a render target backed by an RGBA8 Texture.
type Framebuffer struct {
	tex *Texture
}

func newFramebuffer(tex *Texture) *Framebuffer {
	return &Framebuffer{tex: tex}
}

func (f *Framebuffer) clear(r, g, b, a float32) {
	c := [4]uint8{
		uint8(clampF(r, 0, 1) * 0xFF),
		uint8(clampF(g, 0, 1) * 0xFF),
		uint8(clampF(b, 0, 1) * 0xFF),
		uint8(clampF(a, 0, 1) * 0xFF),
	}
	for y := 0; y < f.tex.height; y++ {
		for x := 0; x < f.tex.width; x++ {
			f.tex.setPixel(x, y, c)
		}
	}
}

func (f *Framebuffer) Release() {}

// ReadPixels copies src (relative to the framebuffer's origin) into
// pixels, tightly packed RGBA8.
func (f *Framebuffer) ReadPixels(src image.Rectangle, pixels []byte) error {
	src = src.Intersect(f.tex.bounds())
	rowBytes := src.Dx() * 4
	if len(pixels) < rowBytes*src.Dy() {
		return errors.New("swgpu: pixels buffer too small")
	}
	for row := 0; row < src.Dy(); row++ {
		y := src.Min.Y + row
		srcOff := (y*f.tex.width + src.Min.X) * 4
		dstOff := row * rowBytes
		copy(pixels[dstOff:dstOff+rowBytes], f.tex.pix[srcOff:srcOff+rowBytes])
	}
	return nil
}

// Buffer is a plain byte-backed driver.Buffer.
type Buffer struct {
	typ  driver.BufferBinding
	data []byte
}

func (b *Buffer) Release() {}

func (b *Buffer) Upload(data []byte) {
	if len(data) != len(b.data) {
		b.data = make([]byte, len(data))
	}
	copy(b.data, data)
}

func (b *Buffer) Download(data []byte) error {
	if len(data) != len(b.data) {
		return errors.New("swgpu: download size mismatch")
	}
	copy(data, b.data)
	return nil
}

// Program pairs a fragment shader with whatever uniform buffer was last
// bound to it.
type Program struct {
	fragment FragmentShader
	uniform  *Buffer
}

func (p *Program) Release() {}

func (p *Program) SetUniforms(buf driver.Buffer) {
	b, _ := buf.(*Buffer)
	p.uniform = b
}
