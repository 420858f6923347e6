// SPDX-License-Identifier: Unlicense OR MIT

// Package driver defines the GPU abstraction the map renderer draws
// through. It is a trimmed version of gio's gpu/internal/driver contract:
// only the handful of operations the base-map, date-stamp, and selection
// layers actually issue survive (no compute, no arbitrary vertex layouts,
// no timers) — a real hardware backend implements Device below plus its
// Texture, Buffer, Program and Framebuffer types.
package driver

import (
	"errors"
	"image"
)

// Device represents one GPU context: a place to create textures, buffers
// and programs, and to record a frame's draw calls against.
type Device interface {
	BeginFrame(target RenderTarget, clear bool, viewport image.Point) Framebuffer
	EndFrame()
	Caps() Caps

	NewTexture(format TextureFormat, width, height int, filter TextureFilter) (Texture, error)
	NewFramebuffer(tex Texture) (Framebuffer, error)
	NewBuffer(typ BufferBinding, size int) (Buffer, error)
	NewImmutableBuffer(typ BufferBinding, data []byte) (Buffer, error)
	NewProgram(vertex, fragment Shader) (Program, error)

	Clear(r, g, b, a float32)
	Viewport(x, y, width, height int)
	DrawArrays(mode DrawMode, off, count int)
	SetBlend(enable bool)

	BindProgram(p Program)
	BindFramebuffer(f Framebuffer)
	BindTexture(unit int, t Texture)
	BindVertexBuffer(b Buffer, stride, offset int)

	Release()
}

// RenderTarget is an opaque handle to whatever a Device can render into: a
// presentable surface, or nil for an offscreen framebuffer the device owns.
type RenderTarget interface{}

// Shader is the source for one shader stage. In the software backend this
// is a Go closure; a hardware backend would hold GLSL/HLSL/WGSL text here
// instead, the way gio's shader.Sources does.
type Shader interface{}

type TextureFormat uint8

const (
	TextureFormatR16Uint TextureFormat = iota
	TextureFormatRGBA8
)

type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

type BufferBinding uint8

const (
	BufferBindingVertices BufferBinding = 1 << iota
	BufferBindingUniforms
	BufferBindingFramebuffer
)

type DrawMode uint8

const (
	DrawModeTriangles DrawMode = iota
	DrawModeTriangleStrip
)

type Features uint

const (
	FeatureCompute Features = 1 << iota
)

func (f Features) Has(feats Features) bool { return f&feats == feats }

// Caps describes what a Device supports. The render package does not read
// it; swgpu.Device.NewTexture rejects textures larger than MaxTextureSize
// (hemispheres are 8192 wide, which must fit).
type Caps struct {
	MaxTextureSize int
	Features       Features
}

type Program interface {
	Release()
	SetUniforms(buf Buffer)
}

type Buffer interface {
	Release()
	Upload(data []byte)
	Download(data []byte) error
}

type Framebuffer interface {
	RenderTarget
	Release()
	ReadPixels(src image.Rectangle, pixels []byte) error
}

type Texture interface {
	Release()
	// Upload writes pixels (tightly packed, width*bpp per row) into the
	// rectangle at offset sized size.
	Upload(offset, size image.Point, pixels []byte)
}

var ErrSurfaceLost = errors.New("driver: surface lost")

// DownloadImage reads the whole of f's color attachment within r into a
// freshly allocated RGBA image, the common path HeadlessMapRenderer and
// the screenshot compositor both use.
func DownloadImage(f Framebuffer, r image.Rectangle) (*image.RGBA, error) {
	img := image.NewRGBA(r)
	if err := f.ReadPixels(r, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}
