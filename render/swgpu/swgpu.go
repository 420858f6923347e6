// SPDX-License-Identifier: Unlicense OR MIT

// Package swgpu is a software reference implementation of render/driver,
// using only image/image-draw-shaped byte buffers: no cgo, no GL context,
// so it runs anywhere the Go toolchain does. It exists for the same
// reason gio's headless package exists — to exercise the render layers
// without a windowing system — but unlike gio's headless window, there is
// no hardware context behind it at all, by design (see DESIGN.md's Open
// Questions for why a hardware backend is scoped out).
//
// Since there is no shader compiler, a Program's stages are plain Go
// functions: FragmentShader receives a per-pixel sampling context instead
// of running on a GPU core, but the Device bind/draw contract around it
// mirrors a hardware pipeline so a real backend could be dropped in later.
package swgpu

import (
	"errors"
	"image"

	"pdxmap.dev/core/render/driver"
)

// FragmentShader is invoked once per covered pixel. x, y are in the
// current viewport's local coordinates (0,0 at its top-left).
type FragmentShader func(s *SampleContext, x, y int) [4]uint8

// SampleContext exposes whatever the currently bound textures and the
// uniform buffer hold, for a fragment shader to sample.
type SampleContext struct {
	dev *Device
}

// Texture returns the texture bound to unit, or nil if none is bound.
func (s *SampleContext) Texture(unit int) *Texture {
	return s.dev.boundTextures[unit]
}

// Uniform returns the raw bytes of the currently bound program's uniform
// buffer.
func (s *SampleContext) Uniform() []byte {
	if s.dev.boundProgram == nil || s.dev.boundProgram.uniform == nil {
		return nil
	}
	return s.dev.boundProgram.uniform.data
}

// Device is the software driver.Device: every resource is a plain Go
// value, every draw call is a direct pixel loop.
type Device struct {
	caps driver.Caps

	boundProgram  *Program
	boundFB       *Framebuffer
	boundTextures map[int]*Texture
	blendEnabled  bool
	viewport      image.Rectangle
}

// NewDevice returns a ready-to-use software device. maxTextureSize mirrors
// what a hardware Caps.MaxTextureSize would report; NewTexture returns an
// error for any texture wider or taller than it.
func NewDevice(maxTextureSize int) *Device {
	return &Device{
		caps:          driver.Caps{MaxTextureSize: maxTextureSize},
		boundTextures: make(map[int]*Texture),
	}
}

func (d *Device) Caps() driver.Caps { return d.caps }

// BeginFrame ignores target (the software device only ever renders into
// Framebuffers created via NewFramebuffer) and returns the caller-supplied
// target cast back, clearing it first if requested.
func (d *Device) BeginFrame(target driver.RenderTarget, clear bool, viewport image.Point) driver.Framebuffer {
	fb, _ := target.(*Framebuffer)
	if fb == nil {
		fb = newFramebuffer(newTexture(driver.TextureFormatRGBA8, viewport.X, viewport.Y, driver.FilterNearest))
	}
	if clear {
		fb.clear(0, 0, 0, 0)
	}
	d.viewport = image.Rect(0, 0, viewport.X, viewport.Y)
	return fb
}

func (d *Device) EndFrame() {}

func (d *Device) NewTexture(format driver.TextureFormat, width, height int, filter driver.TextureFilter) (driver.Texture, error) {
	if width > d.caps.MaxTextureSize || height > d.caps.MaxTextureSize {
		return nil, errors.New("swgpu: texture exceeds MaxTextureSize")
	}
	return newTexture(format, width, height, filter), nil
}

func (d *Device) NewFramebuffer(tex driver.Texture) (driver.Framebuffer, error) {
	t, ok := tex.(*Texture)
	if !ok {
		return nil, errors.New("swgpu: texture not created by this device")
	}
	return newFramebuffer(t), nil
}

func (d *Device) NewBuffer(typ driver.BufferBinding, size int) (driver.Buffer, error) {
	return &Buffer{typ: typ, data: make([]byte, size)}, nil
}

func (d *Device) NewImmutableBuffer(typ driver.BufferBinding, data []byte) (driver.Buffer, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Buffer{typ: typ, data: cp}, nil
}

func (d *Device) NewProgram(vertex, fragment driver.Shader) (driver.Program, error) {
	fs, ok := fragment.(FragmentShader)
	if !ok {
		return nil, errors.New("swgpu: fragment shader must be a swgpu.FragmentShader")
	}
	return &Program{fragment: fs}, nil
}

func (d *Device) Clear(r, g, b, a float32) {
	if d.boundFB == nil {
		return
	}
	d.boundFB.clear(r, g, b, a)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.viewport = image.Rect(x, y, x+width, y+height)
}

func (d *Device) SetBlend(enable bool) { d.blendEnabled = enable }

func (d *Device) BindProgram(p driver.Program) {
	prog, _ := p.(*Program)
	d.boundProgram = prog
}

func (d *Device) BindFramebuffer(f driver.Framebuffer) {
	fb, _ := f.(*Framebuffer)
	d.boundFB = fb
	if fb != nil {
		d.viewport = fb.tex.bounds()
	}
}

func (d *Device) BindTexture(unit int, t driver.Texture) {
	tex, _ := t.(*Texture)
	d.boundTextures[unit] = tex
}

func (d *Device) BindVertexBuffer(b driver.Buffer, stride, offset int) {
	// The software backend draws full-screen quads directly; vertex data
	// plays no role beyond what the fragment shader already computes from
	// pixel coordinates, so there is nothing to bind here.
}

// DrawArrays runs the bound fragment shader over every pixel of the
// current viewport intersected with the bound framebuffer, blending with
// whatever's already there if SetBlend(true) is in effect. off and count
// are accepted for interface parity with a real GPU call but ignored:
// every draw in this renderer covers its whole viewport in one call.
func (d *Device) DrawArrays(mode driver.DrawMode, off, count int) {
	if d.boundProgram == nil || d.boundFB == nil {
		return
	}
	rect := d.viewport.Intersect(d.boundFB.tex.bounds())
	sc := &SampleContext{dev: d}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := d.boundProgram.fragment(sc, x-d.viewport.Min.X, y-d.viewport.Min.Y)
			if d.blendEnabled {
				d.boundFB.tex.blendPixel(x, y, c)
			} else {
				d.boundFB.tex.setPixel(x, y, c)
			}
		}
	}
}

func (d *Device) Release() {}
