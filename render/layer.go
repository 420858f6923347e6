// SPDX-License-Identifier: Unlicense OR MIT

// Package render implements the layered compositor: the base map (two
// hemisphere quads sampled through the location hash table), a date-stamp
// overlay, and a selection-box overlay, composed over a render/driver
// Device. It has no knowledge of any particular backend — render/swgpu is
// the one shipped here, but a hardware backend only needs to implement
// render/driver.Device.
package render

import (
	"image"

	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/viewport"
)

// CanvasSize is the physical pixel size of the surface being drawn into.
type CanvasSize = image.Point

// RenderLayer is one item in the compositor's layer list. Layers are
// free to skip drawing entirely (the date layer does, until its pending
// texture upload completes).
type RenderLayer interface {
	// Resize (re)creates any format- or size-dependent resources. Called
	// whenever the surface's pixel format or size changes.
	Resize(dev driver.Device, format driver.TextureFormat, canvas CanvasSize)
	// Update uploads this frame's per-frame data (uniforms, textures).
	Update(dev driver.Device)
	// Draw records this layer's draw calls against the current
	// framebuffer binding. viewport describes what part of the world is
	// visible; canvas is the physical pixel size being drawn into.
	Draw(dev driver.Device, vb viewport.Bounds, canvas CanvasSize)
}
