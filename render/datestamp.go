// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"

	"pdxmap.dev/core/font/tomthumb"
	"pdxmap.dev/core/render/driver"
	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/viewport"
)

const (
	dateStampPaddingX   = 14
	dateStampPaddingY   = 10
	dateStampLetterGap  = 1
	dateStampScreenMarginX = 12
	dateStampScreenMarginY = 12
)

var (
	dateStampBackground = [4]uint8{0, 0, 0, 220}
	dateStampText       = [4]uint8{255, 255, 255, 255}
)

// DateStampLayer rasterizes a short string through the tomthumb bitmap
// font into a small RGBA8 texture once, then draws it as a translucent
// quad anchored to a screen corner every frame. It only re-rasterizes
// when SetText changes the string.
type DateStampLayer struct {
	text    string
	scale   int
	enabled bool

	pixels        []byte
	bitmapW       int
	bitmapH       int
	dirty         bool
	pendingUpload bool

	tex driver.Texture
}

// NewDateStampLayer builds a layer showing text at an integer glyph scale
// (minimum 1).
func NewDateStampLayer(text string, scale int) *DateStampLayer {
	if scale < 1 {
		scale = 1
	}
	l := &DateStampLayer{text: text, scale: scale, enabled: true, dirty: true}
	l.rasterize()
	return l
}

// SetText replaces the displayed string, marking the bitmap for
// re-rasterization and re-upload on the next Update.
func (l *DateStampLayer) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	l.dirty = true
}

// SetEnabled toggles whether Draw emits the quad at all — used by the
// screenshot compositor to suppress the date stamp on the east-hemisphere
// pass (spec §4.7 S5: it must appear exactly once).
func (l *DateStampLayer) SetEnabled(enabled bool) { l.enabled = enabled }

func (l *DateStampLayer) rasterize() {
	glyphW := tomthumb.Width * l.scale
	glyphH := tomthumb.Height * l.scale
	gap := dateStampLetterGap * l.scale

	textWidth := 0
	for i := range l.text {
		if i > 0 {
			textWidth += gap
		}
		textWidth += glyphW
	}
	if len(l.text) == 0 {
		textWidth = 0
	}

	l.bitmapW = textWidth + dateStampPaddingX*2
	l.bitmapH = glyphH + dateStampPaddingY*2
	if l.bitmapW < 1 {
		l.bitmapW = 1
	}
	if l.bitmapH < 1 {
		l.bitmapH = 1
	}

	pix := make([]byte, l.bitmapW*l.bitmapH*4)
	for i := 0; i < l.bitmapW*l.bitmapH; i++ {
		copy(pix[i*4:i*4+4], dateStampBackground[:])
	}

	x := dateStampPaddingX
	for _, r := range l.text {
		glyph, _ := tomthumb.Lookup(r) // unknown characters render as blank
		for row := 0; row < tomthumb.Height; row++ {
			for col := 0; col < tomthumb.Width; col++ {
				if !glyph.At(col, row) {
					continue
				}
				for sy := 0; sy < l.scale; sy++ {
					for sx := 0; sx < l.scale; sx++ {
						px := x + col*l.scale + sx
						py := dateStampPaddingY + row*l.scale + sy
						off := (py*l.bitmapW + px) * 4
						copy(pix[off:off+4], dateStampText[:])
					}
				}
			}
		}
		x += glyphW + gap
	}

	l.pixels = pix
	l.dirty = false
	l.pendingUpload = true
}

func (l *DateStampLayer) Resize(dev driver.Device, format driver.TextureFormat, canvas CanvasSize) {
	tex, err := dev.NewTexture(driver.TextureFormatRGBA8, l.bitmapW, l.bitmapH, driver.FilterNearest)
	if err != nil {
		panic(err)
	}
	l.tex = tex
	l.pendingUpload = true
}

func (l *DateStampLayer) Update(dev driver.Device) {
	if l.dirty {
		l.rasterize()
		if l.tex != nil {
			l.tex.Release()
		}
		tex, err := dev.NewTexture(driver.TextureFormatRGBA8, l.bitmapW, l.bitmapH, driver.FilterNearest)
		if err != nil {
			panic(err)
		}
		l.tex = tex
		l.pendingUpload = true
	}
	if l.pendingUpload && l.tex != nil {
		l.tex.Upload(image.Point{}, image.Point{X: l.bitmapW, Y: l.bitmapH}, l.pixels)
		l.pendingUpload = false
	}
}

// Draw skips entirely if disabled or the texture upload is still pending
// (spec §4.6: "layers are free to skip drawing").
func (l *DateStampLayer) Draw(dev driver.Device, vb viewport.Bounds, canvas CanvasSize) {
	if !l.enabled || l.pendingUpload || l.tex == nil {
		return
	}

	ox := canvas.X - l.bitmapW - dateStampScreenMarginX
	oy := canvas.Y - l.bitmapH - dateStampScreenMarginY
	if ox < 0 {
		ox = 0
	}
	if oy < 0 {
		oy = 0
	}
	w := l.bitmapW
	if ox+w > canvas.X {
		w = canvas.X - ox
	}
	h := l.bitmapH
	if oy+h > canvas.Y {
		h = canvas.Y - oy
	}
	if w <= 0 || h <= 0 {
		return
	}

	dev.BindTexture(0, l.tex)
	dev.Viewport(ox, oy, w, h)
	prog, err := dev.NewProgram(nil, swgpu.FragmentShader(func(s *swgpu.SampleContext, x, y int) [4]uint8 {
		t := s.Texture(0)
		if t == nil {
			return [4]uint8{}
		}
		return t.SampleRGBA8(x, y)
	}))
	if err != nil {
		panic(err)
	}
	dev.SetBlend(true)
	dev.BindProgram(prog)
	dev.DrawArrays(driver.DrawModeTriangles, 0, 6)
	dev.Viewport(0, 0, canvas.X, canvas.Y)
}
