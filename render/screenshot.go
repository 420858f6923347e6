// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image"

	"pdxmap.dev/core/viewport"
)

// ComposeScreenshot renders width x height pixels with vb's origin as the
// top-left corner (it does not center on vb), stitching the west and east hemispheres into a single image when the
// requested width exceeds one hemisphere's width (spec §4.7/S5: a
// screenshot can span both hemispheres, but the date stamp must appear
// exactly once, on the west half).
//
// r's canvas is resized in place during composition and left sized to the
// second (or only) pass's dimensions when this returns; callers that plan
// to keep using r for live rendering afterward should Resize it back to
// their desired canvas.
func ComposeScreenshot(r *HeadlessMapRenderer, dateLayer *DateStampLayer, vb viewport.Bounds, width, height, hemisphereWidth int) (*image.RGBA, error) {
	if width <= hemisphereWidth {
		r.Resize(CanvasSize{X: width, Y: height})
		data, err := r.CaptureViewport(vb)
		if err != nil {
			return nil, err
		}
		return imageFromData(data), nil
	}

	firstW := hemisphereWidth
	secondW := width - hemisphereWidth

	dateLayer.SetEnabled(true)
	r.Resize(CanvasSize{X: firstW, Y: height})
	westVB := vb
	westVB.Width = uint32(firstW)
	west, err := r.CaptureViewport(westVB)
	if err != nil {
		return nil, err
	}

	dateLayer.SetEnabled(false)
	r.Resize(CanvasSize{X: secondW, Y: height})
	eastVB := vb
	eastVB.X = vb.X + uint32(firstW)
	eastVB.Width = uint32(secondW)
	east, err := r.CaptureViewport(eastVB)
	if err != nil {
		return nil, err
	}
	dateLayer.SetEnabled(true) // restore default for any subsequent use of r

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+firstW*4], west.Row(y))
		copy(out.Pix[y*out.Stride+firstW*4:y*out.Stride+width*4], east.Row(y))
	}
	return out, nil
}

func imageFromData(data *ViewportData) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, data.Width(), data.Height()))
	copy(img.Pix, data.Bytes())
	return img
}
