// SPDX-License-Identifier: Unlicense OR MIT

// Command pdx-map-cli renders a color-coded map image plus a CSV of
// per-location render state into a PNG screenshot, without needing a
// windowing system or a real GPU (spec §6: the CLI surface is normative
// even for implementations that omit it, since it pins the file formats).
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	"gopkg.in/alecthomas/kingpin.v2"

	"pdxmap.dev/core/config"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/render"
	"pdxmap.dev/core/render/swgpu"
	"pdxmap.dev/core/units"
	"pdxmap.dev/core/viewport"
	"pdxmap.dev/core/world"
)

var (
	mapPath           = kingpin.Flag("map", "color-coded RGB(A) map image, even width").Short('m').Required().String()
	inputPath         = kingpin.Flag("input", "CSV of rgb_key,primary,secondary,owner,flags, or - for stdin").Short('i').Required().String()
	outputPath        = kingpin.Flag("output", "PNG output path").Short('o').Required().String()
	noLocationBorders = kingpin.Flag("no-location-borders", "disable the location border pass").Bool()
	noOwnerBorders    = kingpin.Flag("no-owner-borders", "disable the owner border pass").Bool()
	profilePath       = kingpin.Flag("profile", "optional TOML render profile: border toggle defaults and map-mode gradient stops").String()
)

func main() {
	kingpin.Parse()
	if err := run(); err != nil {
		log.Fatalf("pdx-map-cli: %v", err)
	}
}

func run() error {
	profile, err := loadProfile(*profilePath)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	applyDevelopmentGradient(profile)

	img, err := loadMapImage(*mapPath)
	if err != nil {
		return fmt.Errorf("loading map image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rgba := toRGBA(img)

	w, palette, err := world.IngestRGBA8(rgba.Pix, units.NewWorldLength(uint32(width)))
	if err != nil {
		return fmt.Errorf("ingesting map image: %w", err)
	}

	in, err := openInput(*inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	rows, err := parseLocationCSV(in)
	if err != nil {
		return fmt.Errorf("parsing CSV: %w", err)
	}
	locations := buildLocationArrays(rows)

	hemiSize := w.West().Size()
	base := render.NewBaseMapLayer(
		toUint16Slice(w.West().AsSlice()), toUint16Slice(w.East().AsSlice()),
		int(hemiSize.Width), int(hemiSize.Height), palette, locations,
	)
	base.SetBorderToggles(*noLocationBorders || profile.NoLocationBorders, *noOwnerBorders || profile.NoOwnerBorders)
	base.SetZoom(1)

	maxTextureSize := width
	if height > maxTextureSize {
		maxTextureSize = height
	}
	if int(hemiSize.Width) > maxTextureSize {
		maxTextureSize = int(hemiSize.Width)
	}
	dev := swgpu.NewDevice(maxTextureSize)
	r := render.NewHeadlessMapRenderer(dev, render.CanvasSize{X: width, Y: height}, base)
	defer r.Finish()

	vb := viewport.Bounds{X: 0, Y: 0, Width: uint32(width), Height: uint32(height)}
	data, err := r.CaptureViewport(vb)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, data.Width(), data.Height()))
	copy(out.Pix, data.Bytes())

	return writePNG(*outputPath, out)
}

// loadProfile loads the render profile named by --profile, or the
// zero-value default when the flag is unset.
func loadProfile(path string) (config.Profile, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyDevelopmentGradient overrides the Development map mode's gradient
// colors from the profile's "Development" entry, if one is present. Stops
// are sorted by At and the lowest/highest are taken as the gradient's ends;
// a malformed color is skipped (defaults stay in effect) since a profile is
// an optional override, not a required input.
func applyDevelopmentGradient(profile config.Profile) {
	mode, ok := profile.MapModes["Development"]
	if !ok || len(mode.Gradient) < 2 {
		return
	}
	stops := append([]config.GradientStop(nil), mode.Gradient...)
	sort.Slice(stops, func(i, j int) bool { return stops[i].At < stops[j].At })

	low, err := parseGradientColor(stops[0].Color)
	if err != nil {
		return
	}
	high, err := parseGradientColor(stops[len(stops)-1].Color)
	if err != nil {
		return
	}
	render.SetDevelopmentGradient(low, high)
}

// parseGradientColor decodes a 6-hex-character sRGB color, as written in a
// config.GradientStop.
func parseGradientColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("%q is not 6 hex characters", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q is not valid hex: %w", s, err)
	}
	return color.NRGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 0xff}, nil
}

func loadMapImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func toUint16Slice(vals []pdxcolor.R16) []uint16 {
	out := make([]uint16, len(vals))
	for i, v := range vals {
		out[i] = v.Value()
	}
	return out
}
