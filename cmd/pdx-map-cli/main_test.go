// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/config"
)

func TestToRGBAPassesThroughExistingRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	out := toRGBA(src)
	if out != src {
		t.Fatal("expected an already-*image.RGBA input to pass through unchanged")
	}
}

func TestToRGBAConvertsOtherImageTypes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.NRGBA{R: 5, G: 6, B: 7, A: 255})

	out := toRGBA(src)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	r, g, b, _ := out.At(1, 1).RGBA()
	if uint8(r>>8) != 5 || uint8(g>>8) != 6 || uint8(b>>8) != 7 {
		t.Fatalf("converted pixel = (%d,%d,%d), want (5,6,7)", r>>8, g>>8, b>>8)
	}
}

func TestToUint16SliceExtractsValues(t *testing.T) {
	in := []pdxcolor.R16{0, 1, 2, 65534}
	got := toUint16Slice(in)
	want := []uint16{0, 1, 2, 65534}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLoadProfileEmptyPathReturnsDefault(t *testing.T) {
	profile, err := loadProfile("")
	if err != nil {
		t.Fatalf("loadProfile(\"\") returned error: %v", err)
	}
	if profile.NoLocationBorders || profile.NoOwnerBorders || profile.MapModes != nil {
		t.Fatalf("loadProfile(\"\") = %+v, want the zero value", profile)
	}
}

func TestLoadProfileReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("no_owner_borders = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile(%q) returned error: %v", path, err)
	}
	if !profile.NoOwnerBorders {
		t.Fatal("expected NoOwnerBorders to be true")
	}
}

func TestParseGradientColorDecodesHex(t *testing.T) {
	got, err := parseGradientColor("c03040")
	if err != nil {
		t.Fatalf("parseGradientColor returned error: %v", err)
	}
	want := color.NRGBA{R: 0xc0, G: 0x30, B: 0x40, A: 0xff}
	if got != want {
		t.Fatalf("parseGradientColor(\"c03040\") = %+v, want %+v", got, want)
	}
}

func TestParseGradientColorRejectsBadInput(t *testing.T) {
	if _, err := parseGradientColor("nope"); err == nil {
		t.Fatal("expected an error for a non-hex, wrong-length color")
	}
}

func TestApplyDevelopmentGradientIgnoresProfilesWithoutDevelopmentMode(t *testing.T) {
	// Should not panic or otherwise fail when no "Development" entry exists.
	applyDevelopmentGradient(config.Profile{})
}

func TestApplyDevelopmentGradientAppliesSortedStops(t *testing.T) {
	profile := config.Profile{
		MapModes: map[string]config.MapModeProfile{
			"Development": {
				Gradient: []config.GradientStop{
					{At: 1, Color: "30b040"},
					{At: 0, Color: "c03030"},
				},
			},
		},
	}
	// Exercises the sort-by-At and low/high selection path without a way to
	// directly observe render's package-level gradient state from here.
	applyDevelopmentGradient(profile)
}
