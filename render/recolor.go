// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image/color"
	"sort"

	"pdxmap.dev/core/hashtable"
	"pdxmap.dev/core/internal/f32color"
)

// LocationStat is the subset of game-state a map mode needs to rank and
// recolor one location.
type LocationStat struct {
	LocationID                               hashtable.LocationId
	BaseTax, BaseProduction, BaseManpower     float64
	IsWater, IsImpassable                     bool
}

func (s LocationStat) developmentScore() float64 {
	return s.BaseTax + s.BaseProduction + s.BaseManpower
}

var (
	developmentGradientLow  = f32color.LinearFromSRGB(color.NRGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff})
	developmentGradientHigh = f32color.LinearFromSRGB(color.NRGBA{R: 0x30, G: 0xb0, B: 0x40, A: 0xff})
)

// SetDevelopmentGradient overrides the Development map mode's low/high
// gradient colors, e.g. from a config.Profile's map-mode stops. Colors are
// given in sRGB; the blend itself still happens in linear light.
func SetDevelopmentGradient(low, high color.NRGBA) {
	developmentGradientLow = f32color.LinearFromSRGB(low)
	developmentGradientHigh = f32color.LinearFromSRGB(high)
}

// Recolor rewrites locations' primary/secondary colors in place for
// the named map mode, using stats to rank and score locations that need it
// (currently only Development does); owner colors are left as they are.
// Unknown mode names are a no-op: the
// caller is expected to validate the mode name earlier.
func Recolor(locations *hashtable.LocationArrays, mode string, stats []LocationStat) {
	switch mode {
	case "Development":
		recolorDevelopment(locations, stats)
	}
}

// recolorDevelopment ranks every non-water, non-impassable location by
// base_tax+base_production+base_manpower and paints it along a red (lowest)
// to green (highest) gradient, setting primary == secondary to disable the
// owner/controller stripe split (spec S4) — grounded on the same
// "iterate non-empty slots" shape as LocationArrays.CopyPrimaryToSecondary.
func recolorDevelopment(locations *hashtable.LocationArrays, stats []LocationStat) {
	index := locations.BuildLocationIndex()

	ranked := make([]LocationStat, 0, len(stats))
	for _, s := range stats {
		if s.IsWater || s.IsImpassable {
			continue
		}
		if _, ok := index[s.LocationID]; !ok {
			continue
		}
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].developmentScore() < ranked[j].developmentScore()
	})

	n := len(ranked)
	for rank, s := range ranked {
		t := float32(0)
		if n > 1 {
			t = float32(rank) / float32(n-1)
		}
		blended := f32color.Lerp(developmentGradientLow, developmentGradientHigh, t)
		c := gpuColorFromNRGBA(blended.SRGB())

		state := locations.GetMut(index[s.LocationID])
		state.SetPrimaryColor(c)
		state.SetSecondaryColor(c)
	}
}

func gpuColorFromNRGBA(c color.NRGBA) hashtable.GpuColor {
	return hashtable.GpuColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}
