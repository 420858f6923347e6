// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"testing"

	pdxcolor "pdxmap.dev/core/color"
	"pdxmap.dev/core/hashtable"
)

func buildRecolorTable(t *testing.T) (*hashtable.LocationArrays, map[hashtable.LocationId]pdxcolor.Rgb) {
	t.Helper()
	colors := map[hashtable.LocationId]pdxcolor.Rgb{
		1: pdxcolor.NewRgb(10, 10, 10),
		2: pdxcolor.NewRgb(20, 20, 20),
		3: pdxcolor.NewRgb(30, 30, 30),
	}
	entries := make([]hashtable.ColorEntry, 0, len(colors))
	for id, rgb := range colors {
		entries = append(entries, hashtable.ColorEntry{ID: id, Color: hashtable.ColorFromRgb(rgb)})
	}
	return hashtable.BuildLocationArrays(entries), colors
}

func TestRecolorDevelopmentSetsPrimaryEqualsSecondary(t *testing.T) {
	locations, colors := buildRecolorTable(t)
	index := locations.BuildLocationIndex()
	for id, rgb := range colors {
		slot := index[id]
		state := locations.GetMut(slot)
		state.SetPrimaryColor(hashtable.ColorFromRgb(rgb))
		state.SetSecondaryColor(hashtable.GpuColor(0)) // stripes on before recolor
	}

	stats := []LocationStat{
		{LocationID: 1, BaseTax: 1, BaseProduction: 1, BaseManpower: 1},
		{LocationID: 2, BaseTax: 5, BaseProduction: 5, BaseManpower: 5},
		{LocationID: 3, BaseTax: 10, BaseProduction: 10, BaseManpower: 10},
	}
	Recolor(locations, "Development", stats)

	for id := range colors {
		slot := index[id]
		state := locations.GetMut(slot)
		if state.PrimaryColor() != state.SecondaryColor() {
			t.Fatalf("location %d: primary %v != secondary %v, want stripes disabled", id, state.PrimaryColor(), state.SecondaryColor())
		}
	}
}

func TestRecolorDevelopmentRanksLowestAndHighestDistinctly(t *testing.T) {
	locations, colors := buildRecolorTable(t)
	index := locations.BuildLocationIndex()
	for id, rgb := range colors {
		locations.GetMut(index[id]).SetPrimaryColor(hashtable.ColorFromRgb(rgb))
	}

	stats := []LocationStat{
		{LocationID: 1, BaseTax: 0, BaseProduction: 0, BaseManpower: 0},
		{LocationID: 2, BaseTax: 5, BaseProduction: 5, BaseManpower: 5},
		{LocationID: 3, BaseTax: 100, BaseProduction: 100, BaseManpower: 100},
	}
	Recolor(locations, "Development", stats)

	low := locations.GetMut(index[1]).PrimaryColor()
	high := locations.GetMut(index[3]).PrimaryColor()
	if low == high {
		t.Fatal("expected the lowest- and highest-ranked locations to get distinct colors")
	}
}

func TestRecolorDevelopmentSkipsWaterAndImpassable(t *testing.T) {
	locations, colors := buildRecolorTable(t)
	index := locations.BuildLocationIndex()
	for id, rgb := range colors {
		locations.GetMut(index[id]).SetPrimaryColor(hashtable.ColorFromRgb(rgb))
	}
	original := locations.GetMut(index[1]).PrimaryColor()

	stats := []LocationStat{
		{LocationID: 1, BaseTax: 50, BaseProduction: 50, BaseManpower: 50, IsWater: true},
		{LocationID: 2, BaseTax: 5, BaseProduction: 5, BaseManpower: 5},
		{LocationID: 3, BaseTax: 10, BaseProduction: 10, BaseManpower: 10, IsImpassable: true},
	}
	Recolor(locations, "Development", stats)

	if locations.GetMut(index[1]).PrimaryColor() != original {
		t.Fatal("expected a water location's color to be left untouched")
	}
	if locations.GetMut(index[3]).PrimaryColor() != hashtable.ColorFromRgb(colors[3]) {
		t.Fatal("expected an impassable location's color to be left untouched")
	}
}

func TestRecolorUnknownModeIsNoOp(t *testing.T) {
	locations, colors := buildRecolorTable(t)
	index := locations.BuildLocationIndex()
	for id, rgb := range colors {
		locations.GetMut(index[id]).SetPrimaryColor(hashtable.ColorFromRgb(rgb))
	}

	Recolor(locations, "Religion", []LocationStat{{LocationID: 1, BaseTax: 99}})

	if locations.GetMut(index[1]).PrimaryColor() != hashtable.ColorFromRgb(colors[1]) {
		t.Fatal("expected an unimplemented mode name to leave colors untouched")
	}
}
