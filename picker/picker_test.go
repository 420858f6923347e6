// SPDX-License-Identifier: Unlicense OR MIT

package picker

import (
	"testing"

	"pdxmap.dev/core/units"
)

func packR16(values []uint16) []byte {
	data := make([]byte, 0, len(values)*2)
	for _, v := range values {
		data = append(data, byte(v), byte(v>>8))
	}
	return data
}

func wp(x, y float32) units.WorldPoint[float32] {
	return units.WorldPoint[float32]{X: x, Y: y}
}

func wp16(x, y uint16) units.WorldPoint[uint16] {
	return units.WorldPoint[uint16]{X: x, Y: y}
}

func TestSingleBasicWestEast(t *testing.T) {
	west := packR16([]uint16{10, 11, 12, 13})
	east := packR16([]uint16{20, 21, 22, 23})
	p := NewSingle(west, east, 4)

	cases := []struct {
		x, y float32
		want uint16
	}{
		{0, 0, 10}, {1, 0, 11}, {2, 0, 20}, {3, 0, 21}, {0, 1, 12}, {3, 1, 23},
	}
	for _, c := range cases {
		if got := p.Pick(wp(c.x, c.y)); got != GpuLocationIdx(c.want) {
			t.Errorf("Pick(%v,%v) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestSingleWrapsX(t *testing.T) {
	west := packR16([]uint16{1, 2})
	east := packR16([]uint16{3, 4})
	p := NewSingle(west, east, 4)

	if got := p.Pick(wp(-1, 0)); got != 4 {
		t.Fatalf("Pick(-1,0) = %d, want 4", got)
	}
	if got := p.Pick(wp(4, 0)); got != 1 {
		t.Fatalf("Pick(4,0) = %d, want 1", got)
	}
}

func TestSingleOutOfBoundsYClamps(t *testing.T) {
	west := packR16([]uint16{1, 2})
	east := packR16([]uint16{3, 4})
	p := NewSingle(west, east, 4)

	if got := p.Pick(wp(0, 1)); got != 1 {
		t.Fatalf("Pick(0,1) = %d, want 1", got)
	}
}

func TestAABBNew(t *testing.T) {
	a := NewAABB(wp16(10, 20), wp16(30, 40))
	if a.Min != wp16(10, 20) || a.Max != wp16(30, 40) {
		t.Fatalf("unexpected AABB %+v", a)
	}
}

func TestAABBExpand(t *testing.T) {
	a := NewAABB(wp16(10, 10), wp16(11, 11))
	a.ExpandTo(wp16(30, 15))
	if a.Min != wp16(10, 10) || a.Max != wp16(30, 15) {
		t.Fatalf("after right expand: %+v", a)
	}
	a.ExpandTo(wp16(5, 5))
	if a.Min != wp16(5, 5) || a.Max != wp16(30, 15) {
		t.Fatalf("after left expand: %+v", a)
	}
}

func TestAABBIntersects(t *testing.T) {
	a1 := NewAABB(wp16(10, 10), wp16(20, 20))
	a2 := NewAABB(wp16(15, 15), wp16(25, 25))
	a3 := NewAABB(wp16(30, 30), wp16(40, 40))

	if !a1.Intersects(a2) || !a2.Intersects(a1) {
		t.Fatal("expected overlapping AABBs to intersect")
	}
	if a1.Intersects(a3) || a3.Intersects(a1) {
		t.Fatal("expected disjoint AABBs to not intersect")
	}

	a4 := NewAABB(wp16(20, 20), wp16(30, 30))
	if !a1.Intersects(a4) {
		t.Fatal("expected edge-touching AABBs to intersect")
	}
}

func TestMapConstruction(t *testing.T) {
	west := packR16([]uint16{0, 1, 2, 3})
	east := packR16([]uint16{4, 5, 6, 7})
	m := NewSingle(west, east, 4).WithAABBs()

	if m.LocationCount() != 8 {
		t.Fatalf("LocationCount() = %d, want 8", m.LocationCount())
	}

	if got := m.GetAABB(0); got.Min != wp16(0, 0) || got.Max != wp16(0, 0) {
		t.Fatalf("loc 0 aabb = %+v", got)
	}
	if got := m.GetAABB(1); got.Min != wp16(1, 0) || got.Max != wp16(1, 0) {
		t.Fatalf("loc 1 aabb = %+v", got)
	}
	if got := m.GetAABB(4); got.Min != wp16(2, 0) || got.Max != wp16(2, 0) {
		t.Fatalf("loc 4 aabb = %+v", got)
	}
}

func TestMapQuery(t *testing.T) {
	west := packR16([]uint16{0, 1, 2, 3})
	east := packR16([]uint16{4, 5, 6, 7})
	m := NewSingle(west, east, 4).WithAABBs()

	results := m.Query(NewAABB(wp16(0, 0), wp16(1, 1)))
	want := map[GpuLocationIdx]bool{0: true, 1: true, 2: true, 3: true}
	for loc := range want {
		found := false
		for _, r := range results {
			if r == loc {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected location %d in query results", loc)
		}
	}
	for _, r := range results {
		if r == 4 || r == 5 {
			t.Fatalf("unexpected east-hemisphere location %d in west query", r)
		}
	}
}

func TestMapPickForwarding(t *testing.T) {
	west := packR16([]uint16{0, 1, 2, 3})
	east := packR16([]uint16{4, 5, 6, 7})
	m := NewSingle(west, east, 4).WithAABBs()

	if got := m.Pick(wp(0.5, 0.5)); got != 0 {
		t.Fatalf("Pick(0.5,0.5) = %d, want 0", got)
	}
	if got := m.Pick(wp(2.5, 0.5)); got != 4 {
		t.Fatalf("Pick(2.5,0.5) = %d, want 4", got)
	}
}

func TestMapMultiPixelLocations(t *testing.T) {
	west := packR16([]uint16{0, 0, 0, 0})
	east := packR16([]uint16{1, 1, 1, 1})
	m := NewSingle(west, east, 4).WithAABBs()

	got := m.GetAABB(0)
	if got.Min != wp16(0, 0) || got.Max != wp16(1, 1) {
		t.Fatalf("loc 0 aabb = %+v", got)
	}
	got = m.GetAABB(1)
	if got.Min != wp16(2, 0) || got.Max != wp16(3, 1) {
		t.Fatalf("loc 1 aabb = %+v", got)
	}
}

func TestAABBDisplay(t *testing.T) {
	a := NewAABB(wp16(10, 20), wp16(100, 80))
	if got := a.String(); got != "[(10,20)-(100,80)]" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSingleRejectsMismatchedLengths(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewSingle(packR16([]uint16{1}), packR16([]uint16{1, 2}), 4)
}
