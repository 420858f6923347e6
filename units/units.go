// SPDX-License-Identifier: Unlicense OR MIT

// Package units implements the distinct, non-interchangeable coordinate
// spaces the map renderer moves between: Logical (CSS-pixel units from the
// windowing layer), Physical (Logical scaled by device-pixel-ratio, what
// the GPU expects), World (pixels in the full two-hemisphere world
// texture), and Hemisphere (half of World's width). Keeping them as
// distinct generic types, rather than bare numbers, makes an accidental
// mix of spaces (e.g. comparing a Logical point to a World point) a
// compile error instead of a runtime bug — the same role gio's own `unit`
// and `f32` packages play for dp/px/Point.
package units

// Number is the set of scalar types a coordinate component may hold.
type Number interface {
	~float32 | ~uint32 | ~uint16 | ~int32
}

// Point is a two dimensional point in some coordinate space S.
type Point[S any, T Number] struct {
	X, Y T
}

// Size is a width/height pair in some coordinate space S.
type Size[S any, T Number] struct {
	Width, Height T
}

func NewPoint[S any, T Number](x, y T) Point[S, T] {
	return Point[S, T]{X: x, Y: y}
}

func NewSize[S any, T Number](w, h T) Size[S, T] {
	return Size[S, T]{Width: w, Height: h}
}

func (p Point[S, T]) Add(o Point[S, T]) Point[S, T] {
	return Point[S, T]{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point[S, T]) Sub(o Point[S, T]) Point[S, T] {
	return Point[S, T]{X: p.X - o.X, Y: p.Y - o.Y}
}

// space markers — never instantiated, only used as Point/Size's S parameter.
type (
	logicalSpace    struct{}
	physicalSpace   struct{}
	worldSpace      struct{}
	hemisphereSpace struct{}
)

type (
	LogicalPoint[T Number]    = Point[logicalSpace, T]
	LogicalSize[T Number]     = Size[logicalSpace, T]
	PhysicalPoint[T Number]   = Point[physicalSpace, T]
	PhysicalSize[T Number]    = Size[physicalSpace, T]
	WorldPoint[T Number]      = Point[worldSpace, T]
	WorldSize[T Number]       = Size[worldSpace, T]
	HemisphereSize[T Number]  = Size[hemisphereSpace, T]
)

// WorldLength and HemisphereLength are bare scalar widths, used where only
// the horizontal extent matters (e.g. the width parameter of IngestRGB8).
type WorldLength struct{ Value uint32 }

func NewWorldLength(v uint32) WorldLength { return WorldLength{Value: v} }

// Hemisphere halves a world-wide length. Panics if the length is odd: the
// source image width must always be even (spec §4.1).
func (l WorldLength) Hemisphere() HemisphereLength {
	if l.Value%2 != 0 {
		panic("units: world length must be even")
	}
	return HemisphereLength{Value: l.Value / 2}
}

type HemisphereLength struct{ Value uint32 }

func NewHemisphereLength(v uint32) HemisphereLength { return HemisphereLength{Value: v} }

func (l HemisphereLength) World() WorldLength { return WorldLength{Value: l.Value * 2} }

// HemisphereToWorld doubles a hemisphere size's width to the full world size.
func HemisphereToWorld[T Number](s HemisphereSize[T]) WorldSize[T] {
	return WorldSize[T]{Width: s.Width * 2, Height: s.Height}
}

// ToPhysicalPoint scales a Logical point by the device-pixel-ratio.
func ToPhysicalPoint(p LogicalPoint[float32], scale float32) PhysicalPoint[float32] {
	return PhysicalPoint[float32]{X: p.X * scale, Y: p.Y * scale}
}

// ToLogicalPoint is the inverse of ToPhysicalPoint.
func ToLogicalPoint(p PhysicalPoint[float32], scale float32) LogicalPoint[float32] {
	return LogicalPoint[float32]{X: p.X / scale, Y: p.Y / scale}
}

func ToPhysicalSize(s LogicalSize[uint32], scale float32) PhysicalSize[uint32] {
	return PhysicalSize[uint32]{
		Width:  uint32(float32(s.Width) * scale),
		Height: uint32(float32(s.Height) * scale),
	}
}
