package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinSphereRadius is the smallest bounding-sphere radius ever reported.
// Degenerate (zero-extent) geometry is clamped to this so framing math
// never divides by zero.
const MinSphereRadius = 1e-3

// BoundingBox is a world-space axis-aligned box
type BoundingBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewBoundingBox creates a box from two corner points in any order
func NewBoundingBox(a, b mgl64.Vec3) BoundingBox {
	return BoundingBox{
		Min: mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())},
		Max: mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())},
	}
}

// Center returns the center point of the box
func (b BoundingBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis
func (b BoundingBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: mgl64.Vec3{
			math.Min(b.Min.X(), other.Min.X()),
			math.Min(b.Min.Y(), other.Min.Y()),
			math.Min(b.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Max(b.Max.X(), other.Max.X()),
			math.Max(b.Max.Y(), other.Max.Y()),
			math.Max(b.Max.Z(), other.Max.Z()),
		},
	}
}

// ExtendPoint grows the box to include a point
func (b BoundingBox) ExtendPoint(p mgl64.Vec3) BoundingBox {
	return b.Union(BoundingBox{Min: p, Max: p})
}

// Corners returns the 8 corner points of the box
func (b BoundingBox) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Sphere returns the bounding sphere of the box. The radius is clamped to
// MinSphereRadius so callers can safely divide by it.
func (b BoundingBox) Sphere() (center mgl64.Vec3, radius float64) {
	center = b.Center()
	radius = b.Max.Sub(center).Len()
	if radius < MinSphereRadius {
		radius = MinSphereRadius
	}
	return center, radius
}

// Transform returns the axis-aligned box containing this box after
// applying the given transform to all 8 corners
func (b BoundingBox) Transform(m mgl64.Mat4) BoundingBox {
	corners := b.Corners()
	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		out = out.ExtendPoint(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// Contains reports whether the point is inside the box (inclusive)
func (b BoundingBox) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}
