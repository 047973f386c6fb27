package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
)

// fitMargin keeps a 5% safety margin around the framed bounds
const fitMargin = 1.05

// FitOptions configures FrameBounds. A zero ViewDir or Up keeps the
// camera's current direction or up vector.
type FitOptions struct {
	ViewDir mgl64.Vec3
	Up      mgl64.Vec3
}

// FrameBounds positions and orients the camera so the given bounds are
// fully visible inside the region's target rectangle, preserving the
// current projection mode. It returns false (leaving the camera untouched)
// when the region has no usable canvas size.
//
// The bounds center projects to the region's NDC offset, so content can be
// framed off-center. The pivot state is updated to the framed bounds so a
// following rotation gesture orbits what was just framed.
func (c *Camera) FrameBounds(bounds geometry.BoundingBox, region Region, opts FitOptions) bool {
	if !region.Valid() {
		return false
	}

	center, radius := bounds.Sphere()

	forward := opts.ViewDir
	if forward.Len() < 1e-12 {
		forward = c.Forward()
	}
	upHint := opts.Up
	if upHint.Len() < 1e-12 {
		upHint = c.Up
	}
	right, up, forward := orthonormalBasis(forward, upHint)

	aspect := region.Aspect()
	scaleX, scaleY := region.clampedScale()

	var distance, halfViewW, halfViewH float64
	if c.Projection == Perspective {
		halfV := c.FOV / 2
		if halfV < 1e-3 {
			halfV = 1e-3
		}
		tanV := math.Tan(halfV)

		// Shrink the effective frustum so the bounds land inside the
		// scaled sub-rectangle instead of the full canvas
		effV := math.Atan(tanV * scaleY)
		effH := math.Atan(tanV * aspect * scaleX)

		distance = math.Max(radius/math.Sin(effV), radius/math.Sin(effH)) * fitMargin
		distance = clamp(distance, c.MinDistance, c.MaxDistance)

		halfViewH = distance * tanV
		halfViewW = distance * tanV * aspect
	} else {
		// Project the 8 box corners onto the tentative camera axes for
		// exact in-view extents, tighter than the bounding sphere
		var halfW, halfH float64
		for _, corner := range bounds.Corners() {
			rel := corner.Sub(center)
			halfW = math.Max(halfW, math.Abs(rel.Dot(right)))
			halfH = math.Max(halfH, math.Abs(rel.Dot(up)))
		}
		if halfW < geometry.MinSphereRadius {
			halfW = geometry.MinSphereRadius
		}
		if halfH < geometry.MinSphereRadius {
			halfH = geometry.MinSphereRadius
		}
		halfW /= scaleX
		halfH /= scaleY

		// Expand the narrower dimension to the canvas aspect, never crop
		if halfW/halfH < aspect {
			halfW = halfH * aspect
		} else {
			halfH = halfW / aspect
		}

		c.Left, c.Right = -halfW, halfW
		c.Bottom, c.Top = -halfH, halfH
		c.OrthoZoom = 1

		distance = clamp(radius*2*fitMargin, c.MinDistance, c.MaxDistance)
		halfViewW = halfW
		halfViewH = halfH
	}

	// Back-solve the look-at target so the bounds center lands on the
	// requested NDC offset
	target := center.
		Sub(right.Mul(region.NDCX * halfViewW)).
		Sub(up.Mul(region.NDCY * halfViewH))

	c.Position = target.Sub(forward.Mul(distance))
	c.Target = target
	c.Up = up
	c.Aspect = aspect

	c.Pivot = center
	c.PivotOffsetX = region.NDCX
	c.PivotOffsetY = region.NDCY
	c.PivotDistance = distance
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
