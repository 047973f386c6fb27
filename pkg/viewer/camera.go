package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
)

// Projection selects how the camera maps the scene onto the viewport
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera holds the full camera state: shared position/orientation, the
// frustum parameters of both projection modes, and the rotation-pivot
// bookkeeping consumed by the gesture controllers.
//
// All fields are plain values, so a Snapshot is a simple copy and Restore
// brings back every field an offscreen capture may have touched.
type Camera struct {
	Projection Projection

	Position mgl64.Vec3
	Target   mgl64.Vec3 // orbit target: the point the camera looks at
	Up       mgl64.Vec3

	// Perspective frustum
	FOV    float64 // vertical field of view in radians
	Aspect float64
	Near   float64
	Far    float64

	// Orthographic frustum. OrthoZoom is a multiplicative zoom factor
	// applied on top of the stored extents.
	Left, Right, Bottom, Top float64
	OrthoZoom                float64

	// Dolly limits used by fit and wheel zoom
	MinDistance float64
	MaxDistance float64

	// Rotation pivot state. Pivot and PivotDistance are frozen by the
	// rotation controller for the duration of a drag.
	Pivot         mgl64.Vec3
	PivotOffsetX  float64 // NDC offset requested by the last fit
	PivotOffsetY  float64
	PivotDistance float64
}

// NewCamera creates a perspective camera with a 45 degree field of view
// looking at the origin from +Z
func NewCamera() *Camera {
	return &Camera{
		Projection:  Perspective,
		Position:    mgl64.Vec3{0, 0, 10},
		Target:      mgl64.Vec3{0, 0, 0},
		Up:          mgl64.Vec3{0, 1, 0},
		FOV:         math.Pi / 4,
		Aspect:      1,
		Near:        0.1,
		Far:         10000,
		Left:        -1,
		Right:       1,
		Bottom:      -1,
		Top:         1,
		OrthoZoom:   1,
		MinDistance: 0.01,
		MaxDistance: 1e6,
	}
}

// Snapshot returns a copy of the complete camera state
func (c *Camera) Snapshot() Camera {
	return *c
}

// Restore brings back a previously taken snapshot, field for field
func (c *Camera) Restore(s Camera) {
	*c = s
}

// Distance returns the distance from the camera to its orbit target
func (c *Camera) Distance() float64 {
	return c.Target.Sub(c.Position).Len()
}

// Forward returns the normalized view direction
func (c *Camera) Forward() mgl64.Vec3 {
	f := c.Target.Sub(c.Position)
	if f.Len() < 1e-12 {
		return mgl64.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// Basis returns the orthonormal camera axes derived from the current
// view direction and up vector
func (c *Camera) Basis() (right, up, forward mgl64.Vec3) {
	return orthonormalBasis(c.Forward(), c.Up)
}

// orthonormalBasis builds camera axes from a forward direction, replacing
// the up hint when it is parallel to forward
func orthonormalBasis(forward, upHint mgl64.Vec3) (right, up, fwd mgl64.Vec3) {
	fwd = forward.Normalize()
	if math.Abs(fwd.Dot(upHint.Normalize())) > 0.9999 {
		upHint = mgl64.Vec3{0, 0, 1}
		if math.Abs(fwd.Dot(upHint)) > 0.9999 {
			upHint = mgl64.Vec3{0, 1, 0}
		}
	}
	right = fwd.Cross(upHint).Normalize()
	up = right.Cross(fwd)
	return right, up, fwd
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ProjMatrix returns the projection for the active mode. The orthographic
// extents are divided by the zoom factor, so larger zoom shows less.
func (c *Camera) ProjMatrix() mgl64.Mat4 {
	if c.Projection == Orthographic {
		z := c.OrthoZoom
		if z < 1e-9 {
			z = 1e-9
		}
		return mgl64.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
	}
	return mgl64.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ProjectNDC maps a world point to normalized device coordinates. depth is
// the distance along the view direction; points with depth <= 0 are behind
// the camera and their NDC values are not meaningful.
func (c *Camera) ProjectNDC(p mgl64.Vec3) (x, y, depth float64) {
	right, up, forward := c.Basis()
	rel := p.Sub(c.Position)
	depth = rel.Dot(forward)

	if c.Projection == Orthographic {
		z := c.OrthoZoom
		if z < 1e-9 {
			z = 1e-9
		}
		halfW := (c.Right - c.Left) / 2 / z
		halfH := (c.Top - c.Bottom) / 2 / z
		if halfW < 1e-12 || halfH < 1e-12 {
			return 0, 0, depth
		}
		return rel.Dot(right) / halfW, rel.Dot(up) / halfH, depth
	}

	d := depth
	if d < 1e-9 {
		d = 1e-9
	}
	tanV := math.Tan(c.FOV / 2)
	return rel.Dot(right) / (d * tanV * c.Aspect), rel.Dot(up) / (d * tanV), depth
}

// Project maps a world point to pixel coordinates on a canvas of the given
// size. The returned depth is the view-space distance.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (x, y, depth float64) {
	nx, ny, depth := c.ProjectNDC(p)
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height, depth
}

// ScreenRay returns the world-space ray under a pixel position. For an
// orthographic camera the ray is parallel to the view direction and offset
// on the view plane.
func (c *Camera) ScreenRay(screenX, screenY, width, height float64) geometry.Ray {
	right, up, forward := c.Basis()
	ndcX := 2*screenX/width - 1
	ndcY := 1 - 2*screenY/height

	if c.Projection == Orthographic {
		z := c.OrthoZoom
		if z < 1e-9 {
			z = 1e-9
		}
		halfW := (c.Right - c.Left) / 2 / z
		halfH := (c.Top - c.Bottom) / 2 / z
		origin := c.Position.
			Add(right.Mul(ndcX * halfW)).
			Add(up.Mul(ndcY * halfH))
		return geometry.Ray{Origin: origin, Dir: forward}
	}

	tanV := math.Tan(c.FOV / 2)
	dir := forward.
		Add(right.Mul(ndcX * tanV * c.Aspect)).
		Add(up.Mul(ndcY * tanV)).
		Normalize()
	return geometry.Ray{Origin: c.Position, Dir: dir}
}
