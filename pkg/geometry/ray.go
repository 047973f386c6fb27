package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// IntersectPlane intersects the ray with the plane through point with the
// given normal. Returns the hit point and false when the ray is parallel to
// the plane or the hit lies behind the origin.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(denom) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Mul(t)), true
}

// IntersectBox intersects the ray with an axis-aligned box using the slab
// method. Returns the entry distance and false on a miss.
func (r Ray) IntersectBox(b BoundingBox) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(r.Dir[i]) < 1e-12 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - r.Origin[i]) / r.Dir[i]
		t2 := (b.Max[i] - r.Origin[i]) / r.Dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// ClosestToLine finds the closest approach between the ray and the line
// start+t*dir. Returns the parameter along the line and the separation
// distance. Used for picking against thin gizmo arrows.
func (r Ray) ClosestToLine(start, dir mgl64.Vec3) (t float64, dist float64) {
	w := r.Origin.Sub(start)
	a := r.Dir.Dot(r.Dir)
	b := r.Dir.Dot(dir)
	c := dir.Dot(dir)
	d := r.Dir.Dot(w)
	e := dir.Dot(w)

	denom := a*c - b*b
	var s float64
	if denom < 1e-12 {
		// Parallel lines: project ray origin onto the line
		s = 0
		t = e / c
	} else {
		s = (b*e - c*d) / denom
		t = (a*e - b*d) / denom
	}
	if s < 0 {
		s = 0
	}
	onRay := r.Origin.Add(r.Dir.Mul(s))
	onLine := start.Add(dir.Mul(t))
	return t, onRay.Sub(onLine).Len()
}
