package controls

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/viewer"
)

// inclinationEpsilon keeps the camera away from the spherical poles
const inclinationEpsilon = 0.01

type rotationPhase int

const (
	rotationIdle rotationPhase = iota
	rotationDragging
	rotationSettling
)

type axisLock int

const (
	lockUndecided axisLock = iota
	lockFree
	lockHorizontal
	lockVertical
)

// RotationController implements pivot-locked orbiting: a drag rotates the
// camera around a pivot resolved once at gesture start, with optional
// dominant-axis locking during the drag and angle snapping on release.
//
// Idle -> Dragging on Begin, Dragging -> Settling on End/Cancel, and
// Settling -> Idle from Update once the settle delay has passed and the
// pivot has been re-resolved under the active mode.
type RotationController struct {
	cam    *viewer.Camera
	pivots *PivotResolver
	token  *GestureToken
	opts   Options

	phase     rotationPhase
	pivotMode PivotMode

	// Frozen for the whole gesture
	pivot    mgl64.Vec3
	distance float64

	lastX, lastY   float64
	accumX, accumY float64
	lock           axisLock
	moved          bool

	settleAt time.Time
}

// NewRotationController wires the controller to its camera, pivot resolver
// and the shared gesture token
func NewRotationController(cam *viewer.Camera, pivots *PivotResolver, token *GestureToken, opts Options) *RotationController {
	return &RotationController{
		cam:    cam,
		pivots: pivots,
		token:  token,
		opts:   opts,
	}
}

// PivotMode returns the active pivot mode
func (rc *RotationController) PivotMode() PivotMode {
	return rc.pivotMode
}

// SetPivotMode changes the pivot mode. A running gesture keeps its frozen
// pivot; the new mode only takes effect at the next gesture start.
func (rc *RotationController) SetPivotMode(mode PivotMode) {
	rc.pivotMode = mode
}

// Dragging reports whether a rotation gesture is in progress
func (rc *RotationController) Dragging() bool {
	return rc.phase == rotationDragging
}

// Begin starts a rotation gesture at the given pointer position. It
// resolves and freezes the pivot and the camera-to-pivot distance for the
// whole gesture. Returns false when no camera is attached or another
// exclusive gesture holds the token.
func (rc *RotationController) Begin(x, y float64) bool {
	if rc.cam == nil || rc.phase == rotationDragging {
		return false
	}
	if !rc.token.Acquire(GestureRotate, rc.Cancel) {
		return false
	}

	pivot, ok := rc.pivots.Resolve(rc.pivotMode)
	if !ok {
		pivot = rc.cam.Target
	}
	rc.pivot = pivot
	rc.distance = rc.cam.Position.Sub(pivot).Len()
	if rc.distance < 1e-9 {
		rc.distance = math.Max(rc.cam.PivotDistance, rc.cam.MinDistance)
	}
	rc.cam.Target = pivot
	rc.cam.Pivot = pivot
	rc.cam.PivotDistance = rc.distance

	rc.phase = rotationDragging
	rc.lastX, rc.lastY = x, y
	rc.accumX, rc.accumY = 0, 0
	rc.lock = lockUndecided
	rc.moved = false
	return true
}

// Move applies a pointer move to the running gesture
func (rc *RotationController) Move(x, y float64) {
	if rc.phase != rotationDragging {
		return
	}
	dx := x - rc.lastX
	dy := y - rc.lastY
	rc.lastX, rc.lastY = x, y
	rc.accumX += dx
	rc.accumY += dy

	// Decide the dominant-axis lock once enough travel accumulated
	if rc.lock == lockUndecided &&
		math.Abs(rc.accumX)+math.Abs(rc.accumY) >= rc.opts.RotationAxisLockMinDelta {
		switch {
		case math.Abs(rc.accumX) > rc.opts.RotationAxisLockRatio*math.Abs(rc.accumY):
			rc.lock = lockHorizontal
		case math.Abs(rc.accumY) > rc.opts.RotationAxisLockRatio*math.Abs(rc.accumX):
			rc.lock = lockVertical
		default:
			rc.lock = lockFree
		}
	}
	switch rc.lock {
	case lockHorizontal:
		dy = 0
	case lockVertical:
		dx = 0
	}
	if dx == 0 && dy == 0 {
		return
	}
	rc.moved = true

	yaw := -dx * rc.opts.RotationSensitivity
	pitch := -dy * rc.opts.RotationSensitivity

	_, azimuth, inclination := rc.spherical()
	azimuth += yaw
	inclination = clampInclination(inclination + pitch)
	rc.applySpherical(azimuth, inclination)
}

// End finishes the gesture: snaps the released angles onto the configured
// grid when net rotation happened, releases the token and schedules the
// pivot re-resolution.
func (rc *RotationController) End(now time.Time) {
	if rc.phase != rotationDragging {
		return
	}
	if rc.moved && rc.opts.EnableRotationSnap && rc.opts.RotationSnapSteps > 0 {
		_, azimuth, inclination := rc.spherical()
		azStep := 2 * math.Pi / float64(rc.opts.RotationSnapSteps)
		incStep := math.Pi / float64(rc.opts.pitchSteps())
		azimuth = math.Round(azimuth/azStep) * azStep
		inclination = clampInclination(math.Round(inclination/incStep) * incStep)
		rc.applySpherical(azimuth, inclination)
	}
	rc.phase = rotationSettling
	rc.settleAt = now.Add(rc.opts.SettleDelay)
	rc.token.Release(GestureRotate)
}

// Cancel aborts the gesture through the same path as a normal release,
// minus the angle snap. Safe to call when idle.
func (rc *RotationController) Cancel() {
	if rc.phase != rotationDragging {
		return
	}
	rc.phase = rotationSettling
	rc.settleAt = time.Time{} // settle on the next update
	rc.token.Release(GestureRotate)
}

// Update drives the settle timer. Call once per frame; when the settle
// delay has passed the pivot is re-resolved under the (possibly changed)
// active mode and the orbit target moves there.
func (rc *RotationController) Update(now time.Time) {
	if rc.phase != rotationSettling || now.Before(rc.settleAt) {
		return
	}
	rc.phase = rotationIdle
	if pivot, ok := rc.pivots.Resolve(rc.pivotMode); ok {
		rc.cam.Target = pivot
		rc.cam.Pivot = pivot
		rc.cam.PivotDistance = rc.cam.Distance()
	}
}

// spherical returns the camera offset from the frozen pivot in spherical
// coordinates: radius, azimuth around the up axis, inclination from it
func (rc *RotationController) spherical() (radius, azimuth, inclination float64) {
	offset := rc.cam.Position.Sub(rc.pivot)
	radius = offset.Len()
	if radius < 1e-12 {
		return rc.distance, 0, math.Pi / 2
	}
	azimuth = math.Atan2(offset.X(), offset.Z())
	inclination = math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))
	return radius, azimuth, inclination
}

// applySpherical repositions the camera on the sphere of the frozen
// distance around the frozen pivot, looking at the pivot
func (rc *RotationController) applySpherical(azimuth, inclination float64) {
	sinI := math.Sin(inclination)
	offset := mgl64.Vec3{
		rc.distance * sinI * math.Sin(azimuth),
		rc.distance * math.Cos(inclination),
		rc.distance * sinI * math.Cos(azimuth),
	}
	rc.cam.Position = rc.pivot.Add(offset)
	rc.cam.Target = rc.pivot
}

// clampInclination keeps the inclination inside (epsilon, pi-epsilon) to
// avoid the gimbal flip at the poles
func clampInclination(v float64) float64 {
	return mgl64.Clamp(v, inclinationEpsilon, math.Pi-inclinationEpsilon)
}
