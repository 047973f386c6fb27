package controls

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/viewer"
)

type rotateRig struct {
	cam    *viewer.Camera
	token  *GestureToken
	cursor mgl64.Vec3
	rc     *RotationController
}

func newRotateRig() *rotateRig {
	rig := &rotateRig{
		cam:   viewer.NewCamera(),
		token: &GestureToken{},
	}
	rig.cam.Position = mgl64.Vec3{0, 0, 10}
	rig.cam.Target = mgl64.Vec3{0, 0, 0}
	resolver := &PivotResolver{Camera: rig.cam, Cursor: &rig.cursor}
	rig.rc = NewRotationController(rig.cam, resolver, rig.token, DefaultOptions())
	return rig
}

func azimuthOf(offset mgl64.Vec3) float64 {
	return math.Atan2(offset.X(), offset.Z())
}

func TestRotationOrbitKeepsDistance(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.rc.Begin(100, 100))

	for i := 0; i <= 20; i++ {
		rig.rc.Move(100+float64(i*7), 100)
		assert.InDelta(t, 10, rig.cam.Position.Sub(rig.cam.Target).Len(), 1e-9)
	}
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, rig.cam.Target)
}

func TestRotationPivotLockedDuringGesture(t *testing.T) {
	rig := newRotateRig()
	rig.cursor = mgl64.Vec3{5, 0, 0}
	rig.rc.SetPivotMode(PivotCursor)

	require.True(t, rig.rc.Begin(0, 0))
	assert.Equal(t, mgl64.Vec3{5, 0, 0}, rig.cam.Target)
	frozen := rig.cam.Position.Sub(mgl64.Vec3{5, 0, 0}).Len()

	// Mode and cursor changes mid-gesture must not move the pivot
	rig.rc.SetPivotMode(PivotWorld)
	rig.cursor = mgl64.Vec3{-50, 3, 8}
	rig.rc.Move(60, 25)
	rig.rc.Move(90, 40)

	assert.Equal(t, mgl64.Vec3{5, 0, 0}, rig.cam.Target)
	assert.InDelta(t, frozen, rig.cam.Position.Sub(mgl64.Vec3{5, 0, 0}).Len(), 1e-9)

	// The next idle transition re-resolves under the new mode
	now := time.Now()
	rig.rc.End(now)
	rig.rc.Update(now.Add(time.Second))
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, rig.cam.Target)
}

func TestRotationSnapOnRelease(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.rc.Begin(0, 0))
	rig.rc.Move(100, 0) // well past the lock threshold, pure horizontal

	now := time.Now()
	rig.rc.End(now)

	offset := rig.cam.Position.Sub(mgl64.Vec3{0, 0, 0})
	azimuth := azimuthOf(offset)
	step := 2 * math.Pi / 8
	snapped := math.Round(azimuth/step) * step
	assert.InDelta(t, snapped, azimuth, 1e-4, "azimuth %v not on 45 degree grid", azimuth)
	assert.InDelta(t, 10, offset.Len(), 1e-9)
}

func TestRotationSnapDisabled(t *testing.T) {
	rig := newRotateRig()
	opts := DefaultOptions()
	opts.EnableRotationSnap = false
	rig.rc.opts = opts

	require.True(t, rig.rc.Begin(0, 0))
	rig.rc.Move(100, 0)
	before := rig.cam.Position
	rig.rc.End(time.Now())
	assert.Equal(t, before, rig.cam.Position)
}

func TestRotationPureClickSkipsSnap(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.rc.Begin(50, 50))
	before := rig.cam.Position
	rig.rc.End(time.Now())
	assert.Equal(t, before, rig.cam.Position, "a click without net rotation must not snap")
}

func TestRotationAxisLockHorizontal(t *testing.T) {
	rig := newRotateRig()
	startY := rig.cam.Position.Y()
	require.True(t, rig.rc.Begin(0, 0))

	// Strongly horizontal drag with slight vertical jitter
	rig.rc.Move(10, 1)
	rig.rc.Move(40, 3)
	rig.rc.Move(80, 2)

	assert.InDelta(t, startY, rig.cam.Position.Y(), 1e-9,
		"vertical jitter should be suppressed by the axis lock")
}

func TestRotationAxisLockDiagonalStaysFree(t *testing.T) {
	rig := newRotateRig()
	startY := rig.cam.Position.Y()
	require.True(t, rig.rc.Begin(0, 0))

	rig.rc.Move(30, 30)
	rig.rc.Move(60, 60)

	assert.Greater(t, math.Abs(rig.cam.Position.Y()-startY), 1e-6,
		"a diagonal drag must rotate both axes")
}

func TestRotationInclinationClamped(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.rc.Begin(0, 0))

	// Drag far past the pole
	rig.rc.Move(0, 5000)
	offset := rig.cam.Position.Sub(rig.cam.Target)
	inclination := math.Acos(mgl64.Clamp(offset.Y()/offset.Len(), -1, 1))
	assert.Greater(t, inclination, 0.0)
	assert.GreaterOrEqual(t, inclination, inclinationEpsilon-1e-9)
	assert.LessOrEqual(t, inclination, math.Pi-inclinationEpsilon+1e-9)
}

func TestRotationTokenHeldDuringDrag(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.rc.Begin(0, 0))
	assert.Equal(t, GestureRotate, rig.token.Active())

	// A second Begin while dragging is refused
	assert.False(t, rig.rc.Begin(1, 1))

	rig.rc.End(time.Now())
	assert.Equal(t, GestureNone, rig.token.Active())
}

func TestRotationRefusedWhileOtherGestureActive(t *testing.T) {
	rig := newRotateRig()
	require.True(t, rig.token.Acquire(GesturePan, func() {}))
	assert.False(t, rig.rc.Begin(0, 0))
}

func TestRotationCancelReleasesAndSettles(t *testing.T) {
	rig := newRotateRig()
	rig.cursor = mgl64.Vec3{3, 0, 0}
	rig.rc.SetPivotMode(PivotCursor)
	require.True(t, rig.rc.Begin(0, 0))
	rig.rc.Move(30, 10)

	rig.rc.Cancel()
	assert.Equal(t, GestureNone, rig.token.Active())
	assert.False(t, rig.rc.Dragging())

	// Cancel settles immediately on the next update
	rig.rc.Update(time.Now())
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, rig.cam.Target)
}

func TestRotationSettleDelay(t *testing.T) {
	rig := newRotateRig()
	rig.rc.SetPivotMode(PivotCursor)
	rig.cursor = mgl64.Vec3{0, 0, 0}
	require.True(t, rig.rc.Begin(0, 0))
	rig.rc.Move(20, 0)

	now := time.Now()
	rig.rc.End(now)
	target := rig.cam.Target

	// Before the settle delay the pivot stays put
	rig.cursor = mgl64.Vec3{7, 7, 7}
	rig.rc.Update(now.Add(50 * time.Millisecond))
	assert.Equal(t, target, rig.cam.Target)

	// After the delay it re-resolves
	rig.rc.Update(now.Add(time.Second))
	assert.Equal(t, mgl64.Vec3{7, 7, 7}, rig.cam.Target)
}
