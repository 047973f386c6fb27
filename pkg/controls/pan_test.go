package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/viewer"
)

func newPanRig() (*viewer.Camera, *GestureToken, *PanController) {
	cam := viewer.NewCamera()
	cam.Position = mgl64.Vec3{0, 0, 10}
	cam.Target = mgl64.Vec3{0, 0, 0}
	cam.Aspect = 800.0 / 600.0
	token := &GestureToken{}
	return cam, token, NewPanController(cam, token)
}

func TestPanFollowsCursor(t *testing.T) {
	cam, _, pc := newPanRig()
	region := viewer.FullCanvas(800, 600)

	// Track the world point that starts under the cursor
	ray := cam.ScreenRay(200, 200, 800, 600)
	anchor, ok := ray.IntersectPlane(cam.Target, cam.Forward())
	require.True(t, ok)

	require.True(t, pc.Begin(200, 200))
	pc.Move(350, 320, region)
	pc.End()

	x, y, _ := cam.Project(anchor, 800, 600)
	assert.InDelta(t, 350, x, 1.0, "anchor must follow the pointer")
	assert.InDelta(t, 320, y, 1.0)
}

func TestPanKeepsOrientationAndDistance(t *testing.T) {
	cam, _, pc := newPanRig()
	region := viewer.FullCanvas(800, 600)
	forward := cam.Forward()

	require.True(t, pc.Begin(0, 0))
	pc.Move(123, -45, region)
	pc.End()

	assert.InDelta(t, 10, cam.Distance(), 1e-9)
	assert.InDelta(t, 0, cam.Forward().Sub(forward).Len(), 1e-12)
}

func TestPanOrthographic(t *testing.T) {
	cam, _, pc := newPanRig()
	cam.Projection = viewer.Orthographic
	cam.Left, cam.Right = -4, 4
	cam.Bottom, cam.Top = -3, 3
	region := viewer.FullCanvas(800, 600)

	require.True(t, pc.Begin(0, 0))
	// A full canvas height of drag moves the view by the vertical extent
	pc.Move(0, 600, region)
	pc.End()

	assert.InDelta(t, 6, cam.Target.Y(), 1e-9)
	assert.InDelta(t, 0, cam.Target.X(), 1e-9)
}

func TestPanTokenLifecycle(t *testing.T) {
	_, token, pc := newPanRig()

	require.True(t, pc.Begin(0, 0))
	assert.Equal(t, GesturePan, token.Active())
	assert.False(t, pc.Begin(1, 1))

	pc.End()
	assert.Equal(t, GestureNone, token.Active())
}

func TestPanRefusedDuringRotate(t *testing.T) {
	_, token, pc := newPanRig()
	require.True(t, token.Acquire(GestureRotate, func() {}))
	assert.False(t, pc.Begin(0, 0))
	assert.False(t, pc.Dragging())
}

func TestPanPerspectiveScale(t *testing.T) {
	cam, _, pc := newPanRig()
	region := viewer.FullCanvas(800, 600)

	require.True(t, pc.Begin(0, 0))
	pc.Move(0, 300, region) // half the canvas height downward
	pc.End()

	// Half the vertical frustum extent at the target depth
	want := 10 * math.Tan(cam.FOV/2)
	assert.InDelta(t, want, cam.Target.Y(), 1e-9)
}
