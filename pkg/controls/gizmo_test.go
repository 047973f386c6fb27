package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

func newGizmoRig(node *scene.Node) (*GestureToken, *GizmoController) {
	token := &GestureToken{}
	g := NewGizmoController(viewer.NewCamera(), token, DefaultOptions())
	if node != nil {
		g.Attach(node)
	}
	return token, g
}

// axisRay builds a ray that hits the arrow handle of the given axis dead on,
// shooting down -Z from above the handle midpoint.
func axisRay(g *GizmoController, axis Axis) geometry.Ray {
	p := g.pivot.Add(axis.Vec().Mul(g.size * 0.5))
	return geometry.Ray{Origin: mgl64.Vec3{p.X(), p.Y(), 5}, Dir: mgl64.Vec3{0, 0, -1}}
}

// ringRay builds a ray that hits the Z rotation ring dead on
func ringRay(g *GizmoController) geometry.Ray {
	r := g.size * gizmoRingFrac
	return geometry.Ray{
		Origin: mgl64.Vec3{g.pivot.X() + r, g.pivot.Y(), 5},
		Dir:    mgl64.Vec3{0, 0, -1},
	}
}

func TestGizmoAttachUsesBoundsCenter(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{3, 0, 0}, 1)
	_, g := newGizmoRig(n)

	assert.Equal(t, mgl64.Vec3{3, 0, 0}, g.Pivot())
	assert.InDelta(t, math.Sqrt(3)*1.2, g.size, 1e-9)
}

func TestGizmoAttachMeshlessNode(t *testing.T) {
	n := scene.NewNode("empty")
	n.Position = mgl64.Vec3{1, 2, 3}
	_, g := newGizmoRig(n)

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, g.Pivot())
	assert.GreaterOrEqual(t, g.size, 0.5)
}

func TestGizmoAttachRemovedNodeRefused(t *testing.T) {
	root := scene.NewNode("root")
	n := meshNode("gone", mgl64.Vec3{}, 1)
	root.AddChild(n)
	root.Remove(n)

	_, g := newGizmoRig(nil)
	assert.False(t, g.Attach(n))
	assert.Nil(t, g.Target())
}

func TestGizmoPickArrow(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)

	axis, ok := g.Pick(geometry.Ray{Origin: mgl64.Vec3{1, 0, 5}, Dir: mgl64.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.Equal(t, AxisX, axis)

	axis, ok = g.Pick(axisRay(g, AxisY))
	require.True(t, ok)
	assert.Equal(t, AxisY, axis)

	// A ray far away from every handle misses
	_, ok = g.Pick(geometry.Ray{Origin: mgl64.Vec3{100, 100, 5}, Dir: mgl64.Vec3{0, 0, -1}})
	assert.False(t, ok)
}

func TestGizmoPickRing(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)
	g.SetMode(GizmoRotate)

	axis, ok := g.Pick(ringRay(g))
	require.True(t, ok)
	assert.Equal(t, AxisZ, axis)

	// The arrow ray from move mode lands inside the ring band radius of
	// nothing, it must miss in rotate mode
	_, ok = g.Pick(geometry.Ray{Origin: mgl64.Vec3{0.01, 0, 5}, Dir: mgl64.Vec3{0, 0, -1}})
	assert.False(t, ok)
}

func TestGizmoMoveLinearity(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)
	k := DefaultOptions().GizmoMoveSensitivity

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Move(120, 0)
	assert.InDelta(t, 120*k, n.Position.X(), 1e-12)
	assert.InDelta(t, 0, n.Position.Y(), 1e-12)

	// The pivot follows the object
	assert.InDelta(t, 120*k, g.Pivot().X(), 1e-12)

	// Deltas are measured from the grab point, not accumulated per event
	g.Move(40, 0)
	assert.InDelta(t, 40*k, n.Position.X(), 1e-12)
	g.End()
}

func TestGizmoMoveVerticalAxis(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)
	k := DefaultOptions().GizmoMoveSensitivity

	require.True(t, g.Begin(axisRay(g, AxisY), 0, 0))
	// Dragging the pointer up (negative screen dy) moves the object up
	g.Move(0, -80)
	assert.InDelta(t, 80*k, n.Position.Y(), 1e-12)
	g.End()
}

func TestGizmoMoveChildConvertsToParentFrame(t *testing.T) {
	parent := scene.NewNode("parent")
	parent.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	child := meshNode("child", mgl64.Vec3{}, 1)
	parent.AddChild(child)

	_, g := newGizmoRig(child)
	k := DefaultOptions().GizmoMoveSensitivity

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Move(100, 0)
	g.End()

	// A world +X move lands on the child's local -Y under a 90 degree
	// parent rotation, so the world position still moved along +X
	assert.InDelta(t, -100*k, child.Position.Y(), 1e-9)
	assert.InDelta(t, 100*k, child.WorldPosition().X(), 1e-9)
	assert.InDelta(t, 0, child.WorldPosition().Y(), 1e-9)
}

func TestGizmoRotateAboutPivot(t *testing.T) {
	// Mesh centered at (2,0,0) while the node origin stays at (0,0,0), so
	// rotation must orbit the node around the bounds center
	n := scene.NewNode("part")
	n.Mesh = &scene.Mesh{
		Bounds: geometry.NewBoundingBox(mgl64.Vec3{1, -1, -1}, mgl64.Vec3{3, 1, 1}),
	}
	_, g := newGizmoRig(n)
	g.SetMode(GizmoRotate)

	require.True(t, g.Begin(ringRay(g), 0, 0))
	g.Move(100, 0) // angle = 100 * sensitivity = 1 rad about Z
	g.End()

	angle := 100 * DefaultOptions().GizmoRotateSensitivity
	wantX := 2 - 2*math.Cos(angle)
	wantY := -2 * math.Sin(angle)
	assert.InDelta(t, wantX, n.Position.X(), 1e-9)
	assert.InDelta(t, wantY, n.Position.Y(), 1e-9)
	assert.InDelta(t, 2, n.Position.Sub(g.Pivot()).Len(), 1e-9,
		"the node must stay on its orbit around the pivot")

	want := mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1, math.Abs(want.Dot(n.Rotation)), 1e-9)
}

func TestGizmoScaleFloor(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)
	g.SetMode(GizmoScale)

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Move(-100000, 0)
	g.End()
	assert.InDelta(t, minAxisScale, n.Scale.X(), 1e-12)

	// A second shrink session must not push below the floor
	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Move(-100000, 0)
	g.End()
	assert.InDelta(t, minAxisScale, n.Scale.X(), 1e-12)
	assert.InDelta(t, 1, n.Scale.Y(), 1e-12, "other axes untouched")
}

func TestGizmoScaleGrow(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)
	g.SetMode(GizmoScale)
	k := DefaultOptions().GizmoScaleSensitivity

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Move(50, 0)
	g.End()
	assert.InDelta(t, 1+50*k, n.Scale.X(), 1e-12)
}

func TestGizmoStaleTargetCancelsDrag(t *testing.T) {
	root := scene.NewNode("root")
	n := meshNode("doomed", mgl64.Vec3{}, 1)
	root.AddChild(n)

	token, g := newGizmoRig(n)
	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	before := n.Position

	root.Remove(n)
	g.Move(500, 0)

	assert.False(t, g.Dragging())
	assert.Equal(t, GestureNone, token.Active())
	assert.Equal(t, before, n.Position, "a stale target must not be transformed")
}

func TestGizmoPreemptsRotation(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	token, g := newGizmoRig(n)

	rotateCancelled := false
	require.True(t, token.Acquire(GestureRotate, func() {
		rotateCancelled = true
		token.Release(GestureRotate)
	}))

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	assert.True(t, rotateCancelled)
	assert.Equal(t, GestureGizmo, token.Active())
	g.End()
}

func TestGizmoHighlightLifecycle(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)

	g.Hover(axisRay(g, AxisZ))
	handles := g.Handles()
	require.Len(t, handles, 3)
	for _, h := range handles {
		assert.Equal(t, h.Axis == AxisZ, h.Highlighted)
	}

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	for _, h := range g.Handles() {
		assert.Equal(t, h.Axis == AxisX, h.Highlighted)
	}

	g.End()
	for _, h := range g.Handles() {
		assert.False(t, h.Highlighted)
	}
}

func TestGizmoSetModeIgnoredDuringDrag(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	_, g := newGizmoRig(n)

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.SetMode(GizmoScale)
	assert.Equal(t, GizmoMove, g.Mode())

	g.End()
	g.SetMode(GizmoScale)
	assert.Equal(t, GizmoScale, g.Mode())
}

func TestGizmoDetachCancels(t *testing.T) {
	n := meshNode("part", mgl64.Vec3{}, 1)
	token, g := newGizmoRig(n)

	require.True(t, g.Begin(axisRay(g, AxisX), 0, 0))
	g.Detach()

	assert.Nil(t, g.Target())
	assert.False(t, g.Dragging())
	assert.Equal(t, GestureNone, token.Active())
	assert.Nil(t, g.Handles())
}
