package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

// GizmoMode selects which transform a handle drag edits
type GizmoMode int

const (
	GizmoMove GizmoMode = iota
	GizmoRotate
	GizmoScale
)

// Axis identifies a gizmo handle axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec returns the world-space unit vector of the axis
func (a Axis) Vec() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

// minAxisScale is the smallest per-axis scale a drag can produce,
// preventing degenerate or inverted geometry
const minAxisScale = 0.1

// Relative handle dimensions, as fractions of the gizmo size
const (
	gizmoArrowHitFrac = 0.15
	gizmoRingFrac     = 0.8
	gizmoRingHitFrac  = 0.2
)

// Handle is one interactive gizmo primitive: an arrow along an axis for
// move and scale, a ring around it for rotate. Frontends draw from this;
// picking ray-casts only against these primitives, never the scene.
type Handle struct {
	Axis        Axis
	Mode        GizmoMode
	Origin      mgl64.Vec3
	Length      float64 // arrow length, or ring radius for rotate
	Highlighted bool
}

// GizmoController maps handle drags to move/rotate/scale of the attached
// node about its own bounding-box pivot. A drag session is created on
// grab, mutated on move and discarded on release.
type GizmoController struct {
	cam   *viewer.Camera
	token *GestureToken
	opts  Options

	mode   GizmoMode
	target *scene.Node
	pivot  mgl64.Vec3
	size   float64

	hoverAxis Axis
	hovering  bool

	// Drag session, valid while dragging is set
	dragging     bool
	axis         Axis
	startX       float64
	startY       float64
	initPos      mgl64.Vec3
	initRot      mgl64.Quat
	initScale    mgl64.Vec3
	initWorldPos mgl64.Vec3
	initPivot    mgl64.Vec3
}

// NewGizmoController wires the controller to the camera and gesture token
func NewGizmoController(cam *viewer.Camera, token *GestureToken, opts Options) *GizmoController {
	return &GizmoController{cam: cam, token: token, opts: opts, mode: GizmoMove}
}

// Attach binds the gizmo to a node. The pivot is the node's world
// bounding-box center, falling back to its origin for meshless nodes.
// Returns false for a nil or removed node.
func (g *GizmoController) Attach(node *scene.Node) bool {
	if node == nil || node.Removed() {
		return false
	}
	g.target = node
	if b, ok := node.WorldBounds(); ok {
		g.pivot = b.Center()
		_, radius := b.Sphere()
		g.size = radius * 1.2
	} else {
		g.pivot = node.WorldPosition()
		g.size = 1
	}
	if g.size < 0.5 {
		g.size = 0.5
	}
	return true
}

// Detach unbinds the gizmo, cancelling any running drag
func (g *GizmoController) Detach() {
	g.Cancel()
	g.target = nil
	g.hovering = false
}

// Target returns the attached node, nil when detached
func (g *GizmoController) Target() *scene.Node {
	return g.target
}

// Mode returns the active gizmo mode
func (g *GizmoController) Mode() GizmoMode {
	return g.mode
}

// SetMode switches between move, rotate and scale handles. Ignored while a
// drag is running.
func (g *GizmoController) SetMode(mode GizmoMode) {
	if g.dragging {
		return
	}
	g.mode = mode
}

// Pivot returns the gizmo pivot point
func (g *GizmoController) Pivot() mgl64.Vec3 {
	return g.pivot
}

// Dragging reports whether a handle drag is running
func (g *GizmoController) Dragging() bool {
	return g.dragging
}

// Handles returns the interactive primitives of the current mode, with
// hover and drag highlight state applied
func (g *GizmoController) Handles() []Handle {
	if g.target == nil {
		return nil
	}
	out := make([]Handle, 0, 3)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		h := Handle{
			Axis:   axis,
			Mode:   g.mode,
			Origin: g.pivot,
			Length: g.size,
		}
		if g.mode == GizmoRotate {
			h.Length = g.size * gizmoRingFrac
		}
		if (g.dragging && g.axis == axis) || (!g.dragging && g.hovering && g.hoverAxis == axis) {
			h.Highlighted = true
		}
		out = append(out, h)
	}
	return out
}

// Pick ray-casts against the handle primitives of the current mode and
// returns the grabbed axis. First hit (smallest ray separation) wins.
func (g *GizmoController) Pick(ray geometry.Ray) (Axis, bool) {
	if g.target == nil {
		return 0, false
	}
	best := math.Inf(1)
	bestAxis := AxisX
	found := false

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if g.mode == GizmoRotate {
			// Ring in the plane perpendicular to the axis
			radius := g.size * gizmoRingFrac
			pt, ok := ray.IntersectPlane(g.pivot, axis.Vec())
			if !ok {
				continue
			}
			fromRing := math.Abs(pt.Sub(g.pivot).Len() - radius)
			if fromRing < g.size*gizmoRingHitFrac && fromRing < best {
				best = fromRing
				bestAxis = axis
				found = true
			}
			continue
		}
		// Arrow along the axis
		t, dist := ray.ClosestToLine(g.pivot, axis.Vec())
		if t > 0 && t < g.size && dist < g.size*gizmoArrowHitFrac && dist < best {
			best = dist
			bestAxis = axis
			found = true
		}
	}
	return bestAxis, found
}

// Hover updates the pre-drag handle highlight from the pointer ray
func (g *GizmoController) Hover(ray geometry.Ray) {
	if g.dragging {
		return
	}
	g.hoverAxis, g.hovering = g.Pick(ray)
}

// Begin grabs a handle and opens a drag session, pre-empting a running
// camera gesture. Returns false when nothing was hit or the target is
// stale.
func (g *GizmoController) Begin(ray geometry.Ray, x, y float64) bool {
	if g.target == nil || g.target.Removed() || g.dragging {
		return false
	}
	axis, ok := g.Pick(ray)
	if !ok {
		return false
	}
	if !g.token.Acquire(GestureGizmo, g.Cancel) {
		return false
	}

	g.dragging = true
	g.axis = axis
	g.startX, g.startY = x, y
	g.initPos = g.target.Position
	g.initRot = g.target.Rotation
	g.initScale = g.target.Scale
	g.initWorldPos = g.target.WorldPosition()
	g.initPivot = g.pivot
	return true
}

// Move applies the pointer position to the drag session. A target whose
// node was removed since the grab silently cancels the drag.
func (g *GizmoController) Move(x, y float64) {
	if !g.dragging {
		return
	}
	if g.target == nil || g.target.Removed() {
		g.Cancel()
		return
	}
	dx := x - g.startX
	dy := y - g.startY

	// Vertical pointer motion drives the Y handle, horizontal the rest
	delta := dx
	if g.axis == AxisY {
		delta = -dy
	}

	switch g.mode {
	case GizmoMove:
		offset := delta * g.opts.GizmoMoveSensitivity
		worldDelta := g.axis.Vec().Mul(offset)
		g.setWorldPosition(g.initWorldPos.Add(worldDelta))
		// The gizmo follows the object
		g.pivot = g.initPivot.Add(worldDelta)

	case GizmoRotate:
		angle := delta * g.opts.GizmoRotateSensitivity
		q := mgl64.QuatRotate(angle, g.axis.Vec())
		// The object orbits its own pivot while spinning
		offset := g.initWorldPos.Sub(g.initPivot)
		g.setWorldPosition(g.initPivot.Add(q.Rotate(offset)))
		g.target.Rotation = q.Mul(g.initRot)

	case GizmoScale:
		factor := 1 + delta*g.opts.GizmoScaleSensitivity
		init := g.initScale[int(g.axis)]
		if init > 0 && factor*init < minAxisScale {
			factor = minAxisScale / init
		}
		s := g.initScale
		s[int(g.axis)] = init * factor
		g.target.Scale = s
	}
}

// End closes the drag session, restoring the handle highlight and
// releasing the gesture token
func (g *GizmoController) End() {
	if !g.dragging {
		return
	}
	g.dragging = false
	g.hovering = false
	g.token.Release(GestureGizmo)
}

// Cancel aborts the drag through the identical restore path as End, so a
// pre-empted or stale-target drag never leaves a handle highlighted
func (g *GizmoController) Cancel() {
	g.End()
}

// setWorldPosition moves the target so its world origin lands on p,
// converting the delta into the parent's rotated frame for child nodes
func (g *GizmoController) setWorldPosition(p mgl64.Vec3) {
	worldDelta := p.Sub(g.initWorldPos)
	if parent := g.target.Parent(); parent != nil {
		worldDelta = parent.WorldRotation().Inverse().Rotate(worldDelta)
	}
	g.target.Position = g.initPos.Add(worldDelta)
}
