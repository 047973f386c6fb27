package controls

import (
	"math"

	"github.com/philipparndt/modelview/pkg/viewer"
)

// PanController slides camera and orbit target together across the view
// plane. The drag is mapped so the world point under the cursor follows
// the pointer one to one.
type PanController struct {
	cam   *viewer.Camera
	token *GestureToken

	active bool
	lastX  float64
	lastY  float64
}

// NewPanController wires the controller to the camera and gesture token
func NewPanController(cam *viewer.Camera, token *GestureToken) *PanController {
	return &PanController{cam: cam, token: token}
}

// Begin starts a pan drag. Returns false when another exclusive gesture is
// running.
func (pc *PanController) Begin(x, y float64) bool {
	if pc.cam == nil || pc.active {
		return false
	}
	if !pc.token.Acquire(GesturePan, pc.Cancel) {
		return false
	}
	pc.active = true
	pc.lastX, pc.lastY = x, y
	return true
}

// Move applies the pointer position to the running drag
func (pc *PanController) Move(x, y float64, region viewer.Region) {
	if !pc.active || !region.Valid() {
		return
	}
	dx := x - pc.lastX
	dy := y - pc.lastY
	pc.lastX, pc.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}

	cam := pc.cam
	// World units per pixel at the target depth
	var perPixel float64
	if cam.Projection == viewer.Orthographic {
		z := cam.OrthoZoom
		if z < 1e-9 {
			z = 1e-9
		}
		perPixel = (cam.Top - cam.Bottom) / z / region.CanvasHeight
	} else {
		perPixel = 2 * cam.Distance() * math.Tan(cam.FOV/2) / region.CanvasHeight
	}

	right, up, _ := cam.Basis()
	shift := right.Mul(-dx * perPixel).Add(up.Mul(dy * perPixel))
	cam.Position = cam.Position.Add(shift)
	cam.Target = cam.Target.Add(shift)
}

// Dragging reports whether a pan drag is running
func (pc *PanController) Dragging() bool {
	return pc.active
}

// End finishes the drag and releases the gesture token
func (pc *PanController) End() {
	if !pc.active {
		return
	}
	pc.active = false
	pc.token.Release(GesturePan)
}

// Cancel aborts the drag. Panning applies immediately, so cancelling simply
// stops tracking.
func (pc *PanController) Cancel() {
	pc.End()
}
