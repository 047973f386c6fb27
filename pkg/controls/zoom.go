package controls

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/viewer"
)

// Orthographic zoom factor limits
const (
	minOrthoZoom = 0.05
	maxOrthoZoom = 50
)

// ZoomController implements cursor-anchored zooming: a perspective camera
// dollies along the view direction, an orthographic camera scales its zoom
// factor, and in both cases the world point under the cursor stays fixed
// on screen. It also provides drag-a-rectangle area zoom.
type ZoomController struct {
	cam   *viewer.Camera
	token *GestureToken
	opts  Options

	zoomingUntil time.Time

	areaActive bool
	areaStartX float64
	areaStartY float64
	areaEndX   float64
	areaEndY   float64
}

// NewZoomController wires the controller to the camera and gesture token
func NewZoomController(cam *viewer.Camera, token *GestureToken, opts Options) *ZoomController {
	return &ZoomController{cam: cam, token: token, opts: opts}
}

// Zooming reports whether a zoom happened within the debounce window.
// Frontends use it to skip expensive per-frame work while the wheel spins.
func (zc *ZoomController) Zooming(now time.Time) bool {
	return now.Before(zc.zoomingUntil)
}

// Scroll applies one wheel step anchored at the cursor. deltaSign > 0
// zooms in. No-op without a camera or usable canvas size.
func (zc *ZoomController) Scroll(cursorX, cursorY, deltaSign float64, region viewer.Region, now time.Time) {
	if zc.cam == nil || !region.Valid() || deltaSign == 0 {
		return
	}
	// Cancel-and-replace: repeated wheel events push the deadline out,
	// they never stack
	zc.zoomingUntil = now.Add(zc.opts.ZoomDebounce)

	anchor := zc.anchorPoint(cursorX, cursorY, region)
	if zc.cam.Projection == viewer.Orthographic {
		factor := 1 + zc.opts.ZoomStep
		if deltaSign < 0 {
			factor = 1 - zc.opts.ZoomStep
		}
		zc.orthoZoomTo(zc.cam.OrthoZoom*factor, anchor)
		return
	}

	step := zc.opts.ZoomStep
	if deltaSign > 0 {
		step = -step
	}
	zc.dollyTo(zc.cam.Distance()*(1+step), anchor)
}

// BeginArea starts an area-zoom rectangle drag. Returns false when another
// exclusive gesture is running.
func (zc *ZoomController) BeginArea(x, y float64) bool {
	if zc.cam == nil || zc.areaActive {
		return false
	}
	if !zc.token.Acquire(GestureAreaZoom, zc.CancelArea) {
		return false
	}
	zc.areaActive = true
	zc.areaStartX, zc.areaStartY = x, y
	zc.areaEndX, zc.areaEndY = x, y
	return true
}

// MoveArea extends the rectangle to the current pointer position
func (zc *ZoomController) MoveArea(x, y float64) {
	if !zc.areaActive {
		return
	}
	zc.areaEndX, zc.areaEndY = x, y
}

// AreaRect returns the current rectangle as min corner plus size, for the
// frontend to draw. ok is false when no drag is running.
func (zc *ZoomController) AreaRect() (x, y, w, h float64, ok bool) {
	if !zc.areaActive {
		return 0, 0, 0, 0, false
	}
	x = math.Min(zc.areaStartX, zc.areaEndX)
	y = math.Min(zc.areaStartY, zc.areaEndY)
	w = math.Abs(zc.areaEndX - zc.areaStartX)
	h = math.Abs(zc.areaEndY - zc.areaStartY)
	return x, y, w, h, true
}

// EndArea finishes the drag and zooms so the dragged rectangle roughly
// fills the canvas, reusing the anchor math with the rectangle center as
// the cursor. A degenerate rectangle is treated as an aborted gesture.
func (zc *ZoomController) EndArea(region viewer.Region, now time.Time) {
	if !zc.areaActive {
		return
	}
	zc.areaActive = false
	zc.token.Release(GestureAreaZoom)

	boxW := math.Abs(zc.areaEndX - zc.areaStartX)
	boxH := math.Abs(zc.areaEndY - zc.areaStartY)
	if boxW < 3 || boxH < 3 || !region.Valid() {
		return
	}
	factor := math.Min(region.CanvasWidth/boxW, region.CanvasHeight/boxH)
	centerX := (zc.areaStartX + zc.areaEndX) / 2
	centerY := (zc.areaStartY + zc.areaEndY) / 2

	zc.zoomingUntil = now.Add(zc.opts.ZoomDebounce)
	anchor := zc.anchorPoint(centerX, centerY, region)
	if zc.cam.Projection == viewer.Orthographic {
		zc.orthoZoomTo(zc.cam.OrthoZoom*factor, anchor)
	} else {
		zc.dollyTo(zc.cam.Distance()/factor, anchor)
	}
}

// CancelArea aborts the rectangle drag without zooming
func (zc *ZoomController) CancelArea() {
	if !zc.areaActive {
		return
	}
	zc.areaActive = false
	zc.token.Release(GestureAreaZoom)
}

// anchorPoint finds the world point under the cursor: the cursor ray
// intersected with the plane through the orbit target perpendicular to
// the view direction. Falls back to the target itself.
func (zc *ZoomController) anchorPoint(cursorX, cursorY float64, region viewer.Region) mgl64.Vec3 {
	forward := zc.cam.Forward()
	ray := zc.cam.ScreenRay(cursorX, cursorY, region.CanvasWidth, region.CanvasHeight)
	if p, ok := ray.IntersectPlane(zc.cam.Target, forward); ok {
		return p
	}
	return zc.cam.Target
}

// dollyTo moves a perspective camera to the new distance while keeping the
// anchor point fixed on screen, then shifts the orbit target by the same
// lateral delta.
func (zc *ZoomController) dollyTo(newDistance float64, anchor mgl64.Vec3) {
	cam := zc.cam
	oldDistance := cam.Distance()
	if oldDistance < 1e-12 {
		return
	}
	newDistance = mgl64.Clamp(newDistance, cam.MinDistance, cam.MaxDistance)
	ratio := newDistance / oldDistance
	forward := cam.Forward()

	cam.Position = anchor.Add(cam.Position.Sub(anchor).Mul(ratio))
	cam.Target = cam.Position.Add(forward.Mul(newDistance))
	cam.PivotDistance = newDistance
}

// orthoZoomTo changes the orthographic zoom factor and shifts camera and
// target toward the anchor so the anchor stays fixed on screen
func (zc *ZoomController) orthoZoomTo(newZoom float64, anchor mgl64.Vec3) {
	cam := zc.cam
	newZoom = mgl64.Clamp(newZoom, minOrthoZoom, maxOrthoZoom)
	if cam.OrthoZoom < 1e-12 {
		cam.OrthoZoom = newZoom
		return
	}
	zoomRatio := cam.OrthoZoom / newZoom
	shift := anchor.Sub(cam.Target).Mul(1 - zoomRatio)

	cam.Position = cam.Position.Add(shift)
	cam.Target = cam.Target.Add(shift)
	cam.OrthoZoom = newZoom
}
