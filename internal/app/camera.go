package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

// homeViewDir is the default three-quarter view direction
var homeViewDir = mgl64.Vec3{-1, -0.8, -1}.Normalize()

// frameView reframes the whole visible scene from the given view direction
func (app *App) frameView(dir mgl64.Vec3) {
	bounds, ok := scene.ComputeBounds(app.Roots(), true)
	if !ok {
		return
	}
	region := app.contentRegion()
	app.Camera.engine.FrameBounds(bounds, region, viewer.FitOptions{
		ViewDir: dir,
		Up:      mgl64.Vec3{0, 1, 0},
	})
}

// frameSelection reframes the selected nodes under the current view
// direction, falling back to the whole scene when nothing is selected
func (app *App) frameSelection() {
	cam := app.Camera.engine
	dir := cam.Forward()
	if len(app.Selection.nodes) == 0 {
		app.frameView(dir)
		return
	}
	var bounds geometry.BoundingBox
	found := false
	for _, n := range app.Selection.nodes {
		if n.Removed() {
			continue
		}
		b, ok := n.WorldBounds()
		if !ok {
			continue
		}
		if !found {
			bounds = b
			found = true
		} else {
			bounds = bounds.Union(b)
		}
	}
	if !found {
		app.frameView(dir)
		return
	}
	cam.FrameBounds(bounds, app.contentRegion(), viewer.FitOptions{
		ViewDir: dir,
		Up:      cam.Up,
	})
}

// resetCameraView frames the model from the default home direction
func (app *App) resetCameraView() {
	app.frameView(homeViewDir)
}

// setCameraTopView looks straight down
func (app *App) setCameraTopView() {
	app.frameView(mgl64.Vec3{0, -1, 0})
}

// setCameraBottomView looks straight up
func (app *App) setCameraBottomView() {
	app.frameView(mgl64.Vec3{0, 1, 0})
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.frameView(mgl64.Vec3{0, 0, -1})
}

// setCameraBackView looks along +Z
func (app *App) setCameraBackView() {
	app.frameView(mgl64.Vec3{0, 0, 1})
}

// setCameraLeftView looks along +X
func (app *App) setCameraLeftView() {
	app.frameView(mgl64.Vec3{1, 0, 0})
}

// setCameraRightView looks along -X
func (app *App) setCameraRightView() {
	app.frameView(mgl64.Vec3{-1, 0, 0})
}

// syncCamera mirrors the engine camera into the raylib camera used for
// drawing. For the orthographic mode raylib interprets Fovy as the visible
// world-space height.
func (app *App) syncCamera() {
	cam := app.Camera.engine
	app.Camera.rlCam.Position = toRlVector3(cam.Position)
	app.Camera.rlCam.Target = toRlVector3(cam.Target)
	app.Camera.rlCam.Up = toRlVector3(cam.Up)

	if cam.Projection == viewer.Orthographic {
		z := cam.OrthoZoom
		if z < 1e-9 {
			z = 1e-9
		}
		app.Camera.rlCam.Projection = rl.CameraOrthographic
		app.Camera.rlCam.Fovy = float32((cam.Top - cam.Bottom) / z)
	} else {
		app.Camera.rlCam.Projection = rl.CameraPerspective
		app.Camera.rlCam.Fovy = float32(cam.FOV * 180 / math.Pi)
	}
}

// toggleProjection switches between perspective and orthographic while
// keeping the framing: the orthographic extents are matched to the
// perspective frustum at the target depth and vice versa.
func (app *App) toggleProjection() {
	cam := app.Camera.engine
	if cam.Projection == viewer.Perspective {
		halfH := cam.Distance() * math.Tan(cam.FOV/2)
		cam.Top, cam.Bottom = halfH, -halfH
		cam.Right, cam.Left = halfH*cam.Aspect, -halfH*cam.Aspect
		cam.OrthoZoom = 1
		cam.Projection = viewer.Orthographic
	} else {
		cam.Projection = viewer.Perspective
	}
}
