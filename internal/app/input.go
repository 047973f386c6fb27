package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/viewer"
)

// handleInput processes user input for one frame
func (app *App) handleInput() {
	pos := rl.GetMousePosition()
	app.Interaction.lastMousePos = pos
	now := time.Now()
	region := app.contentRegion()
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	x, y := float64(pos.X), float64(pos.Y)
	inContent := app.pointerInContent(pos)

	app.handleKeys()
	app.updateSidebarHover(pos)

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	// Handle highlight while no gesture is running
	if app.Camera.token.Active() == controls.GestureNone && inContent && app.View.showGizmo {
		app.Camera.gizmo.Hover(app.screenRay(x, y, w, h))
	}

	// Gestures start only in the content area, never on the sidebar
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && inContent {
		app.Interaction.mouseDownPos = pos
		app.Interaction.mouseMoved = false

		ray := app.screenRay(x, y, w, h)
		switch {
		case app.View.showGizmo && app.Camera.gizmo.Begin(ray, x, y):
			// Gizmo drag grabbed a handle
		case ctrlPressed:
			app.Camera.zoom.BeginArea(x, y)
		case shiftPressed:
			app.Camera.pan.Begin(x, y)
		default:
			app.Camera.rotate.Begin(x, y)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) && inContent {
		app.Interaction.mouseDownPos = pos
		app.Interaction.mouseMoved = false
		app.Camera.pan.Begin(x, y)
	}

	// Route pointer motion to whichever gesture is running
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		drag := rl.Vector2Distance(app.Interaction.mouseDownPos, pos)
		if drag > 1.0 {
			app.Interaction.mouseMoved = true
		}
		switch {
		case app.Camera.gizmo.Dragging():
			app.Camera.gizmo.Move(x, y)
		case app.Camera.rotate.Dragging():
			app.Camera.rotate.Move(x, y)
		case app.Camera.pan.Dragging():
			app.Camera.pan.Move(x, y, region)
		default:
			app.Camera.zoom.MoveArea(x, y)
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		clicked := !app.Interaction.mouseMoved &&
			rl.Vector2Distance(app.Interaction.mouseDownPos, pos) < 5.0

		switch {
		case app.Camera.gizmo.Dragging():
			app.Camera.gizmo.End()
		case app.Camera.rotate.Dragging():
			app.Camera.rotate.End(now)
		case app.Camera.pan.Dragging():
			app.Camera.pan.End()
		default:
			app.Camera.zoom.EndArea(region, now)
		}

		if clicked && inContent {
			app.selectAt(x, y, w, h)
		} else if clicked {
			app.clickSidebar(pos)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseMiddleButton) {
		app.Camera.pan.End()
	}

	// Cursor-anchored wheel zoom
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 && inContent {
		sign := 1.0
		if wheel < 0 {
			sign = -1.0
		}
		app.Camera.zoom.Scroll(x, y, sign, region, now)
	}
}

// handleKeys processes the keyboard shortcuts
func (app *App) handleKeys() {
	// Camera view presets
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		app.frameSelection()
	}

	// Display toggles
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyO) {
		app.toggleProjection()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		app.UI.sidebarVisible = !app.UI.sidebarVisible
	}

	// Gizmo modes
	if rl.IsKeyPressed(rl.KeyG) {
		app.Camera.gizmo.SetMode(controls.GizmoMove)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.Camera.gizmo.SetMode(controls.GizmoRotate)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		app.Camera.gizmo.SetMode(controls.GizmoScale)
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		app.clearSelection()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.captureScreenshot()
	}
}

// screenRay builds the engine pick ray for a pixel position
func (app *App) screenRay(x, y, w, h float64) geometry.Ray {
	return app.Camera.engine.ScreenRay(x, y, w, h)
}

// captureScreenshot renders the scene offscreen and writes a PNG next to
// the working directory
func (app *App) captureScreenshot() {
	name := fmt.Sprintf("modelview_%s.png", time.Now().Format("20060102_150405"))
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	opts := viewer.DefaultRenderOptions()
	opts.Wireframe = app.View.showWireframe
	if err := viewer.CaptureToFile(name, app.Roots(), app.Camera.engine, w, h, opts); err != nil {
		fmt.Printf("Screenshot failed: %v\n", err)
		return
	}
	fmt.Printf("Saved screenshot: %s\n", name)
}

// drawAreaZoomRect draws the drag rectangle of a running area zoom
func (app *App) drawAreaZoomRect() {
	x, y, w, h, ok := app.Camera.zoom.AreaRect()
	if !ok {
		return
	}
	rect := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	rl.DrawRectangleRec(rect, rl.NewColor(90, 140, 255, 40))
	rl.DrawRectangleLinesEx(rect, 1, rl.NewColor(90, 140, 255, 200))
}
