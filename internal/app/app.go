package app

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/config"
	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/viewer"
)

const sidebarWidth = 260

// Run starts the viewer for the given model file
func Run(cfg *config.Config, sourceFile string) error {
	model, err := loadModel(sourceFile)
	if err != nil {
		return fmt.Errorf("error loading file: %w", err)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0) // ESC clears the selection instead of quitting

	app := newApp(cfg, sourceFile)
	app.setModel(model)

	if cfg.Viewer.WatchFile {
		if err := app.setupFileWatcher(); err != nil {
			fmt.Printf("Warning: failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	material := rl.LoadMaterialDefault()
	app.resetCameraView()

	for {
		if rl.WindowShouldClose() {
			break
		}
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		if app.FileWatch.needsReload && !app.FileWatch.isLoading {
			app.FileWatch.needsReload = false
			app.reloadModel()
		}
		app.applyLoadedModel()

		app.handleInput()
		app.Camera.rotate.Update(time.Now())
		app.syncCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.rlCam)
		if app.View.showFilled {
			app.drawModel(material)
		}
		if app.View.showWireframe {
			app.drawWireframe()
		}
		app.drawSelectionBounds()
		if app.View.showGizmo && app.Camera.gizmo.Target() != nil {
			app.drawGizmo()
		}
		rl.EndMode3D()

		app.drawAreaZoomRect()
		app.drawSidebar()

		rl.EndDrawing()
	}

	app.unloadMeshes()
	rl.CloseWindow()
	return nil
}

// newApp builds the application state around a fresh engine camera
func newApp(cfg *config.Config, sourceFile string) *App {
	cam := viewer.NewCamera()
	cam.FOV = cfg.Viewer.FOVDegrees * math.Pi / 180
	if cfg.Viewer.Orthographic {
		cam.Projection = viewer.Orthographic
	}

	app := &App{
		Config: cfg,
		View: ViewSettings{
			showWireframe: cfg.Viewer.Wireframe,
			showFilled:    true,
			showGizmo:     true,
		},
		FileWatch: FileWatchState{sourceFile: sourceFile},
		UI:        UIState{sidebarVisible: true, hoveredItem: -1},
	}

	token := &controls.GestureToken{}
	pivots := &controls.PivotResolver{
		Camera:    cam,
		Selection: &app.Selection,
		Scene:     app,
	}
	opts := cfg.ControlOptions()

	app.Camera = CameraState{
		engine: cam,
		token:  token,
		pivots: pivots,
		rotate: controls.NewRotationController(cam, pivots, token, opts),
		zoom:   controls.NewZoomController(cam, token, opts),
		pan:    controls.NewPanController(cam, token),
		gizmo:  controls.NewGizmoController(cam, token, opts),
		rlCam: rl.Camera3D{
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       float32(cfg.Viewer.FOVDegrees),
			Projection: rl.CameraPerspective,
		},
	}
	app.Camera.rotate.SetPivotMode(cfg.PivotMode())
	return app
}

// contentRegion describes the part of the window left of the sidebar. The
// 3D view spans the whole window, so the region keeps the full canvas size
// and carries the sidebar as an offset and scale for framing.
func (app *App) contentRegion() viewer.Region {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	region := viewer.FullCanvas(w, h)
	if app.UI.sidebarVisible && w > sidebarWidth {
		region.NDCX = -sidebarWidth / w
		region.ScaleX = (w - sidebarWidth) / w
	}
	return region
}

// pointerInContent reports whether the position lies in the 3D content
// area rather than on the sidebar
func (app *App) pointerInContent(pos rl.Vector2) bool {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if app.UI.sidebarVisible {
		w -= sidebarWidth
	}
	return float64(pos.X) >= 0 && float64(pos.X) < w &&
		float64(pos.Y) >= 0 && float64(pos.Y) < h
}
