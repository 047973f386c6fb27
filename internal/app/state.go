package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/config"
	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/stl"
	"github.com/philipparndt/modelview/pkg/viewer"
	"github.com/philipparndt/modelview/pkg/watcher"
)

// CameraState bundles the engine camera with its gesture controllers and
// the raylib camera it is mirrored into every frame
type CameraState struct {
	engine *viewer.Camera
	token  *controls.GestureToken
	pivots *controls.PivotResolver
	rotate *controls.RotationController
	zoom   *controls.ZoomController
	pan    *controls.PanController
	gizmo  *controls.GizmoController
	rlCam  rl.Camera3D
}

// ModelData holds the loaded model and its per-node GPU meshes
type ModelData struct {
	model  *stl.Model
	root   *scene.Node
	meshes map[*scene.Node]rl.Mesh
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showGizmo     bool
}

// SelectionState tracks the selected nodes and the last picked surface
// point, which doubles as the cursor pivot
type SelectionState struct {
	nodes     []*scene.Node
	cursor    mgl64.Vec3
	hasCursor bool
}

// SelectedNodes returns the current selection for pivot resolution
func (s *SelectionState) SelectedNodes() []*scene.Node {
	return s.nodes
}

// InteractionState holds per-frame pointer bookkeeping
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	lastMousePos rl.Vector2
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string
	fileWatcher      *watcher.FileWatcher
	needsReload      bool
	isLoading        bool
	loadingStartTime time.Time
	loadedModel      *stl.Model
}

// UIState holds sidebar layout state
type UIState struct {
	sidebarVisible bool
	itemBounds     []rl.Rectangle
	hoveredItem    int
}

type App struct {
	Config      *config.Config
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Selection   SelectionState
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// Roots returns the scene roots for pivot resolution and rendering
func (app *App) Roots() []*scene.Node {
	if app.Model.root == nil {
		return nil
	}
	return []*scene.Node{app.Model.root}
}
