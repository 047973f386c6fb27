package gui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/controls"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

// ModelViewer is a fyne widget that shows the software-rendered scene and
// feeds pointer input into the camera controllers
type ModelViewer struct {
	widget.BaseWidget

	roots  []*scene.Node
	cam    *viewer.Camera
	token  *controls.GestureToken
	pivots *controls.PivotResolver
	rotate *controls.RotationController
	zoom   *controls.ZoomController
	pan    *controls.PanController

	opts     viewer.RenderOptions
	img      *canvas.Image
	width    float64
	height   float64
	dragging bool

	selection []*scene.Node
	cursor    mgl64.Vec3
	onSelect  func(*scene.Node)
}

// SelectedNodes returns the picked nodes for pivot resolution
func (v *ModelViewer) SelectedNodes() []*scene.Node {
	return v.selection
}

// Roots returns the displayed scene roots
func (v *ModelViewer) Roots() []*scene.Node {
	return v.roots
}

// NewModelViewer creates the viewer widget for a scene
func NewModelViewer(roots []*scene.Node, cam *viewer.Camera, opts controls.Options) *ModelViewer {
	v := &ModelViewer{
		roots: roots,
		cam:   cam,
		token: &controls.GestureToken{},
		opts:  viewer.DefaultRenderOptions(),
	}
	v.pivots = &controls.PivotResolver{Camera: cam, Selection: v, Scene: v}
	v.rotate = controls.NewRotationController(cam, v.pivots, v.token, opts)
	v.zoom = controls.NewZoomController(cam, v.token, opts)
	v.pan = controls.NewPanController(cam, v.token)
	v.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	v.img.FillMode = canvas.ImageFillStretch
	v.ExtendBaseWidget(v)
	return v
}

// SetOnSelect sets the callback invoked when a node is picked. The callback
// receives nil when the selection was cleared.
func (v *ModelViewer) SetOnSelect(callback func(*scene.Node)) {
	v.onSelect = callback
}

// SetWireframe toggles edge rendering
func (v *ModelViewer) SetWireframe(on bool) {
	v.opts.Wireframe = on
	v.Render()
}

// FrameAll reframes the visible scene from the given view direction, or
// the current one when dir is zero
func (v *ModelViewer) FrameAll(dir mgl64.Vec3) {
	bounds, ok := scene.ComputeBounds(v.roots, true)
	if !ok {
		return
	}
	v.cam.FrameBounds(bounds, v.region(), viewer.FitOptions{
		ViewDir: dir,
		Up:      mgl64.Vec3{0, 1, 0},
	})
	v.Render()
}

// CreateRenderer creates the renderer for the widget
func (v *ModelViewer) CreateRenderer() fyne.WidgetRenderer {
	return &modelViewerRenderer{viewer: v}
}

// Render redraws the scene into the image backing the widget
func (v *ModelViewer) Render() {
	if v.width < 1 || v.height < 1 {
		return
	}
	// Drive pending pivot settles from the redraw path
	v.rotate.Update(time.Now())
	v.img.Image = viewer.RenderImage(v.roots, v.cam, int(v.width), int(v.height), v.opts)
	canvas.Refresh(v.img)
}

func (v *ModelViewer) region() viewer.Region {
	return viewer.FullCanvas(v.width, v.height)
}

// Dragged rotates the view; with many pixels of travel the controller's
// axis lock and snapping apply exactly as in the native frontend
func (v *ModelViewer) Dragged(event *fyne.DragEvent) {
	x := float64(event.Position.X)
	y := float64(event.Position.Y)
	if !v.dragging {
		v.dragging = v.rotate.Begin(x, y)
	}
	if v.dragging {
		v.rotate.Move(x, y)
		v.Render()
	}
}

// DragEnd finishes the rotation gesture
func (v *ModelViewer) DragEnd() {
	if v.dragging {
		v.rotate.End(time.Now())
		v.dragging = false
		v.Render()
	}
}

// Scrolled zooms anchored at the cursor
func (v *ModelViewer) Scrolled(event *fyne.ScrollEvent) {
	sign := 1.0
	if event.Scrolled.DY < 0 {
		sign = -1.0
	}
	v.zoom.Scroll(float64(event.Position.X), float64(event.Position.Y), sign, v.region(), time.Now())
	v.Render()
}

// Tapped picks the node under the pointer
func (v *ModelViewer) Tapped(event *fyne.PointEvent) {
	ray := v.cam.ScreenRay(float64(event.Position.X), float64(event.Position.Y), v.width, v.height)

	var best *scene.Node
	bestT := 0.0
	for _, root := range v.roots {
		root.Walk(func(n *scene.Node) bool {
			if !n.Visible {
				return false
			}
			bounds, ok := n.WorldBounds()
			if !ok {
				return true
			}
			t, hit := ray.IntersectBox(bounds)
			if hit && (best == nil || t < bestT) {
				best = n
				bestT = t
			}
			return true
		})
	}

	if best == nil {
		v.selection = nil
		v.pivots.Cursor = nil
	} else {
		v.selection = []*scene.Node{best}
		v.cursor = ray.Origin.Add(ray.Dir.Mul(bestT))
		v.pivots.Cursor = &v.cursor
	}
	if v.onSelect != nil {
		v.onSelect(best)
	}
	v.Render()
}

// modelViewerRenderer implements fyne.WidgetRenderer
type modelViewerRenderer struct {
	viewer *ModelViewer
}

func (r *modelViewerRenderer) Layout(size fyne.Size) {
	r.viewer.width = float64(size.Width)
	r.viewer.height = float64(size.Height)
	r.viewer.img.Resize(size)
	r.viewer.Render()
}

func (r *modelViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *modelViewerRenderer) Refresh() {
	canvas.Refresh(r.viewer.img)
}

func (r *modelViewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.img}
}

func (r *modelViewerRenderer) Destroy() {}
