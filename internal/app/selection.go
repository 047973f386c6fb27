package app

import (
	"fmt"

	"github.com/philipparndt/modelview/pkg/scene"
)

// selectAt picks the mesh node under the pixel position. A hit selects the
// node, attaches the gizmo and remembers the surface point as the cursor
// pivot; empty space clears the selection.
func (app *App) selectAt(x, y, w, h float64) {
	ray := app.screenRay(x, y, w, h)

	var best *scene.Node
	bestT := 0.0
	for _, root := range app.Roots() {
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
		app.clearSelection()
		return
	}

	app.Selection.nodes = []*scene.Node{best}
	app.Selection.cursor = ray.Origin.Add(ray.Dir.Mul(bestT))
	app.Selection.hasCursor = true
	app.Camera.pivots.Cursor = &app.Selection.cursor
	app.Camera.gizmo.Attach(best)
	fmt.Printf("Selected: %s\n", best.Name)
}

// clearSelection drops the selection, the cursor pivot and the gizmo
func (app *App) clearSelection() {
	app.Selection.nodes = nil
	app.Selection.hasCursor = false
	app.Camera.pivots.Cursor = nil
	app.Camera.gizmo.Detach()
}

// pruneSelection removes nodes that are no longer part of the scene, for
// example after a model reload
func (app *App) pruneSelection() {
	kept := app.Selection.nodes[:0]
	for _, n := range app.Selection.nodes {
		if !n.Removed() {
			kept = append(kept, n)
		}
	}
	app.Selection.nodes = kept
	if target := app.Camera.gizmo.Target(); target != nil && target.Removed() {
		app.Camera.gizmo.Detach()
	}
}
