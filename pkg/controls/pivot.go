package controls

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

// PivotMode selects the point a rotation gesture orbits around
type PivotMode int

const (
	// PivotScreen orbits the current target, the point under the
	// viewport center
	PivotScreen PivotMode = iota
	// PivotWorld orbits the world origin
	PivotWorld
	// PivotCursor orbits the persistent 3D cursor
	PivotCursor
	// PivotSelection orbits the bounding-box center of the selection,
	// falling back to the visible geometry
	PivotSelection
)

// SelectionSource exposes the externally-owned selection
type SelectionSource interface {
	SelectedNodes() []*scene.Node
}

// SceneSource exposes the scene roots for the visible-geometry fallback
type SceneSource interface {
	Roots() []*scene.Node
}

// PivotResolver turns a pivot mode into a concrete 3D point. It is
// read-only: resolving never mutates camera or scene state.
type PivotResolver struct {
	Camera    *viewer.Camera
	Cursor    *mgl64.Vec3 // persistent 3D cursor, nil means origin
	Selection SelectionSource
	Scene     SceneSource
}

// Resolve returns the pivot point for the given mode. ok is false when the
// mode cannot produce a point (no camera, empty scene); the caller falls
// back to the current orbit target.
func (r *PivotResolver) Resolve(mode PivotMode) (mgl64.Vec3, bool) {
	switch mode {
	case PivotWorld:
		return mgl64.Vec3{}, true
	case PivotCursor:
		if r.Cursor != nil {
			return *r.Cursor, true
		}
		return mgl64.Vec3{}, true
	case PivotSelection:
		if r.Selection != nil {
			if nodes := r.Selection.SelectedNodes(); len(nodes) > 0 {
				if b, ok := scene.ComputeBounds(liveNodes(nodes), false); ok {
					return b.Center(), true
				}
			}
		}
		// Empty or stale selection: center of the visible geometry
		if r.Scene != nil {
			if b, ok := scene.ComputeBounds(r.Scene.Roots(), true); ok {
				return b.Center(), true
			}
		}
		return mgl64.Vec3{}, false
	default: // PivotScreen
		if r.Camera == nil {
			return mgl64.Vec3{}, false
		}
		return r.Camera.Target, true
	}
}

// liveNodes filters out nodes that have been removed from their tree
func liveNodes(nodes []*scene.Node) []*scene.Node {
	out := make([]*scene.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil && !n.Removed() {
			out = append(out, n)
		}
	}
	return out
}
