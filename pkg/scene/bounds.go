package scene

import (
	"github.com/philipparndt/modelview/pkg/geometry"
)

// ComputeBounds unions the world-space bounds of every mesh leaf in the
// given subtrees. With visibleOnly set, invisible nodes and everything
// below them are skipped. ok is false when no geometry contributes;
// callers are expected to no-op in that case.
//
// Bounds are always recomputed from the current transforms, never cached:
// the result is valid only for the tree state at call time.
func ComputeBounds(roots []*Node, visibleOnly bool) (geometry.BoundingBox, bool) {
	var out geometry.BoundingBox
	found := false
	for _, root := range roots {
		if root == nil {
			continue
		}
		root.Walk(func(n *Node) bool {
			if visibleOnly && !n.Visible {
				return false
			}
			if b, ok := n.WorldBounds(); ok {
				if !found {
					out = b
					found = true
				} else {
					out = out.Union(b)
				}
			}
			return true
		})
	}
	return out, found
}
