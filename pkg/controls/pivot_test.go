package controls

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/viewer"
)

type fakeSelection struct {
	nodes []*scene.Node
}

func (f *fakeSelection) SelectedNodes() []*scene.Node { return f.nodes }

type fakeScene struct {
	roots []*scene.Node
}

func (f *fakeScene) Roots() []*scene.Node { return f.roots }

func meshNode(name string, center mgl64.Vec3, halfExtent float64) *scene.Node {
	n := scene.NewNode(name)
	n.Position = center
	h := halfExtent
	n.Mesh = &scene.Mesh{
		Bounds: geometry.NewBoundingBox(mgl64.Vec3{-h, -h, -h}, mgl64.Vec3{h, h, h}),
	}
	return n
}

func TestPivotResolverModes(t *testing.T) {
	cam := viewer.NewCamera()
	cam.Target = mgl64.Vec3{1, 2, 3}
	cursor := mgl64.Vec3{-4, 0, 2}

	r := &PivotResolver{Camera: cam, Cursor: &cursor}

	p, ok := r.Resolve(PivotScreen)
	require.True(t, ok)
	assert.Equal(t, cam.Target, p)

	p, ok = r.Resolve(PivotWorld)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, p)

	p, ok = r.Resolve(PivotCursor)
	require.True(t, ok)
	assert.Equal(t, cursor, p)
}

func TestPivotResolverCursorDefaultsToOrigin(t *testing.T) {
	r := &PivotResolver{Camera: viewer.NewCamera()}
	p, ok := r.Resolve(PivotCursor)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{}, p)
}

func TestPivotResolverSelection(t *testing.T) {
	root := scene.NewNode("root")
	a := meshNode("a", mgl64.Vec3{10, 0, 0}, 1)
	root.AddChild(a)

	sel := &fakeSelection{nodes: []*scene.Node{a}}
	r := &PivotResolver{
		Camera:    viewer.NewCamera(),
		Selection: sel,
		Scene:     &fakeScene{roots: []*scene.Node{root}},
	}

	p, ok := r.Resolve(PivotSelection)
	require.True(t, ok)
	assert.InDelta(t, 10, p.X(), 1e-12)
}

func TestPivotResolverSelectionFallback(t *testing.T) {
	root := scene.NewNode("root")
	visible := meshNode("visible", mgl64.Vec3{4, 0, 0}, 1)
	root.AddChild(visible)
	hidden := meshNode("hidden", mgl64.Vec3{-20, 0, 0}, 1)
	hidden.Visible = false
	root.AddChild(hidden)

	r := &PivotResolver{
		Camera:    viewer.NewCamera(),
		Selection: &fakeSelection{},
		Scene:     &fakeScene{roots: []*scene.Node{root}},
	}

	// Empty selection falls back to the visible-geometry center
	p, ok := r.Resolve(PivotSelection)
	require.True(t, ok)
	assert.InDelta(t, 4, p.X(), 1e-12)
}

func TestPivotResolverStaleSelection(t *testing.T) {
	root := scene.NewNode("root")
	stale := meshNode("stale", mgl64.Vec3{50, 0, 0}, 1)
	root.AddChild(stale)
	root.Remove(stale)

	keep := meshNode("keep", mgl64.Vec3{2, 0, 0}, 1)
	root.AddChild(keep)

	r := &PivotResolver{
		Camera:    viewer.NewCamera(),
		Selection: &fakeSelection{nodes: []*scene.Node{stale}},
		Scene:     &fakeScene{roots: []*scene.Node{root}},
	}

	p, ok := r.Resolve(PivotSelection)
	require.True(t, ok)
	assert.InDelta(t, 2, p.X(), 1e-12)
}

func TestPivotResolverEmptyScene(t *testing.T) {
	r := &PivotResolver{
		Camera:    viewer.NewCamera(),
		Selection: &fakeSelection{},
		Scene:     &fakeScene{},
	}
	_, ok := r.Resolve(PivotSelection)
	assert.False(t, ok)
}
