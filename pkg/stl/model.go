package stl

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Model is a parsed STL file. ASCII files may contain several solids, each
// becomes its own entry; a binary file always yields exactly one.
type Model struct {
	Name   string
	Solids []Solid
}

// Solid is one named body of triangles
type Solid struct {
	Name      string
	Triangles []scene.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// TriangleCount returns the number of triangles across all solids
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Solids {
		n += len(m.Solids[i].Triangles)
	}
	return n
}

// BoundingBox calculates the bounding box of the entire model. ok is false
// for a model without triangles.
func (m *Model) BoundingBox() (geometry.BoundingBox, bool) {
	var box geometry.BoundingBox
	found := false
	for i := range m.Solids {
		b, ok := m.Solids[i].BoundingBox()
		if !ok {
			continue
		}
		if !found {
			box = b
			found = true
		} else {
			box = box.Union(b)
		}
	}
	return box, found
}

// BoundingBox calculates the bounding box of one solid
func (s *Solid) BoundingBox() (geometry.BoundingBox, bool) {
	if len(s.Triangles) == 0 {
		return geometry.BoundingBox{}, false
	}
	first := s.Triangles[0]
	box := geometry.NewBoundingBox(first.V1, first.V1)
	for _, t := range s.Triangles {
		box = box.ExtendPoint(t.V1).ExtendPoint(t.V2).ExtendPoint(t.V3)
	}
	return box, true
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Solids {
		for _, t := range m.Solids[i].Triangles {
			edge1 := t.V2.Sub(t.V1)
			edge2 := t.V3.Sub(t.V1)
			total += edge1.Cross(edge2).Len() / 2
		}
	}
	return total
}

// Node builds a scene subtree for the model: a group node with one mesh
// child per non-empty solid. Solids keep their file names so the sidebar
// can list and toggle them individually.
func (m *Model) Node() *scene.Node {
	root := scene.NewNode(m.Name)
	for i := range m.Solids {
		s := &m.Solids[i]
		if len(s.Triangles) == 0 {
			continue
		}
		bounds, _ := s.BoundingBox()
		name := s.Name
		if name == "" {
			name = m.Name
		}
		child := scene.NewNode(name)
		child.Mesh = &scene.Mesh{
			Triangles: s.Triangles,
			Bounds:    bounds,
		}
		root.AddChild(child)
	}
	return root
}

// newTriangle builds a face, recomputing the normal from the winding when
// the file carries a zero or degenerate one
func newTriangle(normal, v1, v2, v3 mgl64.Vec3) scene.Triangle {
	if normal.Len() < 1e-9 {
		n := v2.Sub(v1).Cross(v3.Sub(v1))
		if n.Len() > 1e-12 {
			normal = n.Normalize()
		}
	} else {
		normal = normal.Normalize()
	}
	return scene.Triangle{V1: v1, V2: v2, V3: v3, Normal: normal}
}
