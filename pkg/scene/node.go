package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
)

// Node is an element of the scene tree. Every node has a local transform;
// leaves may additionally carry a mesh. The parent pointer is a non-owning
// back-reference maintained by AddChild/Remove.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Visible  bool

	Mesh *Mesh

	parent   *Node
	children []*Node
	removed  bool
}

// Mesh is leaf geometry: triangles in local space plus their local bounds
type Mesh struct {
	Triangles []Triangle
	Bounds    geometry.BoundingBox
}

// Triangle is a single mesh face with a face normal
type Triangle struct {
	V1, V2, V3 mgl64.Vec3
	Normal     mgl64.Vec3
}

// NewNode creates a visible node with an identity transform
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// AddChild attaches a child node. A node already parented elsewhere is
// detached first.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	child.removed = false
	n.children = append(n.children, child)
}

// Remove detaches a child node and marks it removed. Controllers holding a
// reference use Removed to detect a stale target.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.removed = true
			return
		}
	}
}

// Parent returns the owning node, or nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The returned slice is owned by the
// node and must not be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// Removed reports whether the node has been detached from its tree
func (n *Node) Removed() bool {
	return n.removed
}

// LocalMatrix returns the node's local transform as translate*rotate*scale
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Mat4()
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node's transform composed with all ancestors
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
}

// WorldRotation returns the accumulated rotation of the node and its
// ancestors. Non-uniform ancestor scale is ignored.
func (n *Node) WorldRotation() mgl64.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q
}

// WorldBounds returns the node's mesh bounds in world space. ok is false
// when the node has no mesh.
func (n *Node) WorldBounds() (geometry.BoundingBox, bool) {
	if n.Mesh == nil {
		return geometry.BoundingBox{}, false
	}
	return n.Mesh.Bounds.Transform(n.WorldMatrix()), true
}

// Walk calls fn for the node and every descendant, depth first. Returning
// false from fn prunes the subtree below that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
