package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/scene"
)

// drawWireframe renders the visible meshes as edge cylinders, which read
// better than GL lines and get antialiasing from MSAA
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	thickness := float32(app.Camera.engine.Distance()) * 0.0001 // Constant screen thickness
	segments := int32(8)

	drawnEdges := make(map[string]bool)

	app.Model.root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh == nil {
			return true
		}
		world := n.WorldMatrix()
		for _, triangle := range n.Mesh.Triangles {
			v1 := toRlVector3(world.Mul4x1(triangle.V1.Vec4(1)).Vec3())
			v2 := toRlVector3(world.Mul4x1(triangle.V2.Vec4(1)).Vec3())
			v3 := toRlVector3(world.Mul4x1(triangle.V3.Vec4(1)).Vec3())

			edges := [][2]rl.Vector3{{v1, v2}, {v2, v3}, {v3, v1}}
			for _, edge := range edges {
				edgeKey := fmt.Sprintf("%.6f,%.6f,%.6f-%.6f,%.6f,%.6f",
					edge[0].X, edge[0].Y, edge[0].Z, edge[1].X, edge[1].Y, edge[1].Z)
				if !drawnEdges[edgeKey] {
					drawnEdges[edgeKey] = true
					rl.DrawCylinderEx(edge[0], edge[1], thickness, thickness, segments, wireframeColor)
				}
			}
		}
		return true
	})
}
