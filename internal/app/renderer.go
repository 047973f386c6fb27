package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/scene"
)

// toRlVector3 converts an engine vector to a raylib one
func toRlVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}

// toRlMatrix converts a column-major mgl64 matrix to a raylib matrix.
// Both layouts store columns first, so the mapping is index for index.
func toRlMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}

// meshToRaylib converts a scene mesh to a Raylib mesh with baked lighting
func meshToRaylib(m *scene.Mesh) rl.Mesh {
	triangleCount := len(m.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := mgl64.Vec3{-0.5, -1.0, -0.5}.Normalize()

	idx := 0
	for _, triangle := range m.Triangles {
		normal := triangle.Normal

		// Diffuse lighting with a 30% ambient floor
		lightIntensity := math.Max(0.3, -normal.Dot(lightDir))
		baseColor := 200.0
		r := uint8(baseColor * lightIntensity * 0.5)
		g := uint8(baseColor * lightIntensity * 0.6)
		b := uint8(baseColor * lightIntensity)

		for _, v := range []mgl64.Vec3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X())
			vertices[idx*3+1] = float32(v.Y())
			vertices[idx*3+2] = float32(v.Z())
			normals[idx*3+0] = float32(normal.X())
			normals[idx*3+1] = float32(normal.Y())
			normals[idx*3+2] = float32(normal.Z())
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// uploadMeshes creates GPU meshes for every mesh node in the tree
func (app *App) uploadMeshes() {
	app.Model.meshes = make(map[*scene.Node]rl.Mesh)
	if app.Model.root == nil {
		return
	}
	app.Model.root.Walk(func(n *scene.Node) bool {
		if n.Mesh != nil && len(n.Mesh.Triangles) > 0 {
			app.Model.meshes[n] = meshToRaylib(n.Mesh)
		}
		return true
	})
}

// unloadMeshes releases the GPU meshes
func (app *App) unloadMeshes() {
	for _, mesh := range app.Model.meshes {
		rl.UnloadMesh(&mesh)
	}
	app.Model.meshes = nil
}

// drawModel renders every visible mesh node with its world transform
func (app *App) drawModel(material rl.Material) {
	if app.Model.root == nil {
		return
	}
	app.Model.root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if mesh, ok := app.Model.meshes[n]; ok {
			rl.DrawMesh(mesh, material, toRlMatrix(n.WorldMatrix()))
		}
		return true
	})
}

// drawSelectionBounds outlines the selected nodes with their world boxes
func (app *App) drawSelectionBounds() {
	for _, n := range app.Selection.nodes {
		if n.Removed() || !n.Visible {
			continue
		}
		bounds, ok := n.WorldBounds()
		if !ok {
			continue
		}
		center := bounds.Center()
		size := bounds.Size()
		rl.DrawCubeWires(toRlVector3(center),
			float32(size.X()), float32(size.Y()), float32(size.Z()),
			rl.NewColor(255, 180, 60, 255))
	}
}
