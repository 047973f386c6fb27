package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const asciiTwoSolids = `solid base
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid base
solid lid
  facet normal 0 0 0
    outer loop
      vertex 0 0 2
      vertex 1 0 2
      vertex 0 1 2
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 2
      vertex 0 1 2
      vertex 1 1 2
    endloop
  endfacet
endsolid lid
`

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseASCIIMultiSolid(t *testing.T) {
	path := writeTemp(t, "part.stl", []byte(asciiTwoSolids))

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if model.Name != "part" {
		t.Errorf("expected model name 'part', got %q", model.Name)
	}
	if len(model.Solids) != 2 {
		t.Fatalf("expected 2 solids, got %d", len(model.Solids))
	}
	if model.Solids[0].Name != "base" || model.Solids[1].Name != "lid" {
		t.Errorf("unexpected solid names: %q, %q", model.Solids[0].Name, model.Solids[1].Name)
	}
	if model.TriangleCount() != 3 {
		t.Errorf("expected 3 triangles, got %d", model.TriangleCount())
	}

	box, ok := model.BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	if box.Min.Z() != 0 || box.Max.Z() != 2 {
		t.Errorf("unexpected z extent: %v to %v", box.Min.Z(), box.Max.Z())
	}
}

func TestParseASCIIRecomputesZeroNormal(t *testing.T) {
	path := writeTemp(t, "part.stl", []byte(asciiTwoSolids))
	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The first lid facet declares a zero normal, it must be rebuilt from
	// the counter-clockwise winding
	n := model.Solids[1].Triangles[0].Normal
	if math.Abs(n.Z()-1) > 1e-9 {
		t.Errorf("expected recomputed normal +Z, got %v", n)
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "bracket")
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	// normal, 3 vertices, attribute count
	for _, f := range []float32{0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0} {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	path := writeTemp(t, "part.stl", buf.Bytes())
	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Solids) != 1 {
		t.Fatalf("expected 1 solid, got %d", len(model.Solids))
	}
	if model.Solids[0].Name != "bracket" {
		t.Errorf("expected header name 'bracket', got %q", model.Solids[0].Name)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("expected 1 triangle, got %d", model.TriangleCount())
	}

	tri := model.Solids[0].Triangles[0]
	if tri.V2.X() != 2 || tri.V3.Y() != 2 {
		t.Errorf("unexpected vertices: %v %v %v", tri.V1, tri.V2, tri.V3)
	}
	if area := model.SurfaceArea(); math.Abs(area-2) > 1e-9 {
		t.Errorf("expected surface area 2, got %v", area)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse("/does/not/exist.stl"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestModelNode(t *testing.T) {
	path := writeTemp(t, "housing.stl", []byte(asciiTwoSolids))
	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root := model.Node()
	if root.Name != "housing" {
		t.Errorf("expected root name 'housing', got %q", root.Name)
	}
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 child nodes, got %d", len(children))
	}
	if children[0].Mesh == nil || len(children[0].Mesh.Triangles) != 1 {
		t.Error("first child should carry the base mesh")
	}
	if children[1].Name != "lid" {
		t.Errorf("expected child 'lid', got %q", children[1].Name)
	}

	bounds, ok := children[1].WorldBounds()
	if !ok {
		t.Fatal("expected world bounds for the lid")
	}
	if bounds.Min.Z() != 2 || bounds.Max.Z() != 2 {
		t.Errorf("unexpected lid bounds: %+v", bounds)
	}
}
