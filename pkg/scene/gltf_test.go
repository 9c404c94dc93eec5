package scene

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
)

// writeTestGLB saves a single upward-facing triangle, without normals, on a
// node lifted to y=2, and returns the file path
func writeTestGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()

	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}})
	indices := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:           "glow",
		EmissiveFactor: [3]float64{0.5, 0.25, 0},
	})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{"POSITION": positions},
			Material:   gltf.Index(0),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "lifted",
		Mesh:        gltf.Index(0),
		Translation: [3]float64{0, 2, 0},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "triangle.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary() error: %v", err)
	}
	return path
}

func TestLoadGLTFInstances(t *testing.T) {
	instances, err := LoadGLTFInstances(writeTestGLB(t))
	if err != nil {
		t.Fatalf("LoadGLTFInstances() error: %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(instances))
	}

	mesh := instances[0].Mesh
	if mesh.TriangleCount() != 1 || len(mesh.Submeshes) != 1 {
		t.Fatalf("unexpected mesh layout: %+v", mesh)
	}
	for i, n := range mesh.Normals {
		if n.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-6 {
			t.Errorf("computed normal %d = %v, expected +Y", i, n)
		}
	}
	if emission := mesh.Submeshes[0].Material.Emission; math.Abs(emission.X-0.5) > 1e-9 || math.Abs(emission.Y-0.25) > 1e-9 {
		t.Errorf("Emission = %v, expected (0.5, 0.25, 0)", emission)
	}

	lifted := transformPoint(instances[0].Transform, core.NewVec3(0, 0, 0))
	if lifted.Subtract(core.NewVec3(0, 2, 0)).Length() > 1e-6 {
		t.Errorf("node transform moved origin to %v, expected (0,2,0)", lifted)
	}
}

func TestLoadGLTF_Intersect(t *testing.T) {
	s, err := LoadGLTF(writeTestGLB(t))
	if err != nil {
		t.Fatalf("LoadGLTF() error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.2, 5, -0.2), core.NewVec3(0, -1, 0))
	hit, ok := s.Intersect(ray, geometry.RayMaskSecondary)
	if !ok {
		t.Fatal("expected the ray to hit the loaded triangle")
	}
	if math.Abs(hit.Distance-3) > 1e-5 || hit.InstanceID != 0 {
		t.Errorf("hit %+v, expected instance 0 at distance 3", hit)
	}
}

func TestLoadGLTF_MissingFile(t *testing.T) {
	if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadGLTF_NoMeshes(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "empty"})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	path := filepath.Join(t.TempDir(), "empty.gltf")
	if err := gltf.Save(doc, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := LoadGLTFInstances(path); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("LoadGLTFInstances() error = %v, expected %v", err, ErrNoGeometry)
	}
}
