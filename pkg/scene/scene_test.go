package scene

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
)

func TestBuiltin_AllScenesBuild(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", name, err)
			}
			if s.TriangleCount() == 0 {
				t.Error("scene has no triangles")
			}
			if len(s.Lights) == 0 {
				t.Error("scene has no lights")
			}
			checkResourceConsistency(t, s)
		})
	}
}

func TestBuiltin_Unknown(t *testing.T) {
	_, err := Builtin("no-such-scene")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Builtin() error = %v, expected %v", err, ErrUnknownScene)
	}
}

func TestDefaultScene_Lights(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene() error: %v", err)
	}
	if len(s.Lights) != 2 || s.Lights[0].Kind() != lights.KindArea || s.Lights[1].Kind() != lights.KindSpot {
		t.Fatalf("unexpected light set: %v", s.Lights)
	}
	area := s.Lights[0].(lights.AreaLight)
	if math.Abs(area.Area()-0.25) > 1e-12 {
		t.Errorf("ceiling light area = %f, expected 0.25", area.Area())
	}
}

// checkResourceConsistency verifies that interpolating the bound index buffer
// at a triangle's corners reproduces the triangle the BVH was built from
func checkResourceConsistency(t *testing.T, s *Scene) {
	t.Helper()
	const tolerance = 1e-4 // Positions pass through float32 matrices

	for i, tri := range s.BVH.Triangles {
		r := s.Resources.Lookup(tri.InstanceID, tri.GeometryID)
		if r.Material == nil {
			t.Fatalf("triangle %d: slot (%d, %d) has no material", i, tri.InstanceID, tri.GeometryID)
		}
		inst := s.Instances[tri.InstanceID]
		positions := make([]core.Vec3, len(inst.Mesh.Positions))
		for j, p := range inst.Mesh.Positions {
			positions[j] = transformPoint(inst.Transform, p)
		}

		corners := []struct {
			uv       core.Vec2
			expected core.Vec3
		}{
			{core.NewVec2(0, 0), tri.V0},
			{core.NewVec2(1, 0), tri.V1},
			{core.NewVec2(0, 1), tri.V2},
		}
		for _, c := range corners {
			hit := geometry.Intersection{PrimitiveID: tri.PrimitiveID, Coordinates: c.uv}
			got := geometry.InterpolateVertexAttribute(positions, hit, r.Indices)
			if got.Subtract(c.expected).Length() > tolerance {
				t.Fatalf("triangle %d corner %v: interpolated %v, expected %v", i, c.uv, got, c.expected)
			}
			n := geometry.InterpolateVertexAttribute(r.Normals, hit, r.Indices)
			if math.Abs(n.Length()-1) > tolerance {
				t.Fatalf("triangle %d: vertex normal %v is not unit length", i, n)
			}
		}
	}
}

func TestNew_Errors(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(1, 1, 1))
	plane := Instance{Mesh: NewPlaneMesh(white), Transform: mgl32.Ident4(), Mask: geometry.MaskTriangle}

	tests := []struct {
		name      string
		instances []Instance
		lights    []lights.Record
		expected  error
	}{
		{"no instances", nil, nil, ErrNoGeometry},
		{"unsupported light", []Instance{plane}, []lights.Record{{Type: 99}}, lights.ErrUnsupportedType},
		{
			"degenerate area light",
			[]Instance{plane},
			[]lights.Record{lights.NewAreaLight(core.Vec3{}, core.NewVec3(0, -1, 0), core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1))},
			lights.ErrDegenerateLight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, DefaultCameraRig(), tt.instances, tt.lights)
			if !errors.Is(err, tt.expected) {
				t.Errorf("New() error = %v, expected %v", err, tt.expected)
			}
		})
	}

	broken := &Mesh{Name: "broken", Positions: []core.Vec3{{}}, Normals: []core.Vec3{{}},
		Submeshes: []Submesh{{Indices: []uint32{0, 0, 5}, Material: white}}}
	if _, err := New("broken", DefaultCameraRig(), []Instance{{Mesh: broken, Transform: mgl32.Ident4()}}, nil); err == nil {
		t.Error("expected an error for out of range indices")
	}
}

func TestScene_IntersectForms(t *testing.T) {
	s, err := NewCornellScene()
	if err != nil {
		t.Fatalf("NewCornellScene() error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.1, 1.3, 3), core.NewVec3(0, 0, -1))
	software, ok := s.Intersect(ray, geometry.RayMaskPrimary)
	if !ok {
		t.Fatal("expected a hit")
	}
	hardware := s.IntersectHardware(ray, geometry.RayMaskPrimary)
	if !hardware.Hit() || hardware != software.ToHardware() {
		t.Errorf("hardware %+v does not match software %+v", hardware, software)
	}

	miss := s.IntersectHardware(core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, 0, 1)), geometry.RayMaskPrimary)
	if miss.Hit() {
		t.Errorf("ray out of the open front should miss, got %+v", miss)
	}
}

func TestScene_LightGeometryMasks(t *testing.T) {
	s, err := NewCornellScene()
	if err != nil {
		t.Fatalf("NewCornellScene() error: %v", err)
	}
	up := core.NewRay(core.NewVec3(0.05, 1, 0.1), core.NewVec3(0, 1, 0))

	hit, ok := s.Intersect(up, geometry.RayMaskPrimary)
	if !ok {
		t.Fatal("expected primary hit")
	}
	if !s.Resources.Lookup(hit.InstanceID, hit.GeometryID).Material.IsEmissive() {
		t.Error("primary ray should see the emissive light quad")
	}
	hit, ok = s.Intersect(up, geometry.RayMaskSecondary)
	if !ok || math.Abs(hit.Distance-1) > 1e-4 {
		t.Errorf("secondary ray should pass the light and hit the ceiling at 1, got %+v", hit)
	}

	toLight := core.NewRaySegment(core.NewVec3(0.05, 0.001, 0.1), core.NewVec3(0, 1, 0), 1e-3, 1.97)
	if s.Occluded(toLight) {
		t.Error("shadow ray from floor to light should be unoccluded")
	}
}

func TestScene_WriteTables(t *testing.T) {
	s, err := NewShowcaseScene()
	if err != nil {
		t.Fatalf("NewShowcaseScene() error: %v", err)
	}
	var buf bytes.Buffer
	s.WriteStats(&buf)
	if !strings.Contains(buf.String(), "TOTAL") || !strings.Contains(buf.String(), "sphere") {
		t.Errorf("stats table missing expected content:\n%s", buf.String())
	}

	buf.Reset()
	s.WriteLights(&buf)
	for _, kind := range []string{"area", "spot", "sun", "point", "unused"} {
		if !strings.Contains(buf.String(), kind) {
			t.Errorf("light table missing %q:\n%s", kind, buf.String())
		}
	}
}

func TestUnlitEmitters(t *testing.T) {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	glow := material.NewEmissive(core.NewVec3(2, 2, 2))

	record := ceilingAreaLight()
	instances := []Instance{
		{Mesh: NewPlaneMesh(white), Transform: mgl32.Ident4(), Mask: geometry.MaskTriangle},
		{Mesh: NewQuadMesh("panel", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), glow),
			Transform: mgl32.Ident4(), Mask: geometry.MaskTriangle},
		lightInstance(record),
	}

	got := unlitEmitters(instances)
	if len(got) != 1 || !strings.Contains(got[0], "instance 1 (panel)") {
		t.Errorf("unlitEmitters() = %v, expected only the panel", got)
	}

	// The emitter still builds into a valid scene
	if _, err := New("glow", DefaultCameraRig(), instances, []lights.Record{record}); err != nil {
		t.Errorf("New() error: %v", err)
	}
}
