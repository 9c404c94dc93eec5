package geometry

import (
	"math/rand"
	"testing"

	"github.com/df07/go-shading-core/pkg/core"
)

// Attributes are distinct so any slot mix-up changes the result
var testAttributes = []core.Vec3{
	core.NewVec3(1, 0, 0),
	core.NewVec3(0, 1, 0),
	core.NewVec3(0, 0, 1),
	core.NewVec3(10, 20, 30),
	core.NewVec3(-4, 5, -6),
	core.NewVec3(7, 7, 7),
}

// Primitive 1 stores (i0, i1, i2) = (3, 4, 5)
var testIndices = []uint32{0, 1, 2, 3, 4, 5}

func TestInterpolateVertexAttribute_SlotRotation(t *testing.T) {
	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"u=1 selects slot 1", core.NewVec2(1, 0), testAttributes[4]},
		{"v=1 selects slot 2", core.NewVec2(0, 1), testAttributes[5]},
		{"w=1 selects slot 0", core.NewVec2(0, 0), testAttributes[3]},
	}

	for _, tt := range tests {
		t.Run("software/"+tt.name, func(t *testing.T) {
			hit := Intersection{PrimitiveID: 1, Coordinates: tt.uv}
			if got := InterpolateVertexAttribute(testAttributes, hit, testIndices); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
		t.Run("hardware/"+tt.name, func(t *testing.T) {
			hit := HardwareIntersection{Type: IntersectionTriangle, PrimitiveID: 1, TriangleBarycentricCoord: tt.uv}
			if got := InterpolateVertexAttribute(testAttributes, hit, testIndices); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestInterpolateVertexAttribute_Weights(t *testing.T) {
	const tolerance = 1e-12
	hit := Intersection{PrimitiveID: 0, Coordinates: core.NewVec2(0.2, 0.3)}

	// 0.2·a[1] + 0.3·a[2] + 0.5·a[0]
	expected := core.NewVec3(0.5, 0.2, 0.3)
	got := InterpolateVertexAttribute(testAttributes, hit, testIndices)
	if got.Subtract(expected).Length() > tolerance {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func TestInterpolateVertexAttribute_ConstantIsAffine(t *testing.T) {
	const tolerance = 1e-12
	constant := core.NewVec3(0.3, -2, 5)
	attributes := []core.Vec3{constant, constant, constant, constant}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		u := random.Float64()
		v := random.Float64() * (1 - u)
		hit := Intersection{PrimitiveID: i % 2, Coordinates: core.NewVec2(u, v)}

		got := InterpolateVertexAttribute(attributes, hit, indices)
		if got.Subtract(constant).Length() > tolerance {
			t.Fatalf("(u, v) = (%f, %f): got %v, expected %v", u, v, got, constant)
		}
	}
}

func TestInterpolateVertexAttribute_FormsAgree(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		u := random.Float64()
		v := random.Float64() * (1 - u)
		software := Intersection{
			Distance:    random.Float64(),
			InstanceID:  2,
			GeometryID:  1,
			PrimitiveID: i % 2,
			Coordinates: core.NewVec2(u, v),
		}
		hardware := software.ToHardware()

		a := InterpolateVertexAttribute(testAttributes, software, testIndices)
		b := InterpolateVertexAttribute(testAttributes, hardware, testIndices)
		if a != b {
			t.Fatalf("software %v and hardware %v forms disagree", a, b)
		}
	}
}

func TestInterpolateVertexAttribute_Vec2(t *testing.T) {
	texcoords := []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)}
	hit := Intersection{Coordinates: core.NewVec2(1, 0)}
	if got := InterpolateVertexAttribute(texcoords, hit, []uint32{0, 1, 2}); got != texcoords[1] {
		t.Errorf("got %v, expected %v", got, texcoords[1])
	}
}

func TestInterpolateVertexAttribute_MatchesTriangleHit(t *testing.T) {
	// Interpolating positions with the barycentrics of a hit must reproduce the hit point
	const tolerance = 1e-9
	positions := []core.Vec3{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0.5, -1),
		core.NewVec3(0, 1, 1),
	}
	indices := []uint32{0, 1, 2}
	triangle := NewTriangle(positions[indices[0]], positions[indices[1]], positions[indices[2]], 0, 0, 0, MaskTriangle)

	ray := core.NewRay(core.NewVec3(0.1, 5, 0.2), core.NewVec3(0, -1, 0))
	hit, ok := triangle.Hit(ray, 0, 100)
	if !ok {
		t.Fatal("expected the ray to hit the triangle")
	}
	got := InterpolateVertexAttribute(positions, hit, indices)
	if got.Subtract(hit.WorldSpaceIntersectionPoint).Length() > tolerance {
		t.Errorf("interpolated position %v, hit point %v", got, hit.WorldSpaceIntersectionPoint)
	}
}

func TestIntersection_FromHardware(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	h := HardwareIntersection{
		Type:                     IntersectionTriangle,
		Distance:                 2.5,
		PrimitiveID:              4,
		InstanceID:               1,
		GeometryID:               2,
		TriangleBarycentricCoord: core.NewVec2(0.1, 0.2),
	}

	i := FromHardware(h, ray)
	if i.WorldSpaceIntersectionPoint != core.NewVec3(0, 0, -2.5) {
		t.Errorf("WorldSpaceIntersectionPoint = %v, expected (0,0,-2.5)", i.WorldSpaceIntersectionPoint)
	}
	if i.ToHardware() != h {
		t.Errorf("round trip = %+v, expected %+v", i.ToHardware(), h)
	}
	if (HardwareIntersection{}).Hit() {
		t.Error("zero HardwareIntersection should not report a hit")
	}
}
