package core

import (
	"math"
	"math/rand"
	"testing"
)

func checkOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	const tolerance = 1e-9

	for name, v := range map[string]Vec3{"tangent": f.Tangent, "bitangent": f.Bitangent, "normal": f.Normal} {
		if math.Abs(v.Length()-1) > tolerance {
			t.Errorf("%s length %v, expected 1", name, v.Length())
		}
	}
	if math.Abs(f.Tangent.Dot(f.Bitangent)) > tolerance ||
		math.Abs(f.Tangent.Dot(f.Normal)) > tolerance ||
		math.Abs(f.Bitangent.Dot(f.Normal)) > tolerance {
		t.Errorf("basis not orthogonal: %+v", f)
	}
	if f.Tangent.Cross(f.Bitangent).Subtract(f.Normal).Length() > tolerance {
		t.Errorf("basis not right-handed: T x B = %v, N = %v", f.Tangent.Cross(f.Bitangent), f.Normal)
	}
}

func TestNewFrame_Orthonormal(t *testing.T) {
	tests := []struct {
		name   string
		normal Vec3
	}{
		{"+Z", NewVec3(0, 0, 1)},
		{"-Z", NewVec3(0, 0, -1)},
		{"+X", NewVec3(1, 0, 0)},
		{"-X", NewVec3(-1, 0, 0)},
		{"+Y", NewVec3(0, 1, 0)},
		{"-Y", NewVec3(0, -1, 0)},
		{"near +Z", NewVec3(1e-9, -1e-9, 1).Normalize()},
		{"near +X", NewVec3(1, 1e-12, 0).Normalize()},
		{"near -Y", NewVec3(1e-7, -1, 1e-7).Normalize()},
		{"diagonal", NewVec3(1, 1, 1).Normalize()},
		{"unnormalized input", NewVec3(0, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.normal)
			checkOrthonormal(t, f)
			if f.Normal.Subtract(tt.normal.Normalize()).Length() > 1e-9 {
				t.Errorf("Normal axis %v, expected %v", f.Normal, tt.normal.Normalize())
			}
		})
	}
}

func TestNewFrame_DegenerateNormalFallsBack(t *testing.T) {
	for _, n := range []Vec3{{}, NewVec3(1e-15, 0, 0), NewVec3(math.NaN(), 0, 0)} {
		f := NewFrame(n)
		checkOrthonormal(t, f)
		if f.Normal != NewVec3(0, 0, 1) {
			t.Errorf("normal %v: expected +Z fallback, got %v", n, f.Normal)
		}
	}
}

func TestAlignHemisphereWithNormal_PreservesAngle(t *testing.T) {
	const tolerance = 1e-9
	random := rand.New(rand.NewSource(42))
	sampler := NewRandomSampler(random)

	normals := []Vec3{
		NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0),
		NewVec3(0, 0, -1), NewVec3(-1, 0, 0), NewVec3(0, -1, 0),
		NewVec3(1e-10, 1, 0).Normalize(),
	}
	for i := 0; i < 50; i++ {
		normals = append(normals, SampleOnUnitSphere(sampler.Get2D()))
	}

	for _, n := range normals {
		for i := 0; i < 20; i++ {
			sample := SampleCosineHemisphere(sampler.Get2D())
			world := AlignHemisphereWithNormal(sample, n)

			if math.Abs(world.Length()-1) > tolerance {
				t.Fatalf("normal %v: aligned length %v", n, world.Length())
			}
			if world.Dot(n) < sample.Z-tolerance {
				t.Fatalf("normal %v: dot %v smaller than local cos %v", n, world.Dot(n), sample.Z)
			}
		}
	}
}

func TestFrame_ToLocalInvertsToWorld(t *testing.T) {
	const tolerance = 1e-9
	f := NewFrame(NewVec3(0.2, -0.7, 0.4))
	v := NewVec3(0.3, -0.5, 0.8)

	back := f.ToLocal(f.ToWorld(v))
	if back.Subtract(v).Length() > tolerance {
		t.Errorf("round trip %v, expected %v", back, v)
	}
}

func TestAlignHemisphereWithNormal_PoleMapsToNormal(t *testing.T) {
	n := NewVec3(-2, 1, 0.5)
	got := AlignHemisphereWithNormal(NewVec3(0, 0, 1), n)
	if got.Subtract(n.Normalize()).Length() > 1e-12 {
		t.Errorf("pole mapped to %v, expected %v", got, n.Normalize())
	}
}
