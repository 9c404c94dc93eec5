package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere_UnitAndUpper(t *testing.T) {
	const tolerance = 1e-9

	grid := []float64{0, 1e-9, 0.1, 0.25, 0.5, 0.75, 0.9, oneMinusEpsilon}
	for _, x := range grid {
		for _, y := range grid {
			dir := SampleCosineHemisphere(NewVec2(x, y))
			if math.Abs(dir.Length()-1) > tolerance {
				t.Errorf("u=(%v,%v): length %v, expected 1", x, y, dir.Length())
			}
			if dir.Z < 0 {
				t.Errorf("u=(%v,%v): Z=%v below the hemisphere", x, y, dir.Z)
			}
		}
	}
}

func TestSampleCosineHemisphere_CenterIsPole(t *testing.T) {
	dir := SampleCosineHemisphere(NewVec2(0.5, 0.5))
	if dir != NewVec3(0, 0, 1) {
		t.Errorf("Zero disk sample should map to the pole, got %v", dir)
	}
}

func TestSampleCosineHemisphere_MatchesCosineDensity(t *testing.T) {
	// For pdf cos/pi, E[cos] = 2/3 and E[cos^2] = 1/2
	const samples = 4096
	sumCos, sumCos2 := 0.0, 0.0
	for i := 0; i < samples; i++ {
		dir := SampleCosineHemisphere(NewVec2(Halton(uint32(i), 0), Halton(uint32(i), 1)))
		sumCos += dir.Z
		sumCos2 += dir.Z * dir.Z
	}

	meanCos := sumCos / samples
	meanCos2 := sumCos2 / samples
	if math.Abs(meanCos-2.0/3.0) > 0.01 {
		t.Errorf("E[cos] = %.4f, expected %.4f", meanCos, 2.0/3.0)
	}
	if math.Abs(meanCos2-0.5) > 0.01 {
		t.Errorf("E[cos^2] = %.4f, expected 0.5", meanCos2)
	}
}

func TestCosineHemispherePDF(t *testing.T) {
	tests := []struct {
		name     string
		cosTheta float64
		expected float64
	}{
		{"pole", 1, 1 / math.Pi},
		{"grazing", 0, 0},
		{"below", -0.5, 0},
		{"half", 0.5, 0.5 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineHemispherePDF(tt.cosTheta); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("CosineHemispherePDF(%v) = %v, expected %v", tt.cosTheta, got, tt.expected)
			}
		})
	}
}

func TestSampleCosineHemisphereAround_StaysAboveNormal(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sampler := NewRandomSampler(random)

	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, -1, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.3, 0.2, -0.9).Normalize(),
	}
	for _, n := range normals {
		for i := 0; i < 200; i++ {
			dir := SampleCosineHemisphereAround(n, sampler.Get2D())
			if dir.Dot(n) < -1e-9 {
				t.Fatalf("normal %v: direction %v below surface", n, dir)
			}
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sampler := NewRandomSampler(random)

	if p := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); p != (Vec3{}) {
		t.Errorf("Center sample should map to origin, got %v", p)
	}

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.X*p.X+p.Y*p.Y > 1+1e-12 {
			t.Fatalf("Point %v outside unit disk", p)
		}
		if p.Z != 0 {
			t.Fatalf("Point %v not in the XY plane", p)
		}
	}
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		v := sampler.Get3D()
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0 || c >= 1 {
				t.Fatalf("Sample component %v outside [0,1)", c)
			}
		}
	}
}
