package material

import (
	"math"
	"testing"

	"github.com/df07/go-shading-core/pkg/core"
)

func TestMaterial_EvaluateBRDF(t *testing.T) {
	const tolerance = 1e-12

	albedo := core.NewVec3(0.5, 0.25, 1.0)
	m := NewDiffuse(albedo)
	normal := core.NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		toLight  core.Vec3
		expected core.Vec3
	}{
		{"above surface", core.NewVec3(0, 1, 0), albedo.Multiply(1 / math.Pi)},
		{"grazing", core.NewVec3(1, 0, 0), core.Vec3{}},
		{"below surface", core.NewVec3(0, -1, 0), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.EvaluateBRDF(tt.toLight, normal)
			if got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("EvaluateBRDF = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMaterial_IsEmissive(t *testing.T) {
	if NewDiffuse(core.NewVec3(1, 1, 1)).IsEmissive() {
		t.Error("Diffuse material should not be emissive")
	}
	emissive := NewEmissive(core.NewVec3(0, 0, 4))
	if !emissive.IsEmissive() {
		t.Error("Emissive material should be emissive")
	}
	if emissive.BaseColor != (core.Vec3{}) {
		t.Errorf("Emissive material should not reflect, got %v", emissive.BaseColor)
	}
}

func TestMaterial_Sanitized(t *testing.T) {
	m := Material{
		BaseColor:        core.NewVec3(1.5, -0.2, 0.5),
		Emission:         core.NewVec3(-1, 3, 0),
		SpecularExponent: -4,
		RefractionIndex:  0,
		Dissolve:         2,
	}.Sanitized()

	if m.BaseColor != core.NewVec3(1, 0, 0.5) {
		t.Errorf("BaseColor not clamped: %v", m.BaseColor)
	}
	if m.Emission != core.NewVec3(0, 3, 0) {
		t.Errorf("Emission not clamped: %v", m.Emission)
	}
	if m.SpecularExponent != 0 || m.RefractionIndex != 1 || m.Dissolve != 1 {
		t.Errorf("scalar fields not sanitized: %+v", m)
	}
}

// Specular fields are carried on the record but shading is purely diffuse
func TestMaterial_EvaluateBRDFIgnoresSpecular(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	toLight := core.NewVec3(0.3, 0.8, 0.1).Normalize()

	diffuse := NewDiffuse(core.NewVec3(0.5, 0.4, 0.3))
	glossy := *diffuse
	glossy.Specular = core.NewVec3(0.7, 0.7, 0.7)
	glossy.SpecularExponent = 129

	if got, want := glossy.EvaluateBRDF(toLight, normal), diffuse.EvaluateBRDF(toLight, normal); got != want {
		t.Errorf("EvaluateBRDF with specular = %v, expected the diffuse value %v", got, want)
	}
}
