package material

import (
	"math"

	"github.com/df07/go-shading-core/pkg/core"
)

// Material is the per-submesh surface record shared with the shading core.
// It is immutable once the scene is loaded and referenced by pointer, never copied.
type Material struct {
	BaseColor        core.Vec3 // Diffuse reflectance
	Specular         core.Vec3 // Specular reflectance
	Emission         core.Vec3 // Emitted radiance
	SpecularExponent float64   // Phong exponent, >= 0
	RefractionIndex  float64   // Index of refraction
	Dissolve         float64   // Opacity in [0, 1]
}

// Default returns the material used when a mesh carries no material description
func Default() Material {
	return Material{
		BaseColor:       core.NewVec3(0.8, 0.8, 0.8),
		RefractionIndex: 1.0,
		Dissolve:        1.0,
	}
}

// NewDiffuse creates an opaque diffuse material
func NewDiffuse(baseColor core.Vec3) *Material {
	m := Default()
	m.BaseColor = baseColor
	return &m
}

// NewEmissive creates an opaque material that emits radiance and reflects nothing
func NewEmissive(emission core.Vec3) *Material {
	m := Default()
	m.BaseColor = core.Vec3{}
	m.Emission = emission
	return &m
}

// IsEmissive returns true if the material emits any radiance
func (m *Material) IsEmissive() bool {
	return m.Emission.X > 0 || m.Emission.Y > 0 || m.Emission.Z > 0
}

// EvaluateBRDF evaluates the diffuse BRDF (baseColor/π) for a light direction
// relative to the shading normal. Directions below the surface return black.
func (m *Material) EvaluateBRDF(toLight, normal core.Vec3) core.Vec3 {
	if toLight.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	return m.BaseColor.Multiply(1.0 / math.Pi)
}

// Sanitized returns a copy with every field clamped to its valid range
func (m Material) Sanitized() Material {
	m.BaseColor = m.BaseColor.Clamp(0, 1)
	m.Specular = m.Specular.Clamp(0, 1)
	m.Emission = m.Emission.Clamp(0, math.MaxFloat64)
	m.SpecularExponent = math.Max(0, m.SpecularExponent)
	if m.RefractionIndex <= 0 {
		m.RefractionIndex = 1
	}
	m.Dissolve = math.Max(0, math.Min(1, m.Dissolve))
	return m
}
