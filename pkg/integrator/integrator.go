package integrator

import (
	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/scene"
)

// Halton dimension layout of one camera path. Every consumer of a dimension
// names it here so no two decisions on the same path share a sequence.
const (
	DimensionPixelJitter = 0 // Two dimensions: x and y offset inside the pixel
	FirstBounceDimension = 2
	DimensionsPerBounce  = 5

	// Offsets within a bounce
	OffsetHemisphere     = 0 // Two dimensions: cosine-weighted bounce direction
	OffsetLightSurface   = 2 // Two dimensions: point on the selected area light
	OffsetLightSelection = 4
)

// DefaultMaxBounces is the number of surface interactions traced per path
const DefaultMaxBounces = 3

// MaxSupportedBounces is the longest path whose dimensions all fall below
// core.HaltonDimensions. Past it the bases wrap and later bounces would replay
// the pixel jitter and first-bounce sequences.
const MaxSupportedBounces = (core.HaltonDimensions - FirstBounceDimension) / DimensionsPerBounce

// BounceDimension returns the first Halton dimension used by bounce k (0 = camera hit)
func BounceDimension(bounce int) int {
	return FirstBounceDimension + bounce*DimensionsPerBounce
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// SamplePixel returns one radiance estimate for pixel (x, y) of the frame
	// described by u, drawing every decision from Halton sample sampleIndex
	SamplePixel(u scene.Uniforms, x, y int, sampleIndex uint32) core.Vec3
}
