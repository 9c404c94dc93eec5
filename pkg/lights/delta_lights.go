package lights

import (
	"math"

	"github.com/df07/go-shading-core/pkg/core"
)

// spotFalloffStart is the fraction of the cone angle lit at full intensity
const spotFalloffStart = 0.8

// PointLight emits uniformly in every direction from Position
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// SpotLight is a point light restricted to a cone of half angle ConeAngle
// (radians) around Direction
type SpotLight struct {
	Position  core.Vec3
	Direction core.Vec3
	ConeAngle float64
	Color     core.Vec3
}

// SunLight is a directional light whose rays travel along Direction
type SunLight struct {
	Direction core.Vec3
	Color     core.Vec3
}

// UnusedLight is an empty slot in the light buffer and never contributes
type UnusedLight struct{}

func (PointLight) Kind() Kind  { return KindPoint }
func (SpotLight) Kind() Kind   { return KindSpot }
func (SunLight) Kind() Kind    { return KindSun }
func (UnusedLight) Kind() Kind { return KindUnused }

func (PointLight) isLight()  {}
func (SpotLight) isLight()   {}
func (SunLight) isLight()    {}
func (UnusedLight) isLight() {}

func (l PointLight) Record() Record { return NewPointLight(l.Position, l.Color) }
func (l SpotLight) Record() Record {
	return NewSpotLight(l.Position, l.Direction, l.ConeAngle, l.Color)
}
func (l SunLight) Record() Record  { return NewSunLight(l.Direction, l.Color) }
func (UnusedLight) Record() Record { return Record{Type: KindUnused} }

// SamplePointLight returns the inverse-square falloff contribution of a point light
func SamplePointLight(light PointLight, position core.Vec3) LightSample {
	return sampleDelta(light.Position, light.Color, position, func(core.Vec3) float64 { return 1 })
}

// SampleSpotLight returns the contribution of a spotlight. Intensity is full
// inside 80% of the cone and falls off with a quartic curve to zero at its edge.
func SampleSpotLight(light SpotLight, position core.Vec3) LightSample {
	axis := light.Direction.NormalizeOr(core.NewVec3(0, -1, 0))
	cosTotalWidth := math.Cos(light.ConeAngle)
	cosFalloffStart := math.Cos(light.ConeAngle * spotFalloffStart)

	return sampleDelta(light.Position, light.Color, position, func(toLight core.Vec3) float64 {
		return spotFalloff(axis.Dot(toLight.Negate()), cosTotalWidth, cosFalloffStart)
	})
}

// SampleSunLight returns the contribution of a directional light. The sample
// has no position and an infinite distance.
func SampleSunLight(light SunLight) LightSample {
	direction := light.Direction.Negate().NormalizeOr(core.NewVec3(0, 1, 0))
	return LightSample{
		Direction: direction,
		Distance:  math.Inf(1),
		Color:     light.Color,
	}
}

func sampleDelta(lightPosition, color, position core.Vec3, attenuation func(toLight core.Vec3) float64) LightSample {
	toLight := lightPosition.Subtract(position)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared < core.DegenerateLength*core.DegenerateLength {
		return LightSample{Point: lightPosition, Direction: core.NewVec3(0, 0, 1)}
	}
	distance := math.Sqrt(distanceSquared)
	direction := toLight.Multiply(1 / distance)

	return LightSample{
		Point:     lightPosition,
		Direction: direction,
		Distance:  distance,
		Color:     color.Multiply(attenuation(direction) / distanceSquared),
	}
}

func spotFalloff(cosAngle, cosTotalWidth, cosFalloffStart float64) float64 {
	if cosAngle < cosTotalWidth {
		return 0
	}
	if cosAngle >= cosFalloffStart {
		return 1
	}
	delta := (cosAngle - cosTotalWidth) / (cosFalloffStart - cosTotalWidth)
	return delta * delta * delta * delta
}
