package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
	"github.com/df07/go-shading-core/pkg/scene"
)

// rayEpsilon keeps secondary and shadow rays from re-hitting their origin surface
const rayEpsilon = 1e-4

// PathTracingIntegrator implements unidirectional path tracing with one
// light sample and one cosine-weighted bounce per surface interaction
type PathTracingIntegrator struct {
	scene      *scene.Scene
	maxBounces int
}

// NewPathTracingIntegrator creates a path tracer over s. A non-positive
// maxBounces selects DefaultMaxBounces; values above MaxSupportedBounces are
// clamped to it.
func NewPathTracingIntegrator(s *scene.Scene, maxBounces int) *PathTracingIntegrator {
	if maxBounces <= 0 {
		maxBounces = DefaultMaxBounces
	}
	maxBounces = min(maxBounces, MaxSupportedBounces)
	return &PathTracingIntegrator{scene: s, maxBounces: maxBounces}
}

// MaxBounces returns the number of surface interactions traced per path
func (pt *PathTracingIntegrator) MaxBounces() int {
	return pt.maxBounces
}

// SamplePixel jitters a camera ray inside the pixel and traces it
func (pt *PathTracingIntegrator) SamplePixel(u scene.Uniforms, x, y int, sampleIndex uint32) core.Vec3 {
	sampler := core.NewHaltonSampler(sampleIndex, DimensionPixelJitter)
	ray := u.PrimaryRay(x, y, sampler.Get2D())
	return pt.RayColor(ray, sampler)
}

// RayColor computes the radiance arriving along a camera ray. The sampler's
// index selects the path; its dimension cursor is repositioned per bounce.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sampler *core.HaltonSampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	rayMask := geometry.RayMaskPrimary

	for bounce := 0; bounce < pt.maxBounces; bounce++ {
		hit, isHit := pt.scene.Intersect(ray, rayMask)
		if !isHit {
			break
		}

		resource := pt.scene.Resources.Lookup(hit.InstanceID, hit.GeometryID)
		mat := resource.Material
		position := hit.WorldSpaceIntersectionPoint

		normal := geometry.InterpolateVertexAttribute(resource.Normals, hit, resource.Indices).
			NormalizeOr(ray.Direction.Negate())
		frontFace := normal.Dot(ray.Direction) < 0
		if !frontFace {
			normal = normal.Negate()
		}

		// Light geometry is only visible to camera rays; later bounces reach
		// emitters through explicit light sampling instead
		if bounce == 0 && frontFace && mat.IsEmissive() {
			radiance = radiance.Add(throughput.MultiplyVec(mat.Emission))
		}

		base := BounceDimension(bounce)
		direct := pt.directLighting(position, normal, mat, base, sampler)
		radiance = radiance.Add(throughput.MultiplyVec(direct))

		// Lambertian bounce: brdf·cos/pdf reduces to the base color
		throughput = throughput.MultiplyVec(mat.BaseColor)
		if throughput.IsZero() {
			break
		}

		sampler.SetDimension(base + OffsetHemisphere)
		direction := core.AlignHemisphereWithNormal(core.SampleCosineHemisphere(sampler.Get2D()), normal)
		ray = core.NewRaySegment(position, direction, rayEpsilon, math.Inf(1))
		rayMask = geometry.RayMaskSecondary
	}

	return radiance
}

// directLighting picks one light uniformly and returns its unoccluded
// contribution through the Lambertian BRDF, scaled by the light count
func (pt *PathTracingIntegrator) directLighting(position, normal core.Vec3, mat *material.Material, base int, sampler *core.HaltonSampler) core.Vec3 {
	sceneLights := pt.scene.Lights
	if len(sceneLights) == 0 || mat.BaseColor.IsZero() {
		return core.Vec3{}
	}

	sampler.SetDimension(base + OffsetLightSelection)
	index := min(int(sampler.Get1D()*float64(len(sceneLights))), len(sceneLights)-1)

	sampler.SetDimension(base + OffsetLightSurface)
	sample := SampleLight(sceneLights[index], sampler.Get2D(), position)
	if sample.IsBlack() {
		return core.Vec3{}
	}

	cosine := sample.Direction.Dot(normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	shadowRay := core.NewRaySegment(position, sample.Direction, rayEpsilon, sample.Distance-rayEpsilon)
	if pt.scene.Occluded(shadowRay) {
		return core.Vec3{}
	}

	brdf := mat.EvaluateBRDF(sample.Direction, normal)
	return brdf.MultiplyVec(sample.Color).Multiply(cosine * float64(len(sceneLights)))
}

// SampleLight evaluates one light from position. u is consumed only by area
// lights. Unused slots contribute nothing.
func SampleLight(light lights.Light, u core.Vec2, position core.Vec3) lights.LightSample {
	switch l := light.(type) {
	case lights.AreaLight:
		return lights.SampleAreaLight(l, u, position)
	case lights.PointLight:
		return lights.SamplePointLight(l, position)
	case lights.SpotLight:
		return lights.SampleSpotLight(l, position)
	case lights.SunLight:
		return lights.SampleSunLight(l)
	case lights.UnusedLight:
		return lights.LightSample{}
	default:
		panic(fmt.Sprintf("integrator: unhandled light type %T", light))
	}
}
