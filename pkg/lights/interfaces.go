package lights

import (
	"fmt"

	"github.com/df07/go-shading-core/pkg/core"
)

// Kind is the tag of the light variant, numbered as in the device light record
type Kind int32

const (
	KindUnused Kind = iota
	KindSun
	KindSpot
	KindPoint
	KindArea
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindUnused:
		return "unused"
	case KindSun:
		return "sun"
	case KindSpot:
		return "spot"
	case KindPoint:
		return "point"
	case KindArea:
		return "area"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// Light is the closed set of light variants: AreaLight, SunLight, SpotLight,
// PointLight and UnusedLight. The unexported marker keeps other packages from
// adding variants, so a type switch over these five is exhaustive.
type Light interface {
	Kind() Kind
	Record() Record
	isLight()
}

// LightSample is the result of sampling a light from a shading point
type LightSample struct {
	Point     core.Vec3 // Sampled point on the light (zero for directional lights)
	Direction core.Vec3 // Unit direction from the shading point toward the light
	Distance  float64   // Distance to Point, +Inf for directional lights
	Color     core.Vec3 // Unoccluded radiance contribution, already divided by the sampling pdf
	PDF       float64   // Solid angle pdf of Direction, 0 for delta lights and zero contributions
}

// IsBlack returns true if the sample carries no radiance
func (s LightSample) IsBlack() bool {
	return s.Color.X <= 0 && s.Color.Y <= 0 && s.Color.Z <= 0
}
