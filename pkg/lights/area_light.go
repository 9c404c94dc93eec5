package lights

import (
	"math"

	"github.com/df07/go-shading-core/pkg/core"
)

// AreaLight is a one-sided rectangular emitter centered at Position.
// Right and Up are half extents, so the rectangle spans Position ± Right ± Up
// and Forward is the side it emits toward.
type AreaLight struct {
	Position core.Vec3
	Forward  core.Vec3
	Right    core.Vec3
	Up       core.Vec3
	Color    core.Vec3
}

func (AreaLight) Kind() Kind { return KindArea }
func (AreaLight) isLight()   {}

// Record converts the light back to its flat form
func (l AreaLight) Record() Record {
	return NewAreaLight(l.Position, l.Forward, l.Right, l.Up, l.Color)
}

// Area returns the emitting surface area, 4·|Right × Up|
func (l AreaLight) Area() float64 {
	return 4 * l.Right.Cross(l.Up).Length()
}

// Normal returns the unit emission normal. A degenerate Forward falls back to
// the rectangle's own orientation, then to +Z.
func (l AreaLight) Normal() core.Vec3 {
	fallback := l.Right.Cross(l.Up).NormalizeOr(core.NewVec3(0, 0, 1))
	return l.Forward.NormalizeOr(fallback)
}

// Validate reports whether the rectangle has a usable extent
func (l AreaLight) Validate() error {
	if l.Area() < core.DegenerateLength {
		return ErrDegenerateLight
	}
	return nil
}

// SampleAreaLight samples a point on the light uniformly by area and returns
// the direction from position toward it, the distance, and the radiance
// contribution already divided by the sampling pdf:
//
//	color = light.Color · cosAtLight · area / distance²
//
// u is remapped from [0,1)² to [-1,1)² over the half extents. Points behind or
// coplanar with the light face, a zero distance and a zero-area light all
// yield a zero color. Visibility is the caller's concern.
func SampleAreaLight(light AreaLight, u core.Vec2, position core.Vec3) LightSample {
	normal := light.Normal()
	point := light.Position.
		Add(light.Right.Multiply(2*u.X - 1)).
		Add(light.Up.Multiply(2*u.Y - 1))

	toLight := point.Subtract(position)
	distance := toLight.Length()
	if distance < core.DegenerateLength || math.IsNaN(distance) {
		// Shading point lies on the light; there is no meaningful direction
		return LightSample{Point: point, Direction: normal.Negate()}
	}
	direction := toLight.Multiply(1 / distance)

	sample := LightSample{Point: point, Direction: direction, Distance: distance}

	cosAtLight := direction.Negate().Dot(normal)
	area := light.Area()
	if cosAtLight <= 0 || area < core.DegenerateLength {
		return sample
	}

	distanceSquared := distance * distance
	sample.Color = light.Color.Multiply(cosAtLight * area / distanceSquared)
	sample.PDF = distanceSquared / (cosAtLight * area)
	return sample
}
