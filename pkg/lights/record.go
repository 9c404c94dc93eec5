package lights

import (
	"fmt"

	"github.com/df07/go-shading-core/pkg/core"
)

// Record is the flat tagged light layout shared with the scene buffers.
// Which fields are meaningful depends on Type:
//
//   - area:  Position, Color, Forward, Right, Up
//   - spot:  Position, Color, Direction, ConeAngle
//   - point: Position, Color
//   - sun:   Color, Direction
//
// Shading code never reads a Record directly; Decode it into a Light first.
type Record struct {
	Type      Kind
	Position  core.Vec3
	Color     core.Vec3
	Forward   core.Vec3 // Emitting side normal of an area light
	Right     core.Vec3 // Half extent of an area light along its first axis
	Up        core.Vec3 // Half extent of an area light along its second axis
	ConeAngle float64   // Spotlight cone half angle in radians
	Direction core.Vec3 // Spotlight axis or sunlight travel direction
}

// NewAreaLight describes a rectangular light centered at position spanning ±right and ±up
func NewAreaLight(position, forward, right, up, color core.Vec3) Record {
	return Record{Type: KindArea, Position: position, Forward: forward, Right: right, Up: up, Color: color}
}

// NewSunLight describes a directional light travelling along direction
func NewSunLight(direction, color core.Vec3) Record {
	return Record{Type: KindSun, Direction: direction, Color: color}
}

// NewPointLight describes an isotropic point light
func NewPointLight(position, color core.Vec3) Record {
	return Record{Type: KindPoint, Position: position, Color: color}
}

// NewSpotLight describes a point light restricted to a cone around direction
func NewSpotLight(position, direction core.Vec3, coneAngle float64, color core.Vec3) Record {
	return Record{Type: KindSpot, Position: position, Direction: direction, ConeAngle: coneAngle, Color: color}
}

// Decode converts the record into its variant, copying only the active fields
func (r Record) Decode() (Light, error) {
	switch r.Type {
	case KindUnused:
		return UnusedLight{}, nil
	case KindSun:
		return SunLight{Direction: r.Direction, Color: r.Color}, nil
	case KindSpot:
		return SpotLight{Position: r.Position, Direction: r.Direction, ConeAngle: r.ConeAngle, Color: r.Color}, nil
	case KindPoint:
		return PointLight{Position: r.Position, Color: r.Color}, nil
	case KindArea:
		return AreaLight{Position: r.Position, Forward: r.Forward, Right: r.Right, Up: r.Up, Color: r.Color}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, r.Type)
	}
}

// DecodeAll decodes a light buffer, failing on the first unsupported record
func DecodeAll(records []Record) ([]Light, error) {
	decoded := make([]Light, 0, len(records))
	for i, r := range records {
		l, err := r.Decode()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		decoded = append(decoded, l)
	}
	return decoded, nil
}
