package geometry

import "github.com/df07/go-shading-core/pkg/core"

// IntersectionType tells whether a traversal result hit anything
type IntersectionType uint32

const (
	IntersectionNone IntersectionType = iota
	IntersectionTriangle
)

// TriangleHit is what attribute interpolation needs from a traversal result,
// regardless of which traversal produced it.
type TriangleHit interface {
	// Barycentrics returns (u, v); u weights the triangle's second index slot,
	// v the third and 1-u-v the first.
	Barycentrics() core.Vec2
	PrimitiveIndex() int
}

// HardwareIntersection is the result layout reported by accelerated
// traversal. Instance and geometry identify the resource binding; there is no
// world-space hit point.
type HardwareIntersection struct {
	Type                     IntersectionType
	Distance                 float64
	PrimitiveID              uint32
	InstanceID               uint32
	GeometryID               uint32
	TriangleBarycentricCoord core.Vec2
}

// Barycentrics implements TriangleHit
func (h HardwareIntersection) Barycentrics() core.Vec2 { return h.TriangleBarycentricCoord }

// PrimitiveIndex implements TriangleHit
func (h HardwareIntersection) PrimitiveIndex() int { return int(h.PrimitiveID) }

// Hit returns true if the traversal found a triangle
func (h HardwareIntersection) Hit() bool { return h.Type != IntersectionNone }

// Intersection is the result of the software traversal. It carries the same
// identification as the hardware form plus the world-space hit point.
type Intersection struct {
	Distance                    float64
	InstanceID                  int
	GeometryID                  int
	PrimitiveID                 int
	Coordinates                 core.Vec2
	WorldSpaceIntersectionPoint core.Vec3
}

// Barycentrics implements TriangleHit
func (i Intersection) Barycentrics() core.Vec2 { return i.Coordinates }

// PrimitiveIndex implements TriangleHit
func (i Intersection) PrimitiveIndex() int { return i.PrimitiveID }

// ToHardware converts the intersection to the layout accelerated traversal reports
func (i Intersection) ToHardware() HardwareIntersection {
	return HardwareIntersection{
		Type:                     IntersectionTriangle,
		Distance:                 i.Distance,
		PrimitiveID:              uint32(i.PrimitiveID),
		InstanceID:               uint32(i.InstanceID),
		GeometryID:               uint32(i.GeometryID),
		TriangleBarycentricCoord: i.Coordinates,
	}
}

// FromHardware rebuilds the software form of a hardware hit, recovering the
// hit point from the ray that produced it
func FromHardware(h HardwareIntersection, ray core.Ray) Intersection {
	return Intersection{
		Distance:                    h.Distance,
		InstanceID:                  int(h.InstanceID),
		GeometryID:                  int(h.GeometryID),
		PrimitiveID:                 int(h.PrimitiveID),
		Coordinates:                 h.TriangleBarycentricCoord,
		WorldSpaceIntersectionPoint: ray.At(h.Distance),
	}
}
