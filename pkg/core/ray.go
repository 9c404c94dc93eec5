package core

import "math"

// Ray represents a parametric ray segment origin + t*direction for t in [MinDistance, MaxDistance].
// Direction is not normalized by the ray; callers decide.
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	MinDistance float64
	MaxDistance float64
}

// NewRay creates an unbounded ray starting at t=0
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinDistance: 0, MaxDistance: math.Inf(1)}
}

// NewRaySegment creates a ray bounded to [minDistance, maxDistance]
func NewRaySegment(origin, direction Vec3, minDistance, maxDistance float64) Ray {
	return Ray{Origin: origin, Direction: direction, MinDistance: minDistance, MaxDistance: maxDistance}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
