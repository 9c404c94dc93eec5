package geometry

import (
	"github.com/df07/go-shading-core/pkg/core"
)

// Triangle is a world-space triangle tagged with the ids a hit reports.
// V0, V1 and V2 are the vertices at index slots 0, 1 and 2 of the primitive.
type Triangle struct {
	V0, V1, V2  core.Vec3
	InstanceID  int
	GeometryID  int
	PrimitiveID int
	Mask        Mask
	bbox        core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, instanceID, geometryID, primitiveID int, mask Mask) Triangle {
	return Triangle{
		V0:          v0,
		V1:          v1,
		V2:          v2,
		InstanceID:  instanceID,
		GeometryID:  geometryID,
		PrimitiveID: primitiveID,
		Mask:        mask,
		bbox:        core.NewAABBFromPoints(v0, v1, v2),
	}
}

// GeometricNormal returns the unit normal of the triangle plane, (V1-V0)×(V2-V0)
func (t *Triangle) GeometricNormal() core.Vec3 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).NormalizeOr(core.NewVec3(0, 0, 1))
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// The returned barycentrics weight V1 by u and V2 by v.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (Intersection, bool) {
	const epsilon = 1e-12

	// Calculate two edge vectors
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Calculate determinant
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Intersection{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Intersection{}, false
	}

	distance := f * edge2.Dot(q)
	if distance < tMin || distance > tMax {
		return Intersection{}, false
	}

	return Intersection{
		Distance:                    distance,
		InstanceID:                  t.InstanceID,
		GeometryID:                  t.GeometryID,
		PrimitiveID:                 t.PrimitiveID,
		Coordinates:                 core.NewVec2(u, v),
		WorldSpaceIntersectionPoint: ray.At(distance),
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
