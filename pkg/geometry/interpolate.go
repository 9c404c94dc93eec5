package geometry

import "fmt"

// Attribute is any per-vertex value that can be blended with scalar weights,
// such as core.Vec3 normals or core.Vec2 texture coordinates
type Attribute[T any] interface {
	Add(T) T
	Multiply(float64) T
}

// InterpolateVertexAttribute blends the three vertex attributes of the hit
// triangle. The index slots are rotated relative to the barycentrics:
//
//	u → indices[3p+1], v → indices[3p+2], 1-u-v → indices[3p+0]
//
// which matches the winding the triangle test reports (u along V1-V0, v along V2-V0).
func InterpolateVertexAttribute[T Attribute[T], H TriangleHit](attributes []T, hit H, indices []uint32) T {
	uv := hit.Barycentrics()
	u, v := uv.X, uv.Y
	w := 1 - u - v

	base := hit.PrimitiveIndex() * 3
	if debugChecks {
		checkTriangleIndices(len(attributes), indices, base)
	}

	a0 := attributes[indices[base+0]]
	a1 := attributes[indices[base+1]]
	a2 := attributes[indices[base+2]]

	return a1.Multiply(u).Add(a2.Multiply(v)).Add(a0.Multiply(w))
}

func checkTriangleIndices(numAttributes int, indices []uint32, base int) {
	if base < 0 || base+2 >= len(indices) {
		panic(fmt.Sprintf("geometry: primitive slot %d out of range for %d indices", base, len(indices)))
	}
	for slot := base; slot < base+3; slot++ {
		if int(indices[slot]) >= numAttributes {
			panic(fmt.Sprintf("geometry: vertex index %d at slot %d out of range for %d attributes",
				indices[slot], slot, numAttributes))
		}
	}
}
