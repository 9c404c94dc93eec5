package core

import "math"

// Frame is a right-handed orthonormal basis with Normal as its third axis.
// Tangent x Bitangent == Normal.
type Frame struct {
	Tangent   Vec3
	Bitangent Vec3
	Normal    Vec3
}

// NewFrame builds a basis around normal. The helper axis is the coordinate axis
// least aligned with normal, so the cross product never collapses. A normal too
// short to normalize is replaced by +Z.
func NewFrame(normal Vec3) Frame {
	n := normal.NormalizeOr(NewVec3(0, 0, 1))

	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var helper Vec3
	switch {
	case ax <= ay && ax <= az:
		helper = NewVec3(1, 0, 0)
	case ay <= az:
		helper = NewVec3(0, 1, 0)
	default:
		helper = NewVec3(0, 0, 1)
	}

	// |helper x n| >= sqrt(2/3) for unit n
	tangent := helper.Cross(n).Normalize()
	bitangent := n.Cross(tangent)

	return Frame{Tangent: tangent, Bitangent: bitangent, Normal: n}
}

// ToWorld transforms a direction from the local frame (+Z pole) into world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.Tangent.Multiply(v.X).Add(f.Bitangent.Multiply(v.Y)).Add(f.Normal.Multiply(v.Z))
}

// ToLocal transforms a world space direction into the local frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return NewVec3(v.Dot(f.Tangent), v.Dot(f.Bitangent), v.Dot(f.Normal))
}

// AlignHemisphereWithNormal rotates a direction sampled around +Z so that +Z maps to normal
func AlignHemisphereWithNormal(sample, normal Vec3) Vec3 {
	return NewFrame(normal).ToWorld(sample)
}
