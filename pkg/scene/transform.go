package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
)

// Transform places a mesh instance in the world: scale, then rotate, then translate
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, composed as Rx·Ry·Rz
	Scale    float32
}

// Matrix returns translation · rotation · scale
func (t Transform) Matrix() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}

// At is shorthand for an unrotated transform
func At(position mgl32.Vec3, scale float32) Transform {
	return Transform{Position: position, Scale: scale}
}

func toVec3(v mgl32.Vec3) core.Vec3 {
	return core.NewVec3(float64(v.X()), float64(v.Y()), float64(v.Z()))
}

func fromVec3(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// transformPoint applies m to a position
func transformPoint(m mgl32.Mat4, p core.Vec3) core.Vec3 {
	return toVec3(m.Mul4x1(fromVec3(p).Vec4(1)).Vec3())
}

// normalMatrix returns the inverse transpose of the upper 3x3 of m
func normalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// transformNormal applies a normal matrix and renormalizes
func transformNormal(n mgl32.Mat3, normal core.Vec3) core.Vec3 {
	return toVec3(n.Mul3x1(fromVec3(normal))).NormalizeOr(normal)
}
