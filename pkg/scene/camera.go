package scene

import (
	"math"

	"github.com/df07/go-shading-core/pkg/core"
)

// BlockSize is the edge length of the square pixel blocks the renderer dispatches
const BlockSize = 16

// CameraRig is the unscaled camera basis plus its vertical field of view
type CameraRig struct {
	Position    core.Vec3
	Right       core.Vec3
	Up          core.Vec3
	Forward     core.Vec3
	FieldOfView float64 // Vertical, in degrees
}

// DefaultCameraRig looks down -Z from just in front of the default scene
func DefaultCameraRig() CameraRig {
	return CameraRig{
		Position:    core.NewVec3(0, 1, 5.38),
		Right:       core.NewVec3(1, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Forward:     core.NewVec3(0, 0, -1),
		FieldOfView: 45,
	}
}

// Camera is a rig sized to an image: Right and Up span half the image plane
// at unit distance along Forward
type Camera struct {
	Position core.Vec3
	Right    core.Vec3
	Up       core.Vec3
	Forward  core.Vec3
}

// Camera scales the rig's basis to the image plane of a width x height frame
func (r CameraRig) Camera(width, height int) Camera {
	imagePlaneHeight := math.Tan(r.FieldOfView * math.Pi / 180 / 2)
	aspectRatio := float64(width) / float64(height)
	return Camera{
		Position: r.Position,
		Right:    r.Right.Multiply(aspectRatio * imagePlaneHeight),
		Up:       r.Up.Multiply(imagePlaneHeight),
		Forward:  r.Forward,
	}
}

// Ray returns the primary ray through uv, where uv spans [-1,1]² and +v is up
func (c Camera) Ray(uv core.Vec2) core.Ray {
	direction := c.Right.Multiply(uv.X).Add(c.Up.Multiply(uv.Y)).Add(c.Forward).Normalize()
	return core.NewRay(c.Position, direction)
}

// Uniforms are the per-frame parameters every shading invocation reads
type Uniforms struct {
	Width      int
	Height     int
	BlocksWide int
	FrameIndex uint32
	LightCount int
	Camera     Camera
}

// NewUniforms sizes the camera to the frame and computes the block layout
func NewUniforms(rig CameraRig, width, height int, frameIndex uint32, lightCount int) Uniforms {
	return Uniforms{
		Width:      width,
		Height:     height,
		BlocksWide: (width + BlockSize - 1) / BlockSize,
		FrameIndex: frameIndex,
		LightCount: lightCount,
		Camera:     rig.Camera(width, height),
	}
}

// PrimaryRay returns the camera ray through pixel (x, y) offset by jitter in [0,1)².
// Row 0 is the top of the image.
func (u Uniforms) PrimaryRay(x, y int, jitter core.Vec2) core.Ray {
	px := (float64(x) + jitter.X) / float64(u.Width)
	py := (float64(y) + jitter.Y) / float64(u.Height)
	return u.Camera.Ray(core.NewVec2(2*px-1, 1-2*py))
}
