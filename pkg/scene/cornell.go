package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
)

// NewCornellScene creates a 2x2x2 Cornell box lit by a single ceiling area light
func NewCornellScene() (*Scene, error) {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	room := cornellRoom()

	ceilingLight := ceilingAreaLight()

	instances := []Instance{
		{Mesh: room, Transform: mgl32.Ident4(), Mask: geometry.MaskTriangle},
		{
			Mesh: NewBoxMesh(white),
			Transform: Transform{
				Position: mgl32.Vec3{0.35, 0.3, 0.3},
				Rotation: mgl32.Vec3{0, -math.Pi / 10, 0},
				Scale:    0.6,
			}.Matrix(),
			Mask: geometry.MaskTriangle,
		},
		{
			Mesh:      NewSphereMesh(32, 64, white),
			Transform: At(mgl32.Vec3{-0.4, 0.4, -0.3}, 0.8).Matrix(),
			Mask:      geometry.MaskTriangle,
		},
		lightInstance(ceilingLight),
	}

	rig := DefaultCameraRig()
	rig.Position = core.NewVec3(0, 1, 3.4)

	return New("cornell", rig, instances, []lights.Record{ceilingLight})
}

// cornellRoom is an open-fronted room spanning x,z in [-1,1] and y in [0,2],
// all faces pointing inward: white floor, ceiling and back wall, red left
// wall, green right wall
func cornellRoom() *Mesh {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	room := &Mesh{
		Name:      "room",
		Submeshes: []Submesh{{Material: white}, {Material: red}, {Material: green}},
	}
	room.appendQuad(0, core.NewVec3(-1, 0, 1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -2))  // Floor
	room.appendQuad(0, core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2))  // Ceiling
	room.appendQuad(0, core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0))  // Back wall
	room.appendQuad(1, core.NewVec3(-1, 0, 1), core.NewVec3(0, 0, -2), core.NewVec3(0, 2, 0))  // Left wall
	room.appendQuad(2, core.NewVec3(1, 0, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0))   // Right wall
	return room
}

// ceilingAreaLight is a 0.5x0.5 light just under a ceiling at y=2, facing down
func ceilingAreaLight() lights.Record {
	return lights.NewAreaLight(
		core.NewVec3(0, 1.98, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0.25, 0, 0),
		core.NewVec3(0, 0, 0.25),
		core.NewVec3(4, 4, 4),
	)
}

// lightInstance is the emissive geometry of an area light, visible only to camera rays
func lightInstance(record lights.Record) Instance {
	corner := record.Position.Subtract(record.Right).Subtract(record.Up)
	mesh := NewQuadMesh("light", corner, record.Right.Multiply(2), record.Up.Multiply(2), material.NewEmissive(record.Color))
	return Instance{Mesh: mesh, Transform: mgl32.Ident4(), Mask: geometry.MaskLight}
}
