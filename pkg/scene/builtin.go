package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
)

var builtins = map[string]func() (*Scene, error){
	"default":  NewDefaultScene,
	"cornell":  NewCornellScene,
	"showcase": NewShowcaseScene,
}

// Builtin returns the named built-in scene
func Builtin(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build()
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultScene creates a floor and backdrop with a few primitives, lit by a
// ceiling-height area light and a spotlight
func NewDefaultScene() (*Scene, error) {
	area := ceilingAreaLight()
	spot := lights.NewSpotLight(
		core.NewVec3(2, 1, 4),
		core.NewVec3(-1.5, -0.5, -1.5),
		25*math.Pi/180,
		core.NewVec3(4, 4, 4),
	)
	return New("default", DefaultCameraRig(), stageInstances(area), []lights.Record{area, spot})
}

// NewShowcaseScene uses the default stage with one light of every type
func NewShowcaseScene() (*Scene, error) {
	area := ceilingAreaLight()
	smallArea := lights.NewAreaLight(
		core.NewVec3(2, 1.98, 3),
		core.NewVec3(0, -0.5, 0),
		core.NewVec3(0.1, 0, 0),
		core.NewVec3(0, 0, 0.1),
		core.NewVec3(4, 4, 4),
	)
	records := []lights.Record{
		area,
		smallArea,
		lights.NewSpotLight(core.NewVec3(2, 1, 4), core.NewVec3(-1.5, -0.5, -1.5), 25*math.Pi/180, core.NewVec3(4, 4, 4)),
		lights.NewSunLight(core.NewVec3(-1, -2, 0), core.NewVec3(1, 1, 1)),
		lights.NewPointLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)),
		{Type: lights.KindUnused},
	}

	instances := append(stageInstances(area), lightInstance(smallArea))
	return New("showcase", DefaultCameraRig(), instances, records)
}

// stageInstances lays out the shared floor, backdrop and primitives
func stageInstances(area lights.Record) []Instance {
	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	backdrop := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.7))
	orange := material.NewDiffuse(core.NewVec3(0.9, 0.5, 0.2))
	blue := material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.8))
	white := material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))

	return []Instance{
		{Mesh: NewPlaneMesh(floor), Transform: At(mgl32.Vec3{0, 0, 0}, 10).Matrix(), Mask: geometry.MaskTriangle},
		{
			Mesh:      NewPlaneMesh(backdrop),
			Transform: Transform{Position: mgl32.Vec3{0, 0, -1.5}, Rotation: mgl32.Vec3{math.Pi / 2, 0, 0}, Scale: 10}.Matrix(),
			Mask:      geometry.MaskTriangle,
		},
		{Mesh: NewSphereMesh(24, 48, orange), Transform: At(mgl32.Vec3{-1.9, 0.5, 0.3}, 1).Matrix(), Mask: geometry.MaskTriangle},
		{Mesh: NewSphereMesh(32, 64, blue), Transform: At(mgl32.Vec3{2.9, 1, -0.5}, 2).Matrix(), Mask: geometry.MaskTriangle},
		{
			Mesh:      NewBoxMesh(white),
			Transform: Transform{Position: mgl32.Vec3{0.3, 0.35, 0.4}, Rotation: mgl32.Vec3{0, math.Pi / 2 * 1.2, 0}, Scale: 0.7}.Matrix(),
			Mask:      geometry.MaskTriangle,
		},
		lightInstance(area),
	}
}
