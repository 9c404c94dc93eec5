package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/log"
)

var (
	ErrNoGeometry   = errors.New("scene: scene contains no triangles")
	ErrUnknownScene = errors.New("scene: unknown scene")
)

var logger = log.New("scene")

// Instance is one placement of a mesh in the world
type Instance struct {
	Mesh      *Mesh
	Transform mgl32.Mat4
	Mask      geometry.Mask
}

// Scene contains all the elements needed for rendering. Everything is
// immutable once New returns.
type Scene struct {
	Name      string
	Camera    CameraRig
	Instances []Instance
	Lights    []lights.Light
	Resources *geometry.ResourceTable // Slot per (instance, submesh)
	BVH       *geometry.BVH           // Software traversal over world-space triangles
}

// New builds the resource table and acceleration structure for the given
// instances and decodes the light buffer
func New(name string, camera CameraRig, instances []Instance, lightRecords []lights.Record) (*Scene, error) {
	decoded, err := lights.DecodeAll(lightRecords)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	for i, l := range decoded {
		if area, ok := l.(lights.AreaLight); ok {
			if err := area.Validate(); err != nil {
				return nil, fmt.Errorf("scene %q light %d: %w", name, i, err)
			}
		}
	}

	maxSubmeshes := 1
	for i, inst := range instances {
		if inst.Mesh == nil {
			return nil, fmt.Errorf("scene %q: instance %d has no mesh", name, i)
		}
		if err := inst.Mesh.Validate(); err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
		maxSubmeshes = max(maxSubmeshes, len(inst.Mesh.Submeshes))
	}

	resources := geometry.NewResourceTable(len(instances), maxSubmeshes)
	var triangles []geometry.Triangle

	for instanceID, inst := range instances {
		positions := make([]core.Vec3, len(inst.Mesh.Positions))
		for i, p := range inst.Mesh.Positions {
			positions[i] = transformPoint(inst.Transform, p)
		}
		nm := normalMatrix(inst.Transform)
		normals := make([]core.Vec3, len(inst.Mesh.Normals))
		for i, n := range inst.Mesh.Normals {
			normals[i] = transformNormal(nm, n)
		}

		for geometryID, sm := range inst.Mesh.Submeshes {
			err := resources.Set(instanceID, geometryID, geometry.Resource{
				Normals:  normals,
				Indices:  sm.Indices,
				Material: sm.Material,
			})
			if err != nil {
				return nil, fmt.Errorf("scene %q: %w", name, err)
			}

			for primitiveID := 0; primitiveID < len(sm.Indices)/3; primitiveID++ {
				base := primitiveID * 3
				triangles = append(triangles, geometry.NewTriangle(
					positions[sm.Indices[base+0]],
					positions[sm.Indices[base+1]],
					positions[sm.Indices[base+2]],
					instanceID, geometryID, primitiveID, inst.Mask,
				))
			}
		}
	}

	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGeometry, name)
	}

	s := &Scene{
		Name:      name,
		Camera:    camera,
		Instances: instances,
		Lights:    decoded,
		Resources: resources,
		BVH:       geometry.NewBVH(triangles),
	}

	for _, emitter := range unlitEmitters(instances) {
		logger.Warningf("scene %q: %s is emissive but has no light record; it is visible to the camera but lights nothing", name, emitter)
	}

	stats := s.BVH.Stats()
	logger.Infof("scene %q: %d instances, %d triangles, %d lights", name, len(instances), len(triangles), len(decoded))
	logger.Debugf("scene %q: BVH %d nodes, %d leaves, max depth %d", name, stats.TotalNodes, stats.LeafNodes, stats.MaxDepth)
	return s, nil
}

// Uniforms returns the per-frame parameters for a width x height frame
func (s *Scene) Uniforms(width, height int, frameIndex uint32) Uniforms {
	return NewUniforms(s.Camera, width, height, frameIndex, len(s.Lights))
}

// TriangleCount returns the number of triangles in the acceleration structure
func (s *Scene) TriangleCount() int {
	return len(s.BVH.Triangles)
}

// Intersect returns the closest hit along ray visible to rayMask
func (s *Scene) Intersect(ray core.Ray, rayMask geometry.Mask) (geometry.Intersection, bool) {
	return s.BVH.Intersect(ray, rayMask)
}

// IntersectHardware returns the closest hit in the accelerated traversal layout
func (s *Scene) IntersectHardware(ray core.Ray, rayMask geometry.Mask) geometry.HardwareIntersection {
	hit, ok := s.BVH.Intersect(ray, rayMask)
	if !ok {
		return geometry.HardwareIntersection{Type: geometry.IntersectionNone}
	}
	return hit.ToHardware()
}

// Occluded returns true if anything visible to shadow rays lies on the ray segment
func (s *Scene) Occluded(ray core.Ray) bool {
	return s.BVH.Occluded(ray, geometry.RayMaskShadow)
}

// unlitEmitters names the emissive submeshes outside light geometry. Emission
// only reaches other surfaces through light records, so these glow on camera
// hits alone.
func unlitEmitters(instances []Instance) []string {
	var names []string
	for instanceID, inst := range instances {
		if inst.Mask&geometry.MaskLight != 0 {
			continue
		}
		for geometryID, sm := range inst.Mesh.Submeshes {
			if sm.Material != nil && sm.Material.IsEmissive() {
				names = append(names, fmt.Sprintf("instance %d (%s) submesh %d", instanceID, inst.Mesh.Name, geometryID))
			}
		}
	}
	return names
}
