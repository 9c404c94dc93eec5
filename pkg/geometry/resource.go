package geometry

import (
	"fmt"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/material"
)

// Resource binds one submesh to the buffers shading reads: per-vertex normals,
// the triangle index buffer and the material. The scene owns all three;
// shading only borrows them for the duration of a pass.
type Resource struct {
	Normals  []core.Vec3
	Indices  []uint32
	Material *material.Material
}

// TriangleCount returns the number of triangles in the index buffer
func (r *Resource) TriangleCount() int {
	return len(r.Indices) / 3
}

// ResourceTable holds one Resource slot per (instance, submesh) pair.
// Slots are laid out with a fixed stride of MaxSubmeshes per instance.
type ResourceTable struct {
	Resources    []Resource
	MaxSubmeshes int
}

// NewResourceTable allocates an empty table for the given number of instances
func NewResourceTable(instances, maxSubmeshes int) *ResourceTable {
	return &ResourceTable{
		Resources:    make([]Resource, instances*maxSubmeshes),
		MaxSubmeshes: maxSubmeshes,
	}
}

// Index returns the slot of (instanceID, geometryID)
func (t *ResourceTable) Index(instanceID, geometryID int) int {
	return instanceID*t.MaxSubmeshes + geometryID
}

// Lookup returns the binding for a hit's instance and geometry
func (t *ResourceTable) Lookup(instanceID, geometryID int) *Resource {
	if debugChecks && (geometryID < 0 || geometryID >= t.MaxSubmeshes) {
		panic(fmt.Sprintf("geometry: geometry id %d exceeds %d submeshes", geometryID, t.MaxSubmeshes))
	}
	return &t.Resources[t.Index(instanceID, geometryID)]
}

// Set stores the binding for (instanceID, geometryID)
func (t *ResourceTable) Set(instanceID, geometryID int, r Resource) error {
	if geometryID < 0 || geometryID >= t.MaxSubmeshes {
		return fmt.Errorf("geometry: geometry id %d exceeds %d submeshes", geometryID, t.MaxSubmeshes)
	}
	idx := t.Index(instanceID, geometryID)
	if idx < 0 || idx >= len(t.Resources) {
		return fmt.Errorf("geometry: instance %d out of range", instanceID)
	}
	t.Resources[idx] = r
	return nil
}
