package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/material"
)

// Submesh is a run of triangles sharing one material. Indices point into the
// owning Mesh's vertex buffers, three per triangle.
type Submesh struct {
	Indices  []uint32
	Material *material.Material
}

// Mesh is a model-space vertex buffer split into submeshes
type Mesh struct {
	Name      string
	Positions []core.Vec3
	Normals   []core.Vec3 // One per position
	Submeshes []Submesh
}

// TriangleCount returns the number of triangles across all submeshes
func (m *Mesh) TriangleCount() int {
	count := 0
	for _, sm := range m.Submeshes {
		count += len(sm.Indices) / 3
	}
	return count
}

// Validate checks buffer sizes and that every index addresses a vertex
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh %q: %d normals for %d positions", m.Name, len(m.Normals), len(m.Positions))
	}
	for i, sm := range m.Submeshes {
		if len(sm.Indices)%3 != 0 {
			return fmt.Errorf("mesh %q submesh %d: %d indices is not a multiple of 3", m.Name, i, len(sm.Indices))
		}
		if sm.Material == nil {
			return fmt.Errorf("mesh %q submesh %d: missing material", m.Name, i)
		}
		for _, idx := range sm.Indices {
			if int(idx) >= len(m.Positions) {
				return fmt.Errorf("mesh %q submesh %d: index %d out of range for %d vertices", m.Name, i, idx, len(m.Positions))
			}
		}
	}
	return nil
}

// ComputeNormals replaces the normals with area-weighted vertex normals
func (m *Mesh) ComputeNormals() {
	normals := make([]core.Vec3, len(m.Positions))
	for _, sm := range m.Submeshes {
		for t := 0; t+2 < len(sm.Indices); t += 3 {
			i0, i1, i2 := sm.Indices[t], sm.Indices[t+1], sm.Indices[t+2]
			p0 := m.Positions[i0]
			// Unnormalized cross product weights by triangle area
			n := m.Positions[i1].Subtract(p0).Cross(m.Positions[i2].Subtract(p0))
			normals[i0] = normals[i0].Add(n)
			normals[i1] = normals[i1].Add(n)
			normals[i2] = normals[i2].Add(n)
		}
	}
	for i := range normals {
		normals[i] = normals[i].NormalizeOr(core.NewVec3(0, 1, 0))
	}
	m.Normals = normals
}

// appendQuad adds the parallelogram corner, corner+u, corner+u+v, corner+v
// with a flat normal u×v
func (m *Mesh) appendQuad(submesh int, corner, u, v core.Vec3) {
	base := uint32(len(m.Positions))
	normal := u.Cross(v).NormalizeOr(core.NewVec3(0, 1, 0))
	m.Positions = append(m.Positions, corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v))
	m.Normals = append(m.Normals, normal, normal, normal, normal)

	sm := &m.Submeshes[submesh]
	sm.Indices = append(sm.Indices, base, base+1, base+2, base, base+2, base+3)
}

// NewQuadMesh creates a single parallelogram facing u×v
func NewQuadMesh(name string, corner, u, v core.Vec3, mat *material.Material) *Mesh {
	m := &Mesh{Name: name, Submeshes: []Submesh{{Material: mat}}}
	m.appendQuad(0, corner, u, v)
	return m
}

// NewPlaneMesh creates a unit square in the XZ plane centered at the origin, facing +Y
func NewPlaneMesh(mat *material.Material) *Mesh {
	return NewQuadMesh("plane", core.NewVec3(-0.5, 0, 0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1), mat)
}

// NewBoxMesh creates a unit cube centered at the origin with flat, outward facing normals
func NewBoxMesh(mat *material.Material) *Mesh {
	m := &Mesh{Name: "box", Submeshes: []Submesh{{Material: mat}}}
	faces := []struct{ corner, u, v core.Vec3 }{
		{core.NewVec3(0.5, -0.5, 0.5), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)},   // +X
		{core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0)},  // -X
		{core.NewVec3(-0.5, 0.5, 0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1)},   // +Y
		{core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)},  // -Y
		{core.NewVec3(-0.5, -0.5, 0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},   // +Z
		{core.NewVec3(0.5, -0.5, -0.5), core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 0)},  // -Z
	}
	for _, f := range faces {
		m.appendQuad(0, f.corner, f.u, f.v)
	}
	return m
}

// NewSphereMesh creates a UV sphere of radius 0.5 with smooth normals
func NewSphereMesh(rings, segments int, mat *material.Material) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)
	m := &Mesh{Name: "sphere", Submeshes: []Submesh{{Material: mat}}}

	for i := 0; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			n := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			m.Positions = append(m.Positions, n.Multiply(0.5))
			m.Normals = append(m.Normals, n)
		}
	}

	stride := uint32(segments + 1)
	sm := &m.Submeshes[0]
	for i := uint32(0); i < uint32(rings); i++ {
		for j := uint32(0); j < uint32(segments); j++ {
			a := i*stride + j
			b := a + 1
			c := a + stride + 1
			d := a + stride
			// Wound so (V1-V0)×(V2-V0) points outward; skip the collapsed pole triangles
			if i != 0 {
				sm.Indices = append(sm.Indices, a, b, c)
			}
			if i != uint32(rings)-1 {
				sm.Indices = append(sm.Indices, a, c, d)
			}
		}
	}
	return m
}
