package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
)

// LoadGLTF opens a .gltf or .glb file and places its node hierarchy on the
// default stage lighting: the ceiling area light and its emissive geometry.
func LoadGLTF(path string) (*Scene, error) {
	instances, err := LoadGLTFInstances(path)
	if err != nil {
		return nil, err
	}
	area := ceilingAreaLight()
	instances = append(instances, lightInstance(area))
	return New(filepath.Base(path), DefaultCameraRig(), instances, []lights.Record{area})
}

// LoadGLTFInstances returns one instance per mesh-bearing node of the file's
// default scene, with node transforms composed down the hierarchy. Each glTF
// primitive becomes a submesh. Only the PBR base color and emissive factor
// affect shading; roughness and metalness are kept as Phong-style Specular
// fields on the material record but the Lambertian integrator never reads them.
func LoadGLTFInstances(path string) ([]Instance, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	materials := make([]*material.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = convertMaterial(gm)
	}

	meshes := make([]*Mesh, len(doc.Meshes))
	for i, gm := range doc.Meshes {
		mesh, err := loadMesh(doc, gm, materials)
		if err != nil {
			return nil, fmt.Errorf("gltf %q mesh %d: %w", path, i, err)
		}
		meshes[i] = mesh
	}

	var instances []Instance
	var visit func(nodeIdx int, parent mgl32.Mat4, depth int)
	visit = func(nodeIdx int, parent mgl32.Mat4, depth int) {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		node := doc.Nodes[nodeIdx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil && *node.Mesh < len(meshes) && meshes[*node.Mesh] != nil {
			instances = append(instances, Instance{Mesh: meshes[*node.Mesh], Transform: world, Mask: geometry.MaskTriangle})
		}
		for _, child := range node.Children {
			visit(child, world, depth+1)
		}
	}
	for _, root := range rootNodes(doc) {
		visit(root, mgl32.Ident4(), 0)
	}

	if len(instances) == 0 {
		return nil, fmt.Errorf("gltf %q: %w", path, ErrNoGeometry)
	}
	logger.Debugf("gltf %q: %d meshes, %d materials, %d instances", path, len(meshes), len(materials), len(instances))
	return instances, nil
}

// rootNodes returns the default scene's roots, or every parentless node when
// the file names no scene
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix returns the node's local transform, from its matrix when set and
// from translation, rotation and scale otherwise
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i := range m {
			out[i] = float32(m[i])
		}
		return out
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault() // x, y, z, w
	s := node.ScaleOrDefault()
	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func convertMaterial(gm *gltf.Material) *material.Material {
	m := material.Default()
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		m.BaseColor = core.NewVec3(cf[0], cf[1], cf[2])
		m.Dissolve = cf[3]

		// Recorded for the material record only, shading is diffuse
		roughness := pbr.RoughnessFactorOrDefault()
		metallic := pbr.MetallicFactorOrDefault()
		m.SpecularExponent = (1-roughness)*(1-roughness)*128 + 1
		s := metallic * 0.7
		m.Specular = core.NewVec3(s, s, s)
	}
	ef := gm.EmissiveFactor
	m.Emission = core.NewVec3(ef[0], ef[1], ef[2])

	m = m.Sanitized()
	return &m
}

// loadMesh merges the triangle primitives of a glTF mesh into one vertex
// buffer, one submesh per primitive
func loadMesh(doc *gltf.Document, gm *gltf.Mesh, materials []*material.Material) (*Mesh, error) {
	mesh := &Mesh{Name: gm.Name}
	needsNormals := false

	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			logger.Warningf("gltf mesh %q primitive %d: skipping non-triangle mode %v", gm.Name, pi, prim.Mode)
			continue
		}
		posIdx, ok := prim.Attributes["POSITION"]
		if !ok {
			return nil, fmt.Errorf("primitive %d: no POSITION attribute", pi)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", pi, err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes["NORMAL"]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d normals: %w", pi, err)
			}
		}
		if len(normals) != len(positions) {
			needsNormals = true
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(len(mesh.Positions))
		for i, p := range positions {
			mesh.Positions = append(mesh.Positions, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
			n := core.NewVec3(0, 1, 0)
			if i < len(normals) {
				n = core.NewVec3(float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2]))
			}
			mesh.Normals = append(mesh.Normals, n)
		}

		offset := make([]uint32, len(indices)-len(indices)%3)
		for i := range offset {
			offset[i] = indices[i] + base
		}

		mat := defaultMaterial
		if prim.Material != nil && *prim.Material < len(materials) {
			mat = materials[*prim.Material]
		}
		mesh.Submeshes = append(mesh.Submeshes, Submesh{Indices: offset, Material: mat})
	}

	if len(mesh.Submeshes) == 0 {
		return nil, nil
	}
	if needsNormals {
		mesh.ComputeNormals()
	}
	return mesh, nil
}

// defaultMaterial is shared by every primitive that names no material
var defaultMaterial = func() *material.Material {
	m := material.Default()
	return &m
}()
