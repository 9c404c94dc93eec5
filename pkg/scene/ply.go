package scene

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/geometry"
	"github.com/df07/go-shading-core/pkg/lights"
	"github.com/df07/go-shading-core/pkg/material"
)

// plyProperty is one property line of a PLY element declaration
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // Type of the list length prefix
}

type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// LoadPLY reads a PLY polygon mesh. Faces with more than three vertices are
// fan triangulated; normals are computed when the file carries none.
func LoadPLY(path string, mat *material.Material) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ply open %q: %w", path, err)
	}
	defer file.Close()

	mesh, err := readPLY(bufio.NewReader(file), mat)
	if err != nil {
		return nil, fmt.Errorf("ply %q: %w", path, err)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	logger.Debugf("ply %q: %d vertices, %d triangles", path, len(mesh.Positions), mesh.TriangleCount())
	return mesh, nil
}

// LoadPLYScene places a PLY mesh, scaled to fit a 1.2 unit cube, on the floor
// of the Cornell room under its ceiling light
func LoadPLYScene(path string) (*Scene, error) {
	mesh, err := LoadPLY(path, material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	if err != nil {
		return nil, err
	}

	area := ceilingAreaLight()
	instances := []Instance{
		{Mesh: cornellRoom(), Transform: mgl32.Ident4(), Mask: geometry.MaskTriangle},
		{Mesh: mesh, Transform: fitToFloor(mesh, 1.2), Mask: geometry.MaskTriangle},
		lightInstance(area),
	}

	rig := DefaultCameraRig()
	rig.Position = core.NewVec3(0, 1, 3.4)
	return New(mesh.Name, rig, instances, []lights.Record{area})
}

// fitToFloor returns a uniform scale and translation that fits the mesh's
// longest side to size and rests it centered on y=0
func fitToFloor(mesh *Mesh, size float64) mgl32.Mat4 {
	bounds := core.NewAABBFromPoints(mesh.Positions...)
	longest := bounds.Size().MaxComponent()
	if !bounds.IsValid() || longest < core.DegenerateLength {
		return mgl32.Ident4()
	}

	scale := size / longest
	center := bounds.Center()
	offset := core.NewVec3(-center.X*scale, -bounds.Min.Y*scale, -center.Z*scale)
	return mgl32.Translate3D(float32(offset.X), float32(offset.Y), float32(offset.Z)).
		Mul4(mgl32.Scale3D(float32(scale), float32(scale), float32(scale)))
}

func readPLY(r *bufio.Reader, mat *material.Material) (*Mesh, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		values = &asciiPLYReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryPLYReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryPLYReader{r: r, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported format %q", header.Format)
	}

	mesh := &Mesh{Submeshes: []Submesh{{Material: mat}}}
	normalCount := 0

	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			var vertex [6]float64 // x, y, z, nx, ny, nz
			var hasNormal bool

			for _, prop := range element.Properties {
				if prop.IsList {
					n, err := values.read(prop.CountType)
					if err != nil {
						return nil, fmt.Errorf("%s %d %s: %w", element.Name, i, prop.Name, err)
					}
					list := make([]uint32, int(n))
					for k := range list {
						v, err := values.read(prop.Type)
						if err != nil {
							return nil, fmt.Errorf("%s %d %s: %w", element.Name, i, prop.Name, err)
						}
						list[k] = uint32(v)
					}
					if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
						appendFan(&mesh.Submeshes[0], list)
					}
					continue
				}

				v, err := values.read(prop.Type)
				if err != nil {
					return nil, fmt.Errorf("%s %d %s: %w", element.Name, i, prop.Name, err)
				}
				if element.Name != "vertex" {
					continue
				}
				if slot := plyVertexSlot(prop.Name); slot >= 0 {
					vertex[slot] = v
					hasNormal = hasNormal || slot >= 3
				}
			}

			if element.Name == "vertex" {
				mesh.Positions = append(mesh.Positions, core.NewVec3(vertex[0], vertex[1], vertex[2]))
				mesh.Normals = append(mesh.Normals, core.NewVec3(vertex[3], vertex[4], vertex[5]).NormalizeOr(core.NewVec3(0, 1, 0)))
				if hasNormal {
					normalCount++
				}
			}
		}
	}

	if len(mesh.Submeshes[0].Indices) == 0 {
		return nil, ErrNoGeometry
	}
	if normalCount != len(mesh.Positions) {
		mesh.ComputeNormals()
	}
	return mesh, nil
}

func plyVertexSlot(name string) int {
	switch name {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	case "nx":
		return 3
	case "ny":
		return 4
	case "nz":
		return 5
	}
	return -1
}

// appendFan triangulates a convex polygon around its first vertex
func appendFan(sm *Submesh, polygon []uint32) {
	for k := 1; k+1 < len(polygon); k++ {
		sm.Indices = append(sm.Indices, polygon[0], polygon[k], polygon[k+1])
	}
}

func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("header has no format line")
			}
			return header, nil
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q", parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		}
	}
}

func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		return plyProperty{Name: parts[3], Type: parts[2], IsList: true, CountType: parts[1]}, nil
	}
	if len(parts) >= 2 && parts[0] != "list" {
		return plyProperty{Name: parts[1], Type: parts[0]}, nil
	}
	return plyProperty{}, fmt.Errorf("invalid property definition %q", strings.Join(parts, " "))
}

// plyValueReader decodes the next value of a PLY scalar type as float64
type plyValueReader interface {
	read(typ string) (float64, error)
}

type asciiPLYReader struct {
	scanner *bufio.Scanner
}

func (a *asciiPLYReader) read(typ string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryPLYReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryPLYReader) read(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type %q", typ)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default: // double
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}
