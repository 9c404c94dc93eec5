package geometry

import (
	"testing"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/material"
)

func TestResourceTable_Lookup(t *testing.T) {
	table := NewResourceTable(3, 4)
	red := material.NewDiffuse(core.NewVec3(1, 0, 0))
	r := Resource{
		Normals:  []core.Vec3{core.NewVec3(0, 1, 0)},
		Indices:  []uint32{0, 0, 0},
		Material: red,
	}

	if err := table.Set(2, 3, r); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if idx := table.Index(2, 3); idx != 11 {
		t.Errorf("Index(2, 3) = %d, expected 11", idx)
	}

	got := table.Lookup(2, 3)
	if got.Material != red {
		t.Error("Lookup should return the bound material by reference")
	}
	if got.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, expected 1", got.TriangleCount())
	}
	if table.Lookup(1, 3).Material != nil {
		t.Error("unrelated slot should be empty")
	}
}

func TestResourceTable_SetOutOfRange(t *testing.T) {
	table := NewResourceTable(2, 2)
	tests := []struct {
		name                   string
		instanceID, geometryID int
	}{
		{"geometry past stride", 0, 2},
		{"negative geometry", 0, -1},
		{"instance past table", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := table.Set(tt.instanceID, tt.geometryID, Resource{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMask_Accepts(t *testing.T) {
	if !MaskTriangle.Accepts(RayMaskShadow) || !MaskLight.Accepts(RayMaskPrimary) {
		t.Error("expected masks to overlap")
	}
	if MaskLight.Accepts(RayMaskShadow) || MaskLight.Accepts(RayMaskSecondary) {
		t.Error("light geometry should be invisible to shadow and secondary rays")
	}
}
