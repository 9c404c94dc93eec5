package scene

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/lights"
)

// WriteStats renders a table of instances and submeshes to w
func (s *Scene) WriteStats(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Instance", "Mesh", "Submesh", "Slot", "Triangles", "Base color", "Emission"})

	for instanceID, inst := range s.Instances {
		for geometryID, sm := range inst.Mesh.Submeshes {
			table.Append([]string{
				fmt.Sprintf("%d", instanceID),
				inst.Mesh.Name,
				fmt.Sprintf("%d", geometryID),
				fmt.Sprintf("%d", s.Resources.Index(instanceID, geometryID)),
				fmt.Sprintf("%d", len(sm.Indices)/3),
				formatVec3(sm.Material.BaseColor),
				formatVec3(sm.Material.Emission),
			})
		}
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%d", s.TriangleCount()), "", ""})
	table.Render()
}

// WriteLights renders a table of the decoded light buffer to w
func (s *Scene) WriteLights(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Light", "Type", "Position", "Color", "Detail"})

	for i, l := range s.Lights {
		var position, detail string
		switch l := l.(type) {
		case lights.AreaLight:
			position = formatVec3(l.Position)
			detail = fmt.Sprintf("area %.3f normal %s", l.Area(), formatVec3(l.Normal()))
		case lights.SpotLight:
			position = formatVec3(l.Position)
			detail = fmt.Sprintf("cone %.1f° toward %s", l.ConeAngle*180/math.Pi, formatVec3(l.Direction))
		case lights.PointLight:
			position = formatVec3(l.Position)
		case lights.SunLight:
			detail = fmt.Sprintf("toward %s", formatVec3(l.Direction))
		case lights.UnusedLight:
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			l.Kind().String(),
			position,
			formatVec3(l.Record().Color),
			detail,
		})
	}
	table.Render()
}

func formatVec3(v core.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
