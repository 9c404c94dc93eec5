package cmd

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/lights"
)

// Estimate the irradiance of a square area light from a point straight below
// it and compare against the far-field value C·area/d².
func CheckAreaLight(ctx *cli.Context) error {
	distance, extent, samples := ctx.Float64("distance"), ctx.Float64("extent"), ctx.Int("samples")
	if distance <= 0 || extent <= 0 || samples <= 0 {
		return fmt.Errorf("lightcheck: distance, extent and samples must be positive (got %g, %g, %d)", distance, extent, samples)
	}

	var buf bytes.Buffer
	writeConvergenceTable(&buf, distance, extent, samples)
	logger.Noticef("area light convergence at distance %g\n%s", distance, buf.String())
	return nil
}

// estimateAreaLight averages the sampled contribution of a unit-color light
// with half extent extent, centered distance units above the shading point
func estimateAreaLight(distance, extent float64, samples int) (expected, measured float64) {
	light := lights.AreaLight{
		Position: core.NewVec3(0, distance, 0),
		Forward:  core.NewVec3(0, -1, 0),
		Right:    core.NewVec3(extent, 0, 0),
		Up:       core.NewVec3(0, 0, extent),
		Color:    core.NewVec3(1, 1, 1),
	}
	position := core.NewVec3(0, 0, 0)

	sum := 0.0
	for i := 0; i < samples; i++ {
		sampler := core.NewHaltonSampler(uint32(i), 0)
		sum += lights.SampleAreaLight(light, sampler.Get2D(), position).Color.X
	}
	return light.Area() / (distance * distance), sum / float64(samples)
}

func writeConvergenceTable(w io.Writer, distance, extent float64, samples int) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Samples", "Expected", "Measured", "Rel. error"})

	for n := 16; ; n *= 4 {
		n = min(n, samples)
		expected, measured := estimateAreaLight(distance, extent, n)
		table.Append([]string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.6g", expected),
			fmt.Sprintf("%.6g", measured),
			fmt.Sprintf("%.3e", math.Abs(measured-expected)/expected),
		})
		if n == samples {
			break
		}
	}
	table.Render()
}
