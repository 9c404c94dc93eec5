package renderer

import (
	"image"

	"github.com/df07/go-shading-core/pkg/integrator"
	"github.com/df07/go-shading-core/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	integrator integrator.Integrator
	offsets    [][]uint32 // Per-pixel decorrelation added to the frame index
}

// NewTileRenderer creates a new tile renderer with the given integrator and
// per-pixel sample index offsets
func NewTileRenderer(integratorInst integrator.Integrator, offsets [][]uint32) *TileRenderer {
	return &TileRenderer{
		integrator: integratorInst,
		offsets:    offsets,
	}
}

// RenderTileBounds takes one sample for every pixel within bounds and folds
// it into pixelStats. Pixel (x, y) draws Halton sample FrameIndex + offset.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, u scene.Uniforms) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sampleIndex := u.FrameIndex + tr.offsets[y][x]
			color := tr.integrator.SamplePixel(u, x, y, sampleIndex)
			pixelStats[y][x].AddSample(color)
			stats.TotalSamples++
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
