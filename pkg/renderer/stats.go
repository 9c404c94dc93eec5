package renderer

import (
	"image"
	"math"
	"time"

	"github.com/df07/go-shading-core/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Frames         int           // Frames accumulated so far
	Duration       time.Duration // Wall time spent rendering
}

// PixelStats holds the progressive running average of a single pixel
type PixelStats struct {
	Color       core.Vec3 // Mean of all samples so far
	SampleCount int       // Number of samples taken
}

// AddSample folds a new sample into the running average:
// (prev*n + sample) / (n+1). Non-finite samples count as black.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if !isFinite(color) {
		color = core.Vec3{}
	}
	n := float64(ps.SampleCount)
	ps.Color = ps.Color.Multiply(n).Add(color).Multiply(1.0 / (n + 1))
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	return ps.Color
}

func isFinite(v core.Vec3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// CalculateAverageLuminance returns the mean perceptual luminance of img, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
