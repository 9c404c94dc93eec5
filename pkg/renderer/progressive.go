package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"time"

	"github.com/df07/go-shading-core/pkg/core"
	"github.com/df07/go-shading-core/pkg/integrator"
	"github.com/df07/go-shading-core/pkg/log"
	"github.com/df07/go-shading-core/pkg/scene"
)

var logger = log.New("renderer")

const (
	// sampleOffsetRange bounds the per-pixel offset added to the frame index,
	// so neighbouring pixels walk different stretches of the Halton sequence
	sampleOffsetRange = 1024 * 1024

	offsetSeed = 42
)

// ProgressiveRenderer accumulates one sample per pixel per frame into a
// running average. It is not safe for concurrent use; each frame is
// parallelised internally over tiles.
type ProgressiveRenderer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
	tiles      []*Tile
	pixelStats [][]PixelStats // Accumulation buffer (global image coordinates)
	offsets    [][]uint32
	frameIndex uint32
}

// NewProgressiveRenderer creates a renderer tracing s with the reference path tracer
func NewProgressiveRenderer(s *scene.Scene, config Config) (*ProgressiveRenderer, error) {
	if s == nil {
		return nil, ErrNoScene
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewProgressiveRendererWithIntegrator(s, integrator.NewPathTracingIntegrator(s, config.MaxBounces), config)
}

// NewProgressiveRendererWithIntegrator creates a renderer that draws every
// pixel sample from integratorInst
func NewProgressiveRendererWithIntegrator(s *scene.Scene, integratorInst integrator.Integrator, config Config) (*ProgressiveRenderer, error) {
	if s == nil {
		return nil, ErrNoScene
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(offsetSeed))
	pixelStats := make([][]PixelStats, config.Height)
	offsets := make([][]uint32, config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, config.Width)
		offsets[y] = make([]uint32, config.Width)
		for x := range offsets[y] {
			offsets[y][x] = random.Uint32() % sampleOffsetRange
		}
	}

	return &ProgressiveRenderer{
		scene:      s,
		config:     config,
		integrator: integratorInst,
		tiles:      NewTileGrid(config.Width, config.Height, config.TileSize),
		pixelStats: pixelStats,
		offsets:    offsets,
	}, nil
}

// Frames returns the number of frames accumulated so far
func (pr *ProgressiveRenderer) Frames() int {
	return int(pr.frameIndex)
}

// RenderFrame renders one sample per pixel at the current frame index and
// folds it into the accumulation buffer. Cancelling ctx stops the frame
// between tiles; tiles already rendered keep their sample and the frame
// index still advances, so no pixel ever repeats a sample index.
func (pr *ProgressiveRenderer) RenderFrame(ctx context.Context) (RenderStats, error) {
	startTime := time.Now()
	u := pr.scene.Uniforms(pr.config.Width, pr.config.Height, pr.frameIndex)
	defer func() { pr.frameIndex++ }()

	workerPool := NewWorkerPool(NewTileRenderer(pr.integrator, pr.offsets), len(pr.tiles), pr.config.NumWorkers)
	workerPool.Start(ctx)
	for taskID, tile := range pr.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:       tile,
			Uniforms:   u,
			TaskID:     taskID,
			PixelStats: pr.pixelStats,
		})
	}
	workerPool.Stop()

	stats := RenderStats{TotalPixels: pr.config.Width * pr.config.Height, Frames: int(pr.frameIndex) + 1}
	var firstErr error
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.TotalSamples += result.Stats.TotalSamples
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Duration = time.Since(startTime)

	if firstErr != nil {
		return stats, fmt.Errorf("frame %d: %w", u.FrameIndex, firstErr)
	}
	logger.Debugf("frame %d: %d tiles on %d workers in %v", u.FrameIndex, len(pr.tiles), workerPool.GetNumWorkers(), stats.Duration)
	return stats, nil
}

// Render accumulates frames until SamplesPerPixel is reached and returns the
// resulting image. Stats cover the whole accumulation.
func (pr *ProgressiveRenderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	logger.Infof("rendering %q at %dx%d, %d samples per pixel", pr.scene.Name, pr.config.Width, pr.config.Height, pr.config.SamplesPerPixel)

	for pr.Frames() < pr.config.SamplesPerPixel {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, fmt.Errorf("render cancelled before frame %d: %w", pr.frameIndex, err)
		}
		if _, err := pr.RenderFrame(ctx); err != nil {
			return nil, RenderStats{}, err
		}
	}

	img, stats := pr.assembleCurrentImage()
	stats.Duration = time.Since(startTime)
	logger.Infof("rendered %d frames in %v", stats.Frames, stats.Duration)
	return img, stats, nil
}

// Image returns the current state of the accumulation buffer
func (pr *ProgressiveRenderer) Image() *image.RGBA {
	img, _ := pr.assembleCurrentImage()
	return img
}

// assembleCurrentImage creates an image from the current state of the shared pixel stats
// and calculates render statistics in a single pass
func (pr *ProgressiveRenderer) assembleCurrentImage() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.config.Width, pr.config.Height))
	stats := RenderStats{
		TotalPixels: pr.config.Width * pr.config.Height,
		Frames:      pr.Frames(),
	}

	for y := 0; y < pr.config.Height; y++ {
		for x := 0; x < pr.config.Width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, vec3ToColor(pixel.GetColor()))
			stats.TotalSamples += pixel.SampleCount
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return img, stats
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp first so negative channels never reach Pow
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// SavePNG writes img to path as a PNG file
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return file.Close()
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
