package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-shading-core/pkg/integrator"
)

var (
	ErrInvalidDimensions = errors.New("renderer: invalid dimensions")
	ErrNoScene           = errors.New("renderer: no scene")
)

// Config contains configuration for progressive rendering
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int // Number of frames accumulated
	MaxBounces      int // Surface interactions per path (0 = integrator default)
	TileSize        int // Size of each square tile
	NumWorkers      int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 64,
		MaxBounces:      integrator.DefaultMaxBounces,
		TileSize:        32,
		NumWorkers:      0, // Auto-detect CPU count
	}
}

// Validate reports the first field that cannot be rendered with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidDimensions, c.TileSize)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("renderer: samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxBounces < 0 || c.MaxBounces > integrator.MaxSupportedBounces:
		return fmt.Errorf("renderer: max bounces must be in [0, %d], got %d", integrator.MaxSupportedBounces, c.MaxBounces)
	case c.NumWorkers < 0:
		return fmt.Errorf("renderer: worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}
