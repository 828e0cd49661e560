package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

const (
	// BaseWidth and BaseHeight are the frame size at scale 1
	BaseWidth  = 800
	BaseHeight = 600
)

// Config contains everything the frame driver needs besides the scene.
// It is passed by value and never modified during a render.
type Config struct {
	Width      int               // Image width in pixels
	Height     int               // Image height in pixels
	NumWorkers int               // Number of parallel workers
	CameraZ    float32           // Z of the image plane primary rays start from
	Integrator integrator.Config // Tracer constants
}

// DefaultConfig returns the configuration for an 800x600 frame enlarged by scale
func DefaultConfig(scale int) Config {
	return Config{
		Width:      BaseWidth * scale,
		Height:     BaseHeight * scale,
		NumWorkers: DefaultWorkerCount(),
		CameraZ:    -2000,
		Integrator: integrator.DefaultConfig(),
	}
}

// Validate rejects configurations that cannot produce an image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.NumWorkers)
	}
	if err := c.Integrator.Validate(); err != nil {
		return fmt.Errorf("integrator: %w", err)
	}
	return nil
}
