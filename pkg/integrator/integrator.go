package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along a primary ray and
	// the number of surface bounces it took
	RayColor(ray core.Ray, scene *scene.Scene) (core.Color, int)
}

// Config holds the tracer's empirical constants
type Config struct {
	Epsilon  float32 // Minimum hit distance, keeps bounced and shadow rays off their own surface
	MaxDepth int     // Hard cap on bounces per primary ray
	FarPlane float32 // Initial upper bound for the nearest-hit search
}

// DefaultConfig returns the constants the renderer was tuned with
func DefaultConfig() Config {
	return Config{
		Epsilon:  0.001,
		MaxDepth: 15,
		FarPlane: 20000,
	}
}

// Validate rejects settings that would make tracing meaningless
func (c Config) Validate() error {
	if !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be > 0, got %g", c.Epsilon)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be > 0, got %d", c.MaxDepth)
	}
	if !(c.FarPlane > c.Epsilon) {
		return fmt.Errorf("far plane must be greater than epsilon, got %g", c.FarPlane)
	}
	return nil
}
