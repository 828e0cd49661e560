package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Render traces every pixel of the frame in parallel and returns the
// completed frame buffer. The scene must not be modified while it runs.
func Render(sc *scene.Scene, config Config, logger core.Logger) (*FrameBuffer, RenderStats, error) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	frame := NewFrameBuffer(config.Width, config.Height)
	pool := NewWorkerPool(sc, config, frame)

	logger.Printf("Rendering %dx%d: %d spheres, %d lights (using %d workers)...\n",
		config.Width, config.Height, len(sc.Spheres), len(sc.Lights), pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start()
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			pool.SubmitTask(PixelTask{X: x, Y: y})
		}
	}
	pool.Stop()

	var stats RenderStats
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	stats.finalize(time.Since(startTime))

	logger.Printf("Rendered %d pixels in %v: %d hit, %.2f bounces/pixel (max %d)\n",
		stats.TotalPixels, stats.Elapsed, stats.HitPixels, stats.AverageBounces, stats.MaxBouncesUsed)

	return frame, stats, nil
}
