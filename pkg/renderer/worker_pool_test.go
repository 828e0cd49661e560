package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestWorkerPool_ReportsOncePerWorker(t *testing.T) {
	sc := scene.NewSingleSphereScene()
	config := DefaultConfig(1)
	config.NumWorkers = 3
	frame := NewFrameBuffer(config.Width, config.Height)

	pool := NewWorkerPool(sc, config, frame)
	if pool.GetNumWorkers() != 3 {
		t.Fatalf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	pool.Start()
	// One row through the middle of the sphere
	for x := 0; x < config.Width; x++ {
		pool.SubmitTask(PixelTask{X: x, Y: 300})
	}
	pool.Stop()

	reports := 0
	seen := make(map[int]bool)
	var total RenderStats
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if seen[result.WorkerID] {
			t.Errorf("Worker %d reported twice", result.WorkerID)
		}
		seen[result.WorkerID] = true
		total.merge(result.Stats)
		reports++
	}

	if reports != 3 {
		t.Errorf("Expected 3 reports, got %d", reports)
	}
	if total.TotalPixels != config.Width {
		t.Errorf("Expected %d pixels, got %d", config.Width, total.TotalPixels)
	}
	// The sphere spans x in (300, 500) on this row
	if total.HitPixels < 190 || total.HitPixels > 201 {
		t.Errorf("Expected about 199 hits across the sphere, got %d", total.HitPixels)
	}
}
