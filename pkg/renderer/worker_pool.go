package renderer

import (
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PixelTask asks a worker to render a single pixel
type PixelTask struct {
	X, Y int
}

// WorkerResult carries a worker's statistics once its queue is drained
type WorkerResult struct {
	WorkerID int
	Stats    RenderStats
}

// WorkerPool manages parallel pixel rendering
type WorkerPool struct {
	taskQueue   chan PixelTask
	resultQueue chan WorkerResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders pixels from the shared queue into the frame buffer
type Worker struct {
	ID          int
	raytracer   *Raytracer
	frame       *FrameBuffer
	taskQueue   chan PixelTask
	resultQueue chan WorkerResult
	stats       RenderStats // Local to the worker until it reports
}

// NewWorkerPool creates a worker pool with config.NumWorkers workers
// writing into frame
func NewWorkerPool(sc *scene.Scene, config Config, frame *FrameBuffer) *WorkerPool {
	numWorkers := config.NumWorkers

	wp := &WorkerPool{
		taskQueue:   make(chan PixelTask, numWorkers*64),
		resultQueue: make(chan WorkerResult, numWorkers), // One report per worker
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   NewRaytracer(sc, config),
			frame:       frame,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued pixels to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask queues a pixel, blocking while the queue is full
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a worker report; ok is false once all have been read
func (wp *WorkerPool) GetResult() (WorkerResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Pixels own disjoint frame buffer slots, so no locking is needed
		bounces := w.raytracer.RenderPixel(task.X, task.Y, w.frame)
		w.stats.addPixel(bounces)
	}

	w.resultQueue <- WorkerResult{WorkerID: w.ID, Stats: w.stats}
}
