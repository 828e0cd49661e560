package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	HitPixels      int           // Pixels whose primary ray hit a sphere
	TotalBounces   int           // Surface hits across all pixels
	AverageBounces float64       // Bounces per pixel
	MaxBouncesUsed int           // Most bounces taken by any pixel
	Elapsed        time.Duration // Wall time of the render
}

// addPixel records one finished pixel
func (s *RenderStats) addPixel(bounces int) {
	s.TotalPixels++
	if bounces > 0 {
		s.HitPixels++
	}
	s.TotalBounces += bounces
	s.MaxBouncesUsed = max(s.MaxBouncesUsed, bounces)
}

// merge folds a worker's local statistics into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.TotalBounces += other.TotalBounces
	s.MaxBouncesUsed = max(s.MaxBouncesUsed, other.MaxBouncesUsed)
}

// finalize calculates derived statistics once every worker has reported
func (s *RenderStats) finalize(elapsed time.Duration) {
	s.Elapsed = elapsed
	if s.TotalPixels > 0 {
		s.AverageBounces = float64(s.TotalBounces) / float64(s.TotalPixels)
	}
}
