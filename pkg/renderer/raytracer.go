package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// forward is the fixed viewing direction of the orthographic camera
var forward = core.NewVec3(0, 0, 1)

// Raytracer turns pixels into colors. It keeps no per-pixel state, so one
// instance per worker is enough.
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer
func NewRaytracer(sc *scene.Scene, config Config) *Raytracer {
	return &Raytracer{
		scene:      sc,
		config:     config,
		integrator: integrator.NewWhittedIntegrator(config.Integrator),
	}
}

// primaryRay returns the orthographic ray through pixel (x, y)
func (rt *Raytracer) primaryRay(x, y int) core.Ray {
	return core.NewRay(core.NewVec3(float32(x), float32(y), rt.config.CameraZ), forward)
}

// TracePixel returns the unclamped color of pixel (x, y) and its bounce count
func (rt *Raytracer) TracePixel(x, y int) (core.Color, int) {
	return rt.integrator.RayColor(rt.primaryRay(x, y), rt.scene)
}

// RenderPixel traces pixel (x, y) and stores it in fb
func (rt *Raytracer) RenderPixel(x, y int, fb *FrameBuffer) int {
	color, bounces := rt.TracePixel(x, y)
	fb.Set(x, y, color.ToRGB8())
	return bounces
}

// PixelInfo describes what the primary ray of a pixel sees
type PixelInfo struct {
	X, Y     int
	Hit      bool
	Sphere   int // Index into Scene.Spheres, -1 on a miss
	Distance float32
	Point    core.Vec3
	Normal   core.Vec3
	Color    core.Color
	RGB      [3]byte
	Bounces  int
}

// InspectPixel traces pixel (x, y) and reports its first hit and final color
func (rt *Raytracer) InspectPixel(x, y int) PixelInfo {
	info := PixelInfo{X: x, Y: y, Sphere: -1}

	if hit, ok := integrator.FirstHit(rt.primaryRay(x, y), rt.scene, rt.config.Integrator); ok {
		info.Hit = true
		info.Sphere = hit.SphereIndex
		info.Distance = hit.T
		info.Point = hit.Point
		info.Normal = hit.Normal
	}

	info.Color, info.Bounces = rt.TracePixel(x, y)
	info.RGB = info.Color.ToRGB8()
	return info
}
