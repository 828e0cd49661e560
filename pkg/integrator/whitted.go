package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator traces mirror reflections with direct Lambertian
// lighting and hard shadows from point lights
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// RayColor follows ray through successive mirror bounces. Each bounce adds
// its direct lighting scaled by the product of the reflectivities seen so
// far. Tracing stops when nothing is hit, the product reaches zero, or
// MaxDepth bounces have been taken.
func (w *WhittedIntegrator) RayColor(ray core.Ray, sc *scene.Scene) (core.Color, int) {
	var color core.Color
	coef := float32(1.0)
	level := 0

	for coef > 0 && level < w.config.MaxDepth {
		hit, isHit := FirstHit(ray, sc, w.config)
		if !isHit {
			break
		}

		mat := sc.MaterialFor(sc.Spheres[hit.SphereIndex])
		color = w.Shade(color, hit.Point, hit.Normal, mat, coef, sc)

		coef *= mat.Reflectivity
		ray = core.NewRay(hit.Point, ray.Direction.Reflect(hit.Normal))
		level++
	}

	return color, level
}

// Hit describes the nearest sphere a ray strikes
type Hit struct {
	SphereIndex int
	T           float32
	Point       core.Vec3
	Normal      core.Vec3
}

// FirstHit returns the nearest sphere along ray within (Epsilon, FarPlane)
func FirstHit(ray core.Ray, sc *scene.Scene, config Config) (Hit, bool) {
	sphere, t, isHit := closestHit(ray, sc, config)
	if !isHit {
		return Hit{}, false
	}
	point := ray.At(t)
	normal, ok := sc.Spheres[sphere].Normal(point)
	if !ok {
		return Hit{}, false
	}
	return Hit{SphereIndex: sphere, T: t, Point: point, Normal: normal}, true
}

// closestHit scans every sphere, narrowing the bound on each accepted hit
func closestHit(ray core.Ray, sc *scene.Scene, config Config) (int, float32, bool) {
	closestSoFar := config.FarPlane
	closest := -1

	for i, sphere := range sc.Spheres {
		if t, isHit := sphere.Hit(ray, config.Epsilon, closestSoFar); isHit {
			closestSoFar = t
			closest = i
		}
	}

	return closest, closestSoFar, closest >= 0
}

// Shade adds the direct lighting at point to acc. Lights behind the surface
// or blocked by any sphere contribute nothing.
func (w *WhittedIntegrator) Shade(acc core.Color, point, normal core.Vec3, mat material.Material, coef float32, sc *scene.Scene) core.Color {
	for _, light := range sc.Lights {
		sample, ok := light.Sample(point, normal)
		if !ok {
			continue
		}

		shadowRay := core.NewRay(point, sample.Direction)
		if w.occluded(shadowRay, sample.Distance, sc) {
			continue
		}

		lambert := sample.Direction.Dot(normal) * coef
		acc = acc.Add(sample.Emission.MultiplyColor(mat.Diffuse).Multiply(lambert))
	}
	return acc
}

// occluded reports whether any sphere lies on the ray before distance
func (w *WhittedIntegrator) occluded(shadowRay core.Ray, distance float32, sc *scene.Scene) bool {
	for _, sphere := range sc.Spheres {
		if _, isHit := sphere.Hit(shadowRay, w.config.Epsilon, distance); isHit {
			return true
		}
	}
	return false
}
