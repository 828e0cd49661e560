package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center     core.Vec3 `json:"center"`
	Radius     float32   `json:"radius"`
	MaterialID int       `json:"material"`
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, materialID int) Sphere {
	return Sphere{
		Center:     center,
		Radius:     radius,
		MaterialID: materialID,
	}
}

// Hit tests if a ray intersects with the sphere strictly between tMin and tMax.
// Only the nearer root of the quadratic is considered. Callers scanning a list
// of spheres pass the best t found so far as tMax, so a hit always narrows it.
func (s Sphere) Hit(ray core.Ray, tMin, tMax float32) (float32, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	dist := ray.Origin.Subtract(s.Center)
	b := 2 * ray.Direction.Dot(dist)
	c := dist.Dot(dist) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t1 < t0 {
		t0 = t1
	}

	if t0 > tMin && t0 < tMax {
		return t0, true
	}
	return 0, false
}

// Normal returns the outward unit normal at a point on the surface.
// ok is false when the point coincides with the center.
func (s Sphere) Normal(point core.Vec3) (core.Vec3, bool) {
	n := point.Subtract(s.Center)
	lengthSq := n.LengthSquared()
	if lengthSq == 0 {
		return core.Vec3{}, false
	}
	return n.Multiply(1.0 / math32.Sqrt(lengthSq)), true
}
