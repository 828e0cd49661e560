package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits uniformly from a single position with no distance falloff
type PointLight struct {
	Position  core.Vec3  `json:"position"`
	Intensity core.Color `json:"intensity"`
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// LightSample describes the light as seen from a shading point
type LightSample struct {
	Direction core.Vec3  // Unit direction from the shading point to the light
	Distance  float32    // Distance to the light
	Emission  core.Color // Intensity arriving at the point
}

// Sample returns the light as seen from point. ok is false when the light
// lies on or behind the surface with the given normal, or at the point itself.
func (l PointLight) Sample(point, normal core.Vec3) (LightSample, bool) {
	toLight := l.Position.Subtract(point)
	if normal.Dot(toLight) <= 0 {
		return LightSample{}, false
	}

	distance := toLight.Length()
	if distance <= 0 {
		return LightSample{}, false
	}

	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Emission:  l.Intensity,
	}, true
}
