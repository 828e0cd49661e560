package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once and
// only read while rendering, so workers share it without synchronization.
type Scene struct {
	Spheres   []geometry.Sphere   `json:"spheres"`
	Materials []material.Material `json:"materials"`
	Lights    []lights.PointLight `json:"lights"`
}

// MaterialFor returns the material referenced by a sphere
func (s *Scene) MaterialFor(sphere geometry.Sphere) material.Material {
	return s.Materials[sphere.MaterialID]
}

// Validate checks the invariants the renderer relies on
func (s *Scene) Validate() error {
	for i, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
	}
	for i, sp := range s.Spheres {
		if !(sp.Radius > 0) {
			return fmt.Errorf("sphere %d: radius must be > 0, got %g", i, sp.Radius)
		}
		if sp.MaterialID < 0 || sp.MaterialID >= len(s.Materials) {
			return fmt.Errorf("sphere %d: material %d out of range [0,%d)", i, sp.MaterialID, len(s.Materials))
		}
	}
	return nil
}

// Scale returns a copy of the scene with every position and radius
// multiplied by factor. Materials and light intensities are unchanged.
func (s *Scene) Scale(factor float32) *Scene {
	scaled := &Scene{
		Spheres:   make([]geometry.Sphere, len(s.Spheres)),
		Materials: append([]material.Material(nil), s.Materials...),
		Lights:    make([]lights.PointLight, len(s.Lights)),
	}
	for i, sp := range s.Spheres {
		scaled.Spheres[i] = geometry.NewSphere(sp.Center.Multiply(factor), sp.Radius*factor, sp.MaterialID)
	}
	for i, l := range s.Lights {
		scaled.Lights[i] = lights.NewPointLight(l.Position.Multiply(factor), l.Intensity)
	}
	return scaled
}

// AddSphere appends a sphere and returns its index
func (s *Scene) AddSphere(center core.Vec3, radius float32, materialID int) int {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, materialID))
	return len(s.Spheres) - 1
}

// AddMaterial appends a material and returns its id
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddPointLight appends a point light
func (s *Scene) AddPointLight(position core.Vec3, intensity core.Color) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}
