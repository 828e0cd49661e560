package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the red, green and blue mirror spheres lit by three
// point lights, laid out for an 800x600 frame. Every coordinate and radius is
// multiplied by scale so the frame can be enlarged by the same factor.
func NewDefaultScene(scale int) *Scene {
	s := &Scene{}

	red := s.AddMaterial(material.NewMaterial(core.NewColor(1, 0, 0), 0.2))
	green := s.AddMaterial(material.NewMaterial(core.NewColor(0, 1, 0), 0.5))
	blue := s.AddMaterial(material.NewMaterial(core.NewColor(0, 0, 1), 0.9))

	s.AddSphere(core.NewVec3(200, 300, 0), 100, red)
	s.AddSphere(core.NewVec3(400, 400, 0), 100, green)
	s.AddSphere(core.NewVec3(500, 140, 0), 100, blue)

	s.AddPointLight(core.NewVec3(0, 240, -100), core.NewColor(1, 1, 1))
	s.AddPointLight(core.NewVec3(3200, 3000, -1000), core.NewColor(0.6, 0.7, 1))
	s.AddPointLight(core.NewVec3(600, 0, -100), core.NewColor(0.3, 0.5, 1))

	if scale == 1 {
		return s
	}
	return s.Scale(float32(scale))
}

// NewSingleSphereScene creates one red sphere in the middle of an 800x600
// frame with a white light up and to the left
func NewSingleSphereScene() *Scene {
	s := &Scene{}
	red := s.AddMaterial(material.NewMaterial(core.NewColor(1, 0, 0), 0.2))
	s.AddSphere(core.NewVec3(400, 300, 0), 100, red)
	s.AddPointLight(core.NewVec3(0, 240, -100), core.NewColor(1, 1, 1))
	return s
}
