package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to direct light and how much
// energy survives a mirror bounce
type Material struct {
	Diffuse      core.Color `json:"diffuse"`      // Lambertian albedo per channel
	Reflectivity float32    `json:"reflectivity"` // 0.0 = matte, 1.0 = perfect mirror
}

// NewMaterial creates a new material
func NewMaterial(diffuse core.Color, reflectivity float32) Material {
	return Material{Diffuse: diffuse, Reflectivity: reflectivity}
}

// Validate checks that the reflectivity lies in [0,1]
func (m Material) Validate() error {
	if !(m.Reflectivity >= 0 && m.Reflectivity <= 1) {
		return fmt.Errorf("reflectivity must be in [0,1], got %g", m.Reflectivity)
	}
	return nil
}
