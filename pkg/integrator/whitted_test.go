package integrator

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const tolerance = 1e-4

func colorNear(a, b core.Color) bool {
	return math32.Abs(a.R-b.R) < tolerance &&
		math32.Abs(a.G-b.G) < tolerance &&
		math32.Abs(a.B-b.B) < tolerance
}

// facingMirrors builds two spheres facing each other along Z so a ray fired
// down the axis between them bounces forever
func facingMirrors(reflectivity float32) *scene.Scene {
	s := &scene.Scene{}
	mirror := s.AddMaterial(material.NewMaterial(core.NewColor(1, 1, 1), reflectivity))
	s.AddSphere(core.NewVec3(0, 0, 200), 100, mirror)
	s.AddSphere(core.NewVec3(0, 0, -200), 100, mirror)
	return s
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero epsilon", Config{Epsilon: 0, MaxDepth: 15, FarPlane: 20000}, true},
		{"zero depth", Config{Epsilon: 0.001, MaxDepth: 0, FarPlane: 20000}, true},
		{"far plane below epsilon", Config{Epsilon: 0.001, MaxDepth: 15, FarPlane: 0.0001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError != (err != nil) {
				t.Errorf("Expected error=%t, got %v", tt.expectError, err)
			}
		})
	}
}

func TestShade_LitAndShadowed(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 0, -1)
	white := material.NewMaterial(core.NewColor(1, 1, 1), 0)
	integrator := NewWhittedIntegrator(DefaultConfig())

	lit := &scene.Scene{}
	lit.AddMaterial(white)
	lit.AddPointLight(core.NewVec3(0, 0, -100), core.NewColor(1, 1, 1))

	color := integrator.Shade(core.Color{}, point, normal, white, 1, lit)
	if !colorNear(color, core.NewColor(1, 1, 1)) {
		t.Errorf("Expected full contribution (1, 1, 1), got %v", color)
	}

	shadowed := &scene.Scene{}
	shadowed.AddMaterial(white)
	shadowed.AddPointLight(core.NewVec3(0, 0, -100), core.NewColor(1, 1, 1))
	shadowed.AddSphere(core.NewVec3(0, 0, -50), 10, 0)

	color = integrator.Shade(core.Color{}, point, normal, white, 1, shadowed)
	if !color.IsBlack() {
		t.Errorf("Expected shadowed point to receive nothing, got %v", color)
	}
}

func TestShade_OccluderBeyondLight(t *testing.T) {
	white := material.NewMaterial(core.NewColor(1, 1, 1), 0)
	s := &scene.Scene{}
	s.AddMaterial(white)
	s.AddPointLight(core.NewVec3(0, 0, -100), core.NewColor(1, 1, 1))
	s.AddSphere(core.NewVec3(0, 0, -300), 50, 0)

	color := NewWhittedIntegrator(DefaultConfig()).Shade(core.Color{}, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), white, 1, s)
	if color.IsBlack() {
		t.Error("Expected a sphere behind the light not to cast a shadow")
	}
}

func TestShade_Lambert(t *testing.T) {
	integrator := NewWhittedIntegrator(DefaultConfig())
	mat := material.NewMaterial(core.NewColor(1, 0.5, 0), 0)

	tests := []struct {
		name     string
		light    core.Vec3
		coef     float32
		expected core.Color
	}{
		{"head on", core.NewVec3(0, 0, -10), 1, core.NewColor(1, 0.5, 0)},
		{"60 degrees", core.NewVec3(0, math32.Sqrt(3), -1).Multiply(10), 1, core.NewColor(0.5, 0.25, 0)},
		{"attenuated by coefficient", core.NewVec3(0, 0, -10), 0.25, core.NewColor(0.25, 0.125, 0)},
		{"behind surface", core.NewVec3(0, 0, 10), 1, core.NewColor(0, 0, 0)},
		{"in tangent plane", core.NewVec3(10, 0, 0), 1, core.NewColor(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scene.Scene{}
			s.AddMaterial(mat)
			s.AddPointLight(tt.light, core.NewColor(1, 1, 1))

			color := integrator.Shade(core.Color{}, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), mat, tt.coef, s)
			if !colorNear(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestShade_AccumulatesIntoRunningColor(t *testing.T) {
	mat := material.NewMaterial(core.NewColor(0, 1, 0), 0)
	s := &scene.Scene{}
	s.AddMaterial(mat)
	s.AddPointLight(core.NewVec3(0, 0, -10), core.NewColor(0.5, 0.5, 0.5))
	s.AddPointLight(core.NewVec3(0, 0, -20), core.NewColor(0.25, 0.25, 0.25))

	acc := core.NewColor(0.3, 0.1, 0)
	color := NewWhittedIntegrator(DefaultConfig()).Shade(acc, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), mat, 1, s)

	expected := core.NewColor(0.3, 0.85, 0)
	if !colorNear(color, expected) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestRayColor_Miss(t *testing.T) {
	s := scene.NewSingleSphereScene()
	ray := core.NewRay(core.NewVec3(0, 0, -2000), core.NewVec3(0, 0, 1))

	color, bounces := NewWhittedIntegrator(DefaultConfig()).RayColor(ray, s)
	if !color.IsBlack() || bounces != 0 {
		t.Errorf("Expected black with no bounces, got %v after %d bounces", color, bounces)
	}
}

func TestRayColor_TerminatesAtMaxDepth(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	tests := []struct {
		name         string
		reflectivity float32
		maxDepth     int
		expected     int
	}{
		{"perfect mirrors hit the cap", 1.0, 15, 15},
		{"lower cap", 1.0, 3, 3},
		{"partial mirrors hit the cap", 0.5, 15, 15},
		{"matte stops after one bounce", 0.0, 15, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.MaxDepth = tt.maxDepth

			_, bounces := NewWhittedIntegrator(config).RayColor(ray, facingMirrors(tt.reflectivity))
			if bounces != tt.expected {
				t.Errorf("Expected %d bounces, got %d", tt.expected, bounces)
			}
		})
	}
}

func TestRayColor_AttenuatesEachBounce(t *testing.T) {
	s := facingMirrors(0.5)
	// A light between the mirrors faces both of them, so every hit is lit
	s.AddPointLight(core.NewVec3(0, 0, 50), core.NewColor(1, 1, 1))

	config := DefaultConfig()
	config.MaxDepth = 4
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	color, bounces := NewWhittedIntegrator(config).RayColor(ray, s)
	if bounces != 4 {
		t.Fatalf("Expected 4 bounces, got %d", bounces)
	}

	// Head-on lighting at every bounce, halved each time
	expected := float32(1 + 0.5 + 0.25 + 0.125)
	if math32.Abs(color.R-expected) > tolerance {
		t.Errorf("Expected %f, got %f", expected, color.R)
	}
}

func TestRayColor_SingleSphereScene(t *testing.T) {
	s := scene.NewSingleSphereScene()
	integrator := NewWhittedIntegrator(DefaultConfig())

	// Dead center the light sits in the tangent plane of the hit point
	center := core.NewRay(core.NewVec3(400, 300, -2000), core.NewVec3(0, 0, 1))
	color, bounces := integrator.RayColor(center, s)
	if bounces != 1 {
		t.Errorf("Expected a single bounce, got %d", bounces)
	}
	if !color.IsBlack() {
		t.Errorf("Expected a grazing light to contribute nothing, got %v", color)
	}

	// Toward the light the surface is lit in the material's red only
	lit := core.NewRay(core.NewVec3(370, 290, -2000), core.NewVec3(0, 0, 1))
	color, bounces = integrator.RayColor(lit, s)
	if bounces != 1 {
		t.Errorf("Expected a single bounce, got %d", bounces)
	}
	if !(color.R > 0) || color.G != 0 || color.B != 0 {
		t.Errorf("Expected a red-only contribution, got %v", color)
	}
}

func TestFirstHit(t *testing.T) {
	s := &scene.Scene{}
	mat := s.AddMaterial(material.NewMaterial(core.NewColor(1, 1, 1), 0))
	s.AddSphere(core.NewVec3(0, 0, 10), 1, mat)
	s.AddSphere(core.NewVec3(0, 0, 5), 1, mat)

	hit, ok := FirstHit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), s, DefaultConfig())
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.SphereIndex != 1 {
		t.Errorf("Expected nearest sphere 1, got %d", hit.SphereIndex)
	}
	if math32.Abs(hit.T-4) > tolerance {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected normal (0, 0, -1), got %v", hit.Normal)
	}

	if _, ok := FirstHit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, 1)), s, DefaultConfig()); ok {
		t.Error("Expected a miss")
	}
}
