package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse describes what a single pixel sees
type InspectResponse struct {
	X            int         `json:"x"`
	Y            int         `json:"y"`
	Hit          bool        `json:"hit"`
	Sphere       int         `json:"sphere"` // -1 on a miss
	Distance     float32     `json:"distance,omitempty"`
	Point        *core.Vec3  `json:"point,omitempty"`
	Normal       *core.Vec3  `json:"normal,omitempty"`
	Diffuse      *core.Color `json:"diffuse,omitempty"`
	Reflectivity float32     `json:"reflectivity,omitempty"`
	Color        core.Color  `json:"color"`
	RGB          [3]byte     `json:"rgb"`
	Bounces      int         `json:"bounces"`
}

// handleInspect traces one pixel and reports its first hit and final color
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return badRequest(c, err)
	}
	sc, err := s.resolveScene(req.Scene, req.Scale)
	if err != nil {
		return sceneError(c, err)
	}

	config := req.renderConfig()
	x, err := parseIntParam(c.QueryParams(), "x", config.Width/2, 0, config.Width-1)
	if err != nil {
		return badRequest(c, err)
	}
	y, err := parseIntParam(c.QueryParams(), "y", config.Height/2, 0, config.Height-1)
	if err != nil {
		return badRequest(c, err)
	}

	info := renderer.NewRaytracer(sc, config).InspectPixel(x, y)
	response := InspectResponse{
		X:       info.X,
		Y:       info.Y,
		Hit:     info.Hit,
		Sphere:  info.Sphere,
		Color:   info.Color,
		RGB:     info.RGB,
		Bounces: info.Bounces,
	}
	if info.Hit {
		mat := sc.MaterialFor(sc.Spheres[info.Sphere])
		response.Distance = info.Distance
		response.Point = &info.Point
		response.Normal = &info.Normal
		response.Diffuse = &mat.Diffuse
		response.Reflectivity = mat.Reflectivity
	}
	return c.JSON(http.StatusOK, response)
}
