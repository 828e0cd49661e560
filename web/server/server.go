package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxScale   = 4
	maxWorkers = 256
)

var errUnknownScene = errors.New("unknown scene")

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	renders   atomic.Int64
}

// NewServer creates a new web server that also offers the scene files found
// in the nearest scenes directory
func NewServer(port int) *Server {
	return &Server{port: port, scenesDir: scene.FindScenesDir()}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene id from /api/scenes
	Scale   int    `json:"scale"`   // Frame and scene enlargement
	Workers int    `json:"workers"` // Parallel workers
}

// renderConfig builds the frame driver configuration for the request
func (req *RenderRequest) renderConfig() renderer.Config {
	config := renderer.DefaultConfig(req.Scale)
	config.NumWorkers = req.Workers
	return config
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	HitPixels      int     `json:"hitPixels"`
	TotalBounces   int     `json:"totalBounces"`
	AverageBounces float64 `json:"averageBounces"`
	MaxBouncesUsed int     `json:"maxBouncesUsed"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		HitPixels:      stats.HitPixels,
		TotalBounces:   stats.TotalBounces,
		AverageBounces: stats.AverageBounces,
		MaxBouncesUsed: stats.MaxBouncesUsed,
	}
}

// Handler returns the API routes
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/image", s.handleImage)
	e.GET("/api/inspect", s.handleInspect)
	return e
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.Handler().Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// badRequest reports a client error as JSON
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "host": renderer.HostDescription()})
}

// handleScenes lists every scene the server can render
func (s *Server) handleScenes(c echo.Context) error {
	listing, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, listing)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Scale, err = parseIntParam(values, "scale", 1, 1, maxScale); err != nil {
		return nil, err
	}
	defaultWorkers := min(renderer.DefaultWorkerCount(), maxWorkers)
	if req.Workers, err = parseIntParam(values, "workers", defaultWorkers, 1, maxWorkers); err != nil {
		return nil, err
	}
	return req, nil
}

// resolveScene builds a listed scene. Arbitrary file paths are refused.
func (s *Server) resolveScene(name string, scale int) (*scene.Scene, error) {
	listing, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, group := range listing.Groups {
		for _, info := range group.Scenes {
			if info.ID == name {
				return scene.ByName(name, scale)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", errUnknownScene, name)
}

// sceneError reports an unknown scene as a client error and any other
// failure to build one as a server error
func sceneError(c echo.Context, err error) error {
	if errors.Is(err, errUnknownScene) {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// nextRenderID names a render in the server log and console events
func (s *Server) nextRenderID() string {
	return fmt.Sprintf("render-%d", s.renders.Add(1))
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
