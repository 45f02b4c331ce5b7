package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Image size limits for web requests
const (
	MinImageSize = 16
	MaxImageSize = 2000
)

// Server handles web requests for the path tracer
type Server struct {
	config config.Config
	echo   *echo.Echo
}

// NewServer creates a new web server. Render settings not given in a
// request come from cfg.
func NewServer(cfg config.Config) *Server {
	s := &Server{config: cfg, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/render/stream", s.handleRenderStream)
	s.echo.GET("/api/inspect", s.handleInspect)
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string  `json:"scene"`     // Built-in scene name
	Width     int     `json:"width"`     // Image width
	Height    int     `json:"height"`    // Image height
	Threshold float64 `json:"threshold"` // Convergence threshold
	Depth     int     `json:"depth"`     // Maximum bounce depth
	Denoise   bool    `json:"denoise"`   // Apply the denoiser
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	MaxSamples       int     `json:"maxSamples"`
	MinSamples       int     `json:"minSamples"`
	MaxSamplesUsed   int     `json:"maxSamplesUsed"`
	DiscardedSamples int     `json:"discardedSamples"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      rs.TotalPixels,
		TotalSamples:     rs.TotalSamples,
		AverageSamples:   rs.AverageSamples,
		MaxSamples:       rs.MaxSamples,
		MinSamples:       rs.MinSamples,
		MaxSamplesUsed:   rs.MaxSamplesUsed,
		DiscardedSamples: rs.DiscardedSamples,
	}
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server fails or is closed
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.ServerAddress)
	if err := s.echo.Start(s.config.ServerAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListScenes())
}

// handleRender renders one frame and returns it as PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
	}

	sceneObj, err := scene.ByName(req.Scene)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	logger := NewWebLogger(fmt.Sprintf("render-%s", req.Scene), nil)
	result, err := renderer.NewRenderer(sceneObj, req.Width, req.Height, s.renderConfig(req), logger).Render()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
	}

	data, err := output.EncodePNG(result.Image)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set("X-Render-Time-Ms", strconv.FormatInt(result.Elapsed.Milliseconds(), 10))
	c.Response().Header().Set("X-Average-Samples", strconv.FormatFloat(result.Stats.AverageSamples, 'f', 1, 64))
	return c.Blob(http.StatusOK, "image/png", data)
}

// renderConfig applies the request settings on top of the server defaults
func (s *Server) renderConfig(req *RenderRequest) renderer.RaytracingConfig {
	cfg := s.config.Render
	cfg.ConvergenceThreshold = req.Threshold
	cfg.MaxBounceDepth = uint8(req.Depth)
	cfg.Denoise = req.Denoise
	return cfg
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{}

	if sceneName := values.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "simple"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.config.Width, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", s.config.Height, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Threshold, err = parseFloatParam(values, "threshold", s.config.Render.ConvergenceThreshold, 0.001, 10); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", int(s.config.Render.MaxBounceDepth), 0, 50); err != nil {
		return nil, err
	}
	if req.Denoise, err = parseBoolParam(values, "denoise", s.config.Render.Denoise); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.Depth > 10 {
		log.Printf("Render warning: Large image with deep bounces may render slowly")
	}

	return req, nil
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
