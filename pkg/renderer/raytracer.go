package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/denoise"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Result is a finished frame
type Result struct {
	Image   *image.RGBA // Tone-mapped frame
	Normals *image.RGBA // First-hit normals mapped to 0.5*n+0.5
	Albedo  *image.RGBA // First-hit albedo
	Stats   RenderStats
	Elapsed time.Duration
}

// Renderer rasterizes a scene into an image with adaptive sampling
type Renderer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     RaytracingConfig
	integrator integrator.Integrator
	denoiser   denoise.Filter
	logger     core.Logger
}

// NewRenderer creates a renderer using the path tracer and the bilateral
// denoiser
func NewRenderer(s *scene.Scene, width, height int, config RaytracingConfig, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPathTracer(s),
		denoiser:   denoise.NewBilateral(),
		logger:     logger,
	}
}

// SetDenoiser replaces the denoiser used when Denoise is enabled
func (r *Renderer) SetDenoiser(filter denoise.Filter) {
	r.denoiser = filter
}

// SetIntegrator replaces the light transport algorithm
func (r *Renderer) SetIntegrator(integ integrator.Integrator) {
	r.integrator = integ
}

// Render produces one frame. The scene must not change until it returns.
func (r *Renderer) Render() (*Result, error) {
	if err := r.config.Validate(r.width, r.height); err != nil {
		return nil, err
	}

	start := time.Now()
	fb := NewFrameBuffer(r.width, r.height)
	rows := &rowRenderer{
		pixels: newPixelSampler(r.integrator, r.scene.Camera.Projection(r.width, r.height), r.config),
		seed:   r.config.Seed,
		logger: r.logger,
	}

	var stats RenderStats
	if r.config.Parallel {
		stats = r.renderParallel(fb, rows)
	} else {
		random := rand.New(rand.NewSource(r.config.Seed))
		for y := 0; y < r.height; y++ {
			stats.merge(rows.renderRow(fb.Row(y), random))
		}
	}
	stats.finish(r.config.MaxSamplesPerPixel)

	if r.config.Denoise && r.denoiser != nil {
		if err := r.applyDenoise(fb); err != nil {
			r.logger.Printf("Denoise failed, keeping noisy image: %v\n", err)
		}
	}

	exposure, gamma := r.config.Exposure, r.config.Gamma
	result := &Result{
		Image: toImage(r.width, r.height, fb.Color, func(c core.Vec3) core.Vec3 {
			return ToneMap(c, exposure, gamma)
		}),
		Normals: toImage(r.width, r.height, fb.Normal, normalToColor),
		Albedo:  toImage(r.width, r.height, fb.Albedo, clampUnit),
		Stats:   stats,
		Elapsed: time.Since(start),
	}

	r.logger.Printf("Rendered %dx%d in %v: %.1f samples/pixel (min %d, max %d, discarded %d)\n",
		r.width, r.height, result.Elapsed, stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.DiscardedSamples)
	return result, nil
}

// renderParallel hands rows to a worker pool and waits for all of them
func (r *Renderer) renderParallel(fb *FrameBuffer, rows *rowRenderer) RenderStats {
	// The config package resolves 0 through gopsutil; callers building a
	// RaytracingConfig directly get one worker per CPU
	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	pool := NewWorkerPool(rows, r.height, numWorkers)
	pool.Start()
	for y := 0; y < r.height; y++ {
		pool.SubmitTask(RowTask{Row: fb.Row(y)})
	}
	pool.Stop()

	var stats RenderStats
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	return stats
}

// applyDenoise replaces the color buffer with the denoiser output
func (r *Renderer) applyDenoise(fb *FrameBuffer) error {
	req := denoise.Request{
		Width:  fb.Width,
		Height: fb.Height,
		Color:  float32s(fb.Color),
	}
	if r.config.DenoiseWithNormals {
		req.Normal = float32s(fb.Normal)
		req.Albedo = float32s(fb.Albedo)
	}

	out, err := r.denoiser.Denoise(req)
	if err != nil {
		return err
	}
	if len(out) != len(req.Color) {
		return fmt.Errorf("%w: denoiser returned %d values, want %d", denoise.ErrDimensionMismatch, len(out), len(req.Color))
	}
	setFloat32s(fb.Color, out)
	return nil
}
