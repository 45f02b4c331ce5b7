package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned for non-positive image sizes
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrInvalidConfig is returned for out-of-range render settings
	ErrInvalidConfig = errors.New("invalid raytracing config")
)

// RaytracingConfig contains rendering configuration
type RaytracingConfig struct {
	Exposure             float64 // Linear scale applied before gamma
	Gamma                float64 // Exponent applied to each channel
	RaysPerPixel         uint32  // 1 samples pixel centers only, anything else jitters
	MaxBounceDepth       uint8   // Maximum scattered bounces after the first hit
	ConvergenceThreshold float64 // Summed channel change that counts as converged
	Parallel             bool    // Render rows on a worker pool
	Denoise              bool    // Run the denoiser before tone mapping
	DenoiseWithNormals   bool    // Pass normal and albedo guides to the denoiser
	MaxSamplesPerPixel   int     // Safety cap on sample attempts per pixel
	NumWorkers           int     // Worker count for parallel renders, 0 = auto
	Seed                 int64   // Base seed, row y uses Seed+y
}

// DefaultRaytracingConfig returns sensible default values
func DefaultRaytracingConfig() RaytracingConfig {
	return RaytracingConfig{
		Exposure:             1.0,
		Gamma:                1.0 / 2.2,
		RaysPerPixel:         0,
		MaxBounceDepth:       5,
		ConvergenceThreshold: 0.2,
		Parallel:             true,
		Denoise:              false,
		DenoiseWithNormals:   true,
		MaxSamplesPerPixel:   4096,
		NumWorkers:           0,
		Seed:                 42,
	}
}

// Validate checks the configuration for an image of the given size
func (c RaytracingConfig) Validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if c.Exposure <= 0 {
		return fmt.Errorf("%w: exposure must be positive, got %g", ErrInvalidConfig, c.Exposure)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive, got %g", ErrInvalidConfig, c.Gamma)
	}
	if c.ConvergenceThreshold <= 0 {
		return fmt.Errorf("%w: convergence threshold must be positive, got %g", ErrInvalidConfig, c.ConvergenceThreshold)
	}
	if c.MaxSamplesPerPixel < 1 {
		return fmt.Errorf("%w: max samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.MaxSamplesPerPixel)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count cannot be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
