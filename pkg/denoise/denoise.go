// Package denoise reduces Monte Carlo noise in a rendered color buffer,
// optionally guided by first-hit normal and albedo buffers.
package denoise

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when a buffer does not hold
// width*height RGB triples
var ErrDimensionMismatch = errors.New("buffer size does not match image dimensions")

// Request carries interleaved RGB float32 buffers, row-major from the top
// left. Normal and Albedo are optional and must be both set or both nil.
type Request struct {
	Width  int
	Height int
	Color  []float32
	Normal []float32
	Albedo []float32
}

// Filter is a black-box denoiser. The returned buffer replaces Color.
type Filter interface {
	Denoise(req Request) ([]float32, error)
}

// HasGuides reports whether the request carries feature buffers
func (r Request) HasGuides() bool {
	return r.Normal != nil && r.Albedo != nil
}

// Validate checks buffer sizes against the image dimensions
func (r Request) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, r.Width, r.Height)
	}
	expected := r.Width * r.Height * 3
	if len(r.Color) != expected {
		return fmt.Errorf("%w: color has %d values, want %d", ErrDimensionMismatch, len(r.Color), expected)
	}
	if (r.Normal == nil) != (r.Albedo == nil) {
		return fmt.Errorf("%w: normal and albedo must be provided together", ErrDimensionMismatch)
	}
	if r.HasGuides() {
		if len(r.Normal) != expected {
			return fmt.Errorf("%w: normal has %d values, want %d", ErrDimensionMismatch, len(r.Normal), expected)
		}
		if len(r.Albedo) != expected {
			return fmt.Errorf("%w: albedo has %d values, want %d", ErrDimensionMismatch, len(r.Albedo), expected)
		}
	}
	return nil
}
