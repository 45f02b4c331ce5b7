package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// AuxSample is a radiance sample together with the first-hit feature
// buffers used to guide denoising
type AuxSample struct {
	Color  core.Vec3 // Radiance along the ray
	Normal core.Vec3 // Outward normal at the first hit, or the ray direction on a miss
	Albedo core.Vec3 // Attenuation at the first hit, or the sky color on a miss
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// CastRay computes the radiance arriving along ray with at most depth
	// further bounces
	CastRay(ray core.Ray, depth int, sampler core.Sampler) core.Vec3

	// CastRayWithAux is CastRay that also reports the first-hit features
	CastRayWithAux(ray core.Ray, depth int, sampler core.Sampler) AuxSample
}
