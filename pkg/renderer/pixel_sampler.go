package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// pixelSampler keeps sampling one pixel until its average stops changing
type pixelSampler struct {
	integrator integrator.Integrator
	projection geometry.Projection
	config     RaytracingConfig
}

func newPixelSampler(integ integrator.Integrator, projection geometry.Projection, config RaytracingConfig) *pixelSampler {
	return &pixelSampler{integrator: integ, projection: projection, config: config}
}

// samplePixel runs the adaptive loop for pixel (x, y)
func (p *pixelSampler) samplePixel(x, y int, sampler core.Sampler) PixelStats {
	var stats PixelStats
	depth := int(p.config.MaxBounceDepth)

	for stats.Attempts() < p.config.MaxSamplesPerPixel && !stats.Converged(p.config.ConvergenceThreshold) {
		px, py := float64(x), float64(y)
		if p.config.RaysPerPixel == 1 {
			px += 0.5
			py += 0.5
		} else {
			px += sampler.Get1D()
			py += sampler.Get1D()
		}

		ray := p.projection.Ray(px, py, sampler)
		sample := p.integrator.CastRayWithAux(ray, depth, sampler)
		if stats.AddSample(sample.Color) {
			stats.AddFeatures(sample.Normal, sample.Albedo)
		}
	}

	return stats
}
