package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DisplacementDistance moves secondary ray origins off the surface they
// start on so they do not hit it again
const DisplacementDistance = 1e-7

// PathTracer combines direct light sampling at diffuse surfaces with
// recursive tracing of one scattered ray per bounce
type PathTracer struct {
	scene *scene.Scene
}

// NewPathTracer creates a path tracer for a scene
func NewPathTracer(s *scene.Scene) *PathTracer {
	return &PathTracer{scene: s}
}

// CastRay implements Integrator
func (pt *PathTracer) CastRay(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := pt.scene.Raycast(ray)
	if !isHit {
		return pt.scene.Sky(ray.Direction)
	}
	return pt.shade(ray, hit, depth, sampler)
}

// CastRayWithAux implements Integrator
func (pt *PathTracer) CastRayWithAux(ray core.Ray, depth int, sampler core.Sampler) AuxSample {
	hit, isHit := pt.scene.Raycast(ray)
	if !isHit {
		sky := pt.scene.Sky(ray.Direction)
		return AuxSample{Color: sky, Normal: ray.Direction, Albedo: sky}
	}
	return AuxSample{
		Color:  pt.shade(ray, hit, depth, sampler),
		Normal: hit.Normal,
		Albedo: pt.scene.ObjectMaterial(hit).Attenuation(),
	}
}

func (pt *PathTracer) shade(ray core.Ray, hit core.HitRecord, depth int, sampler core.Sampler) core.Vec3 {
	mat := pt.scene.ObjectMaterial(hit)
	direct := pt.directLighting(ray.Direction, hit, mat)
	indirect := pt.indirectLighting(ray.Direction, hit, mat, depth, sampler)
	return direct.Add(indirect)
}

// directLighting sums the unoccluded point lights at diffuse surfaces.
// Specular and transmissive materials only see lights through scattering.
func (pt *PathTracer) directLighting(dirIn core.Vec3, hit core.HitRecord, mat material.Material) core.Vec3 {
	switch mat.(type) {
	case material.Glass, material.Metal, material.Portal:
		return core.Vec3{}
	}

	normal := hit.EffectiveNormal()
	shadowOrigin := hit.Point.Add(normal.Multiply(DisplacementDistance))
	attenuation := mat.Attenuation()

	color := core.Vec3{}
	for _, light := range pt.scene.Lights {
		sample := light.Sample(hit.Point)

		// Check if light is visible (shadow ray)
		blocker, blocked := pt.scene.Raycast(core.NewRay(shadowOrigin, sample.Direction))
		if blocked && blocker.Distance < sample.Distance {
			continue
		}

		cosine := math.Abs(hit.Normal.Dot(sample.Direction))
		diffuse := sample.Intensity.MultiplyVec(attenuation).Multiply(cosine)
		specular := sample.Intensity.MultiplyVec(mat.Specular(sample.Direction, normal, dirIn))
		color = color.Add(diffuse).Add(specular)
	}
	return color
}

// indirectLighting follows one scattered ray and adds emission
func (pt *PathTracer) indirectLighting(dirIn core.Vec3, hit core.HitRecord, mat material.Material, depth int, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}

	if depth > 0 {
		if scattered, ok := scatterRay(dirIn, hit, mat, sampler); ok {
			color = pt.CastRay(scattered, depth-1, sampler).MultiplyVec(mat.Attenuation())
		}
	}

	if emitter, ok := mat.(material.Emitter); ok {
		color = color.Add(emitter.Emitted())
	}
	return color
}

// scatterRay asks the material for the next ray and moves its origin off
// the surface, to the side the ray travels into
func scatterRay(dirIn core.Vec3, hit core.HitRecord, mat material.Material, sampler core.Sampler) (core.Ray, bool) {
	scattered, ok := mat.Scatter(dirIn, hit, sampler)
	if !ok {
		return core.Ray{}, false
	}

	offset := hit.Normal.Multiply(DisplacementDistance)
	if hit.Normal.Dot(scattered.Direction) < 0 {
		offset = offset.Negate()
	}
	scattered.Origin = scattered.Origin.Add(offset)
	return scattered, true
}
