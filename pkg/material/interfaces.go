package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material is the closed set of surface behaviors: Emission, Diffuse,
// Metal, Glass and Portal. The unexported marker keeps the set sealed so
// type switches over it stay exhaustive.
type Material interface {
	// Attenuation returns the albedo multiplied into returned radiance
	Attenuation() core.Vec3

	// Specular returns the additive highlight for direct lighting
	Specular(lightDir, normal, viewDir core.Vec3) core.Vec3

	// Scatter decides whether the surface re-emits a ray. The returned
	// ray originates at the hit point unless the material moves it.
	// false means the path is absorbed at this vertex.
	Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool)

	isMaterial()
}

// Emitter is implemented by materials that add light of their own
type Emitter interface {
	Emitted() core.Vec3
}

var black = core.Vec3{X: 0, Y: 0, Z: 0}

// scatterLambertian sends the ray in a cosine-weighted direction about the
// normal facing the incoming ray
func scatterLambertian(hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.EffectiveNormal()
	direction := normal.Add(core.RandomUnitVector(sampler)).Normalize()
	return core.NewRay(hit.Point, direction), true
}
