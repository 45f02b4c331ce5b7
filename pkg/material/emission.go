package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Emission is a light-emitting surface that also scatters diffusely
type Emission struct {
	Color    core.Vec3 // Diffuse albedo
	Emission core.Vec3 // Emitted radiance
}

// NewEmission creates a new emissive material
func NewEmission(color, emission core.Vec3) Emission {
	return Emission{Color: color, Emission: emission}
}

func (e Emission) Attenuation() core.Vec3 { return e.Color }

func (e Emission) Specular(lightDir, normal, viewDir core.Vec3) core.Vec3 { return black }

func (e Emission) Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	return scatterLambertian(hit, sampler)
}

// Emitted implements Emitter
func (e Emission) Emitted() core.Vec3 { return e.Emission }

func (Emission) isMaterial() {}
