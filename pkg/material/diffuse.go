package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Default highlight parameters for diffuse surfaces
const (
	DefaultSpecularExponent = 100.0
	DefaultShininess        = 0.1
)

// Base is substituted for material names missing from a registry
var Base Material = NewDiffuse(core.NewVec3(0, 0, 0))

// Diffuse is a Lambertian surface with a two-lobe highlight: a broad sheen
// from the low Shininess exponent and a tight spot from SpecularExponent
type Diffuse struct {
	Color            core.Vec3
	SpecularColor    core.Vec3
	SpecularExponent float64
	Shininess        float64
}

// NewDiffuse creates a diffuse material with the default highlight
func NewDiffuse(color core.Vec3) Diffuse {
	return Diffuse{
		Color:            color,
		SpecularColor:    core.NewVec3(0.5, 0.5, 0.5),
		SpecularExponent: DefaultSpecularExponent,
		Shininess:        DefaultShininess,
	}
}

func (d Diffuse) Attenuation() core.Vec3 { return d.Color }

// Specular reflects the view direction about the normal and compares it
// with the light direction
func (d Diffuse) Specular(lightDir, normal, viewDir core.Vec3) core.Vec3 {
	alignment := lightDir.Dot(viewDir.Reflect(normal))
	if alignment <= 0 {
		return black
	}
	strength := math.Pow(alignment, d.Shininess) + math.Pow(alignment, d.SpecularExponent)
	return d.SpecularColor.Multiply(strength)
}

func (d Diffuse) Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	return scatterLambertian(hit, sampler)
}

func (Diffuse) isMaterial() {}
