package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Color core.Vec3 // Metal color
	Fuzz  float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(color core.Vec3, fuzz float64) Metal {
	return Metal{Color: color, Fuzz: clampFuzz(fuzz)}
}

// WithFuzz returns a copy of the metal with a different fuzz
func (m Metal) WithFuzz(fuzz float64) Metal {
	m.Fuzz = clampFuzz(fuzz)
	return m
}

func clampFuzz(fuzz float64) float64 {
	return max(0.0, min(1.0, fuzz))
}

func (m Metal) Attenuation() core.Vec3 { return m.Color }

func (m Metal) Specular(lightDir, normal, viewDir core.Vec3) core.Vec3 { return black }

// Scatter reflects about the effective normal. Fuzz perturbs the reflection
// and rays pushed below the surface are absorbed.
func (m Metal) Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.EffectiveNormal()
	direction := dirIn.Reflect(normal)

	if m.Fuzz > 0 {
		direction = direction.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	if direction.Dot(normal) <= 0 {
		return core.Ray{}, false
	}
	return core.NewRay(hit.Point, direction.Normalize()), true
}

func (Metal) isMaterial() {}
