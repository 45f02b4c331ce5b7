package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Glass represents a transparent material that can both reflect and refract
type Glass struct {
	Color           core.Vec3
	RefractionIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewGlass creates a new glass material
func NewGlass(color core.Vec3, refractionIndex float64) Glass {
	return Glass{Color: color, RefractionIndex: refractionIndex}
}

func (g Glass) Attenuation() core.Vec3 { return g.Color }

func (g Glass) Specular(lightDir, normal, viewDir core.Vec3) core.Vec3 { return black }

// Scatter refracts through the surface, falling back to reflection on total
// internal reflection or when the Schlick draw picks reflection
func (g Glass) Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	normal := hit.EffectiveNormal()

	// Entering: air to glass. Exiting: glass to air.
	refractionRatio := 1.0 / g.RefractionIndex
	if hit.Inside {
		refractionRatio = g.RefractionIndex
	}

	cosTheta := math.Min(math.Abs(dirIn.Dot(normal)), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if refractionRatio*sinTheta > 1.0 || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = dirIn.Reflect(normal)
	} else {
		direction = refract(dirIn, normal, cosTheta, refractionRatio)
	}

	return core.NewRay(hit.Point, direction.Normalize()), true
}

func (Glass) isMaterial() {}

// refract bends uv through a surface with normal n using Snell's law
func refract(uv, n core.Vec3, cosTheta, etaiOverEtat float64) core.Vec3 {
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
