package lights

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// PointLight is an infinitely small light with softened inverse-square falloff
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// Type implements the Light interface
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Intensity returns the light color after travelling the given distance.
// The 1 + d² falloff stays finite next to the source.
func (pl *PointLight) Intensity(distance float64) core.Vec3 {
	return pl.Color.Multiply(1.0 / (1.0 + distance*distance))
}

// Sample implements the Light interface
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Intensity: pl.Intensity(distance),
	}
}
