package lights

import "github.com/df07/go-sphere-pathtracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for sources sampled during direct illumination
type Light interface {
	Type() LightType

	// Sample returns the direction FROM the shading point TO the light,
	// the distance to it and the intensity arriving at the point
	Sample(point core.Vec3) LightSample
}

// LightSample contains the light seen from a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Intensity core.Vec3 // Light color attenuated over Distance
}
