package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ToneMap applies exposure and gamma and clamps to [0, 1]. Non-finite
// channels, which a denoiser may still produce, map to 0.
func ToneMap(c core.Vec3, exposure, gamma float64) core.Vec3 {
	c = c.Multiply(exposure)
	c = core.Vec3{X: finiteOrZero(c.X), Y: finiteOrZero(c.Y), Z: finiteOrZero(c.Z)}

	// Negative channels have no real fractional power
	c = c.Clamp(0.0, math.Inf(1))
	return c.Pow(gamma).Clamp(0.0, 1.0)
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// vec3ToColor converts a color in [0, 1] to RGBA, flooring each channel
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// toImage fills an image from a buffer after mapping every pixel
func toImage(width, height int, buf []core.Vec3, mapping func(core.Vec3) core.Vec3) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(mapping(buf[y*width+x])))
		}
	}
	return img
}

// normalToColor maps a unit normal from [-1, 1] into [0, 1]
func normalToColor(n core.Vec3) core.Vec3 {
	return n.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5)).Clamp(0.0, 1.0)
}

func clampUnit(c core.Vec3) core.Vec3 {
	return c.Clamp(0.0, 1.0)
}
