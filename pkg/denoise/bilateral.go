package denoise

import (
	"github.com/chewxy/math32"
)

// Bilateral is an edge-preserving joint bilateral filter. Neighbors are
// weighted by screen distance and color difference, and, when guides are
// present, by normal and albedo difference so that geometric edges stay
// sharp.
type Bilateral struct {
	Radius      int     // Half-width of the filter window in pixels
	SigmaS      float32 // Spatial falloff in pixels
	SigmaR      float32 // Color falloff
	SigmaNormal float32 // Normal falloff
	SigmaAlbedo float32 // Albedo falloff
}

// NewBilateral returns a filter with the default parameters
func NewBilateral() *Bilateral {
	return &Bilateral{
		Radius:      2,
		SigmaS:      1.0,
		SigmaR:      0.15,
		SigmaNormal: 0.3,
		SigmaAlbedo: 0.1,
	}
}

// Denoise implements Filter
func (b *Bilateral) Denoise(req Request) ([]float32, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out := make([]float32, len(req.Color))
	invS := falloff(b.SigmaS)
	invR := falloff(b.SigmaR)
	invN := falloff(b.SigmaNormal)
	invA := falloff(b.SigmaAlbedo)
	guided := req.HasGuides()

	for y := 0; y < req.Height; y++ {
		for x := 0; x < req.Width; x++ {
			center := (y*req.Width + x) * 3
			var sumR, sumG, sumB, sumW float32

			for dy := -b.Radius; dy <= b.Radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= req.Height {
					continue
				}
				for dx := -b.Radius; dx <= b.Radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= req.Width {
						continue
					}
					neighbor := (ny*req.Width + nx) * 3

					exponent := float32(dx*dx+dy*dy) * invS
					exponent += distanceSq(req.Color, center, neighbor) * invR
					if guided {
						exponent += distanceSq(req.Normal, center, neighbor) * invN
						exponent += distanceSq(req.Albedo, center, neighbor) * invA
					}
					w := math32.Exp(-exponent)

					sumR += w * req.Color[neighbor]
					sumG += w * req.Color[neighbor+1]
					sumB += w * req.Color[neighbor+2]
					sumW += w
				}
			}

			// The center pixel always contributes with weight 1
			out[center] = sumR / sumW
			out[center+1] = sumG / sumW
			out[center+2] = sumB / sumW
		}
	}

	return out, nil
}

// falloff converts a sigma into the Gaussian exponent scale. A
// non-positive sigma disables that term.
func falloff(sigma float32) float32 {
	if sigma <= 0 {
		return 0
	}
	return 1 / (2 * sigma * sigma)
}

func distanceSq(buf []float32, a, b int) float32 {
	dr := buf[a] - buf[b]
	dg := buf[a+1] - buf[b+1]
	db := buf[a+2] - buf[b+2]
	return dr*dr + dg*dg + db*db
}

