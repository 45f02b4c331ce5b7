package renderer

import (
	"image"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ConvergenceInterval is the number of new samples between convergence checks
const ConvergenceInterval = 20

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int     // Total number of pixels rendered
	TotalSamples     int     // Total number of samples taken
	AverageSamples   float64 // Average samples per pixel
	MaxSamples       int     // Maximum samples allowed per pixel
	MinSamples       int     // Minimum samples taken per pixel
	MaxSamplesUsed   int     // Maximum samples actually used by any pixel
	DiscardedSamples int     // Non-finite samples dropped
}

// addPixel folds one finished pixel into the statistics
func (rs *RenderStats) addPixel(ps *PixelStats) {
	attempts := ps.SampleCount + ps.DiscardedCount
	if rs.TotalPixels == 0 || attempts < rs.MinSamples {
		rs.MinSamples = attempts
	}
	if attempts > rs.MaxSamplesUsed {
		rs.MaxSamplesUsed = attempts
	}
	rs.TotalPixels++
	rs.TotalSamples += attempts
	rs.DiscardedSamples += ps.DiscardedCount
}

// merge combines statistics from another set of pixels
func (rs *RenderStats) merge(other RenderStats) {
	if other.TotalPixels == 0 {
		return
	}
	if rs.TotalPixels == 0 || other.MinSamples < rs.MinSamples {
		rs.MinSamples = other.MinSamples
	}
	if other.MaxSamplesUsed > rs.MaxSamplesUsed {
		rs.MaxSamplesUsed = other.MaxSamplesUsed
	}
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.DiscardedSamples += other.DiscardedSamples
}

func (rs *RenderStats) finish(maxSamples int) {
	rs.MaxSamples = maxSamples
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum     core.Vec3 // RGB accumulator for final result
	NormalAccum    core.Vec3 // First-hit normal accumulator
	AlbedoAccum    core.Vec3 // First-hit albedo accumulator
	SampleCount    int       // Number of samples kept
	DiscardedCount int       // Number of non-finite samples dropped

	checkpointAccum core.Vec3 // ColorAccum at the last convergence check
	checkpointCount int       // SampleCount at the last convergence check
}

// AddSample adds a new color sample to the pixel statistics. Samples with a
// NaN or infinite channel are counted and dropped.
func (ps *PixelStats) AddSample(color core.Vec3) bool {
	if !color.IsFinite() {
		ps.DiscardedCount++
		return false
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
	return true
}

// AddFeatures accumulates the first-hit guides of a kept sample
func (ps *PixelStats) AddFeatures(normal, albedo core.Vec3) {
	ps.NormalAccum = ps.NormalAccum.Add(normal)
	ps.AlbedoAccum = ps.AlbedoAccum.Add(albedo)
}

// Attempts returns kept plus discarded samples
func (ps *PixelStats) Attempts() int {
	return ps.SampleCount + ps.DiscardedCount
}

// Converged compares the running average with the one at the last
// checkpoint once ConvergenceInterval new samples exist. When the change
// is not below threshold the checkpoint moves to the current state. The
// first checkpoint treats the previous average as zero.
func (ps *PixelStats) Converged(threshold float64) bool {
	if ps.SampleCount < ps.checkpointCount+ConvergenceInterval {
		return false
	}

	previous := core.Vec3{}
	if ps.checkpointCount > 0 {
		previous = ps.checkpointAccum.Multiply(1.0 / float64(ps.checkpointCount))
	}
	if previous.Subtract(ps.GetColor()).AbsSum() < threshold {
		return true
	}

	ps.checkpointAccum = ps.ColorAccum
	ps.checkpointCount = ps.SampleCount
	return false
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// GetNormal returns the average first-hit normal
func (ps *PixelStats) GetNormal() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.NormalAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// GetAlbedo returns the average first-hit albedo
func (ps *PixelStats) GetAlbedo() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.AlbedoAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an
// 8-bit image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
		}
	}
	return total / float64(pixels)
}
