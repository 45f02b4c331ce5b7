package renderer

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// FrameBuffer holds linear radiance and guide buffers for a frame, row-major
// from the top left
type FrameBuffer struct {
	Width  int
	Height int
	Color  []core.Vec3
	Normal []core.Vec3
	Albedo []core.Vec3
}

// FrameRow is a view of one row of a FrameBuffer. Rows never overlap, so
// workers write to their rows without locking.
type FrameRow struct {
	Y      int
	Color  []core.Vec3
	Normal []core.Vec3
	Albedo []core.Vec3
}

// NewFrameBuffer allocates a black frame
func NewFrameBuffer(width, height int) *FrameBuffer {
	size := width * height
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Color:  make([]core.Vec3, size),
		Normal: make([]core.Vec3, size),
		Albedo: make([]core.Vec3, size),
	}
}

// Row returns the view of row y
func (fb *FrameBuffer) Row(y int) FrameRow {
	start, end := y*fb.Width, (y+1)*fb.Width
	return FrameRow{
		Y:      y,
		Color:  fb.Color[start:end:end],
		Normal: fb.Normal[start:end:end],
		Albedo: fb.Albedo[start:end:end],
	}
}

// float32s flattens a buffer into interleaved RGB
func float32s(buf []core.Vec3) []float32 {
	out := make([]float32, len(buf)*3)
	for i, v := range buf {
		out[i*3] = float32(v.X)
		out[i*3+1] = float32(v.Y)
		out[i*3+2] = float32(v.Z)
	}
	return out
}

// setFloat32s copies interleaved RGB back into a buffer
func setFloat32s(buf []core.Vec3, values []float32) {
	for i := range buf {
		buf[i] = core.NewVec3(float64(values[i*3]), float64(values[i*3+1]), float64(values[i*3+2]))
	}
}
