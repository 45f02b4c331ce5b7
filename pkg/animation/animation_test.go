package animation

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// MockWriter records frame names and the camera position at write time
type MockWriter struct {
	names   []string
	sizes   []image.Point
	onWrite func(name string)
	err     error
}

func (m *MockWriter) Write(ctx context.Context, name string, img image.Image) error {
	m.names = append(m.names, name)
	m.sizes = append(m.sizes, img.Bounds().Size())
	if m.onWrite != nil {
		m.onWrite(name)
	}
	return m.err
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func testScene() *scene.Scene {
	camera := geometry.NewCamera(core.NewVec3(0, 1, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 40)
	s := scene.NewScene(camera)
	s.AddMaterial("metal", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1))
	s.AddMaterial("diffuse", material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, 0), 1, "metal")
	s.AddSphere(core.NewVec3(0, -101, 0), 100, "diffuse")
	return s
}

func testSequencer(w *MockWriter) *Sequencer {
	config := renderer.DefaultRaytracingConfig()
	config.MaxSamplesPerPixel = 2
	config.MaxBounceDepth = 1
	config.Denoise = false
	config.Parallel = false
	return &Sequencer{Width: 4, Height: 3, Config: config, Writer: w}
}

func TestBlurTransition(t *testing.T) {
	s := testScene()
	writer := &MockWriter{}
	var blurs []float64
	writer.onWrite = func(string) { blurs = append(blurs, s.Camera.FocusBlur) }

	logger := &recordingLogger{}
	sq := testSequencer(writer)
	sq.Logger = logger

	if err := sq.BlurTransition(context.Background(), s, 4, 5, 1, 0, 0.4); err != nil {
		t.Fatalf("BlurTransition failed: %v", err)
	}

	expectedNames := []string{"output_0.png", "output_1.png", "output_2.png", "output_3.png"}
	if len(writer.names) != len(expectedNames) {
		t.Fatalf("Expected %d frames, got %d", len(expectedNames), len(writer.names))
	}
	for i, name := range expectedNames {
		if writer.names[i] != name {
			t.Errorf("Frame %d: expected %s, got %s", i, name, writer.names[i])
		}
		if writer.sizes[i] != image.Pt(4, 3) {
			t.Errorf("Frame %d: expected 4x3 image, got %v", i, writer.sizes[i])
		}
	}

	expectedBlurs := []float64{0, 0.1, 0.2, 0.3}
	for i, expected := range expectedBlurs {
		if math.Abs(blurs[i]-expected) > 1e-9 {
			t.Errorf("Frame %d: expected blur %f, got %f", i, expected, blurs[i])
		}
	}
	if math.Abs(s.Camera.FocusDistance-2) > 1e-9 {
		t.Errorf("Expected final focus distance 2, got %f", s.Camera.FocusDistance)
	}

	frameLogs := 0
	for _, line := range logger.lines {
		if line == "Frame: %d\n" {
			frameLogs++
		}
	}
	if frameLogs != 4 {
		t.Errorf("Expected 4 frame log lines, got %d", frameLogs)
	}
}

func TestCameraOrbit(t *testing.T) {
	s := testScene()
	writer := &MockWriter{}
	var positions []core.Vec3
	writer.onWrite = func(string) { positions = append(positions, s.Camera.Position) }

	center := core.NewVec3(1, 0, 0)
	if err := testSequencer(writer).CameraOrbit(context.Background(), s, 4, 3, center); err != nil {
		t.Fatalf("CameraOrbit failed: %v", err)
	}

	// Starts opposite +Z and turns towards -X first
	expected := []core.Vec3{
		core.NewVec3(1, 1, -3),
		core.NewVec3(-2, 1, 0),
		core.NewVec3(1, 1, 3),
		core.NewVec3(4, 1, 0),
	}
	if len(positions) != len(expected) {
		t.Fatalf("Expected %d frames, got %d", len(expected), len(positions))
	}
	for i, p := range expected {
		if !vecNear(positions[i], p) {
			t.Errorf("Frame %d: expected camera at %v, got %v", i, p, positions[i])
		}
	}

	if !s.Camera.Target.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Orbit should keep the camera target, got %v", s.Camera.Target)
	}
}

func TestMetalFuzz(t *testing.T) {
	t.Run("interpolates fuzz", func(t *testing.T) {
		s := testScene()
		writer := &MockWriter{}
		var fuzz []float64
		writer.onWrite = func(string) { fuzz = append(fuzz, s.Objects[0].Material.(material.Metal).Fuzz) }

		if err := testSequencer(writer).MetalFuzz(context.Background(), s, 10, 2, 0, 0.2, 0.6); err != nil {
			t.Fatalf("MetalFuzz failed: %v", err)
		}

		if len(writer.names) != 2 || writer.names[0] != "output_10.png" || writer.names[1] != "output_11.png" {
			t.Errorf("Expected frames output_10.png and output_11.png, got %v", writer.names)
		}
		expected := []float64{0.2, 0.4}
		for i := range expected {
			if math.Abs(fuzz[i]-expected[i]) > 1e-9 {
				t.Errorf("Frame %d: expected fuzz %f, got %f", i, expected[i], fuzz[i])
			}
		}
	})

	t.Run("rejects non-metal", func(t *testing.T) {
		writer := &MockWriter{}
		err := testSequencer(writer).MetalFuzz(context.Background(), testScene(), 0, 2, 1, 0, 1)
		if err == nil {
			t.Fatal("Expected error for a diffuse object")
		}
		if len(writer.names) != 0 {
			t.Errorf("No frames should be written, got %d", len(writer.names))
		}
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		err := testSequencer(&MockWriter{}).MetalFuzz(context.Background(), testScene(), 0, 1, 7, 0, 1)
		if err == nil {
			t.Fatal("Expected error for an out of range object")
		}
	})
}

func TestCameraDolly(t *testing.T) {
	s := testScene()
	writer := &MockWriter{}
	var positions []core.Vec3
	writer.onWrite = func(string) { positions = append(positions, s.Camera.Position) }

	from := core.NewVec3(0, 1, 8)
	to := core.NewVec3(0, 1, 4)
	if err := testSequencer(writer).CameraDolly(context.Background(), s, 2, from, to); err != nil {
		t.Fatalf("CameraDolly failed: %v", err)
	}

	expected := []core.Vec3{from, core.NewVec3(0, 1, 6)}
	for i, p := range expected {
		if !vecNear(positions[i], p) {
			t.Errorf("Frame %d: expected camera at %v, got %v", i, p, positions[i])
		}
	}
}

func TestSequencerErrors(t *testing.T) {
	t.Run("writer error stops the sequence", func(t *testing.T) {
		writeErr := errors.New("disk full")
		writer := &MockWriter{err: writeErr}
		err := testSequencer(writer).BlurTransition(context.Background(), testScene(), 3, 5, 5, 0, 0)
		if !errors.Is(err, writeErr) {
			t.Fatalf("Expected writer error, got %v", err)
		}
		if len(writer.names) != 1 {
			t.Errorf("Expected the sequence to stop after one frame, got %d", len(writer.names))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		writer := &MockWriter{}
		err := testSequencer(writer).CameraDolly(ctx, testScene(), 3, core.NewVec3(0, 1, 5), core.NewVec3(0, 1, 3))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
		if len(writer.names) != 0 {
			t.Errorf("No frames should be written, got %d", len(writer.names))
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		sq := testSequencer(&MockWriter{})
		sq.Width = 0
		err := sq.CameraDolly(context.Background(), testScene(), 1, core.NewVec3(0, 1, 5), core.NewVec3(0, 1, 3))
		if !errors.Is(err, renderer.ErrInvalidDimensions) {
			t.Fatalf("Expected ErrInvalidDimensions, got %v", err)
		}
	})
}

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}
