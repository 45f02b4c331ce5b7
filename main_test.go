package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"showcase scene", "showcase", false},
		{"light tunnel scene", "light-tunnel", false},
		{"simple scene", "simple", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Camera == nil {
				t.Error("Scene should have a camera")
			}
			if len(s.Objects) == 0 {
				t.Error("Scene should have objects")
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	var out bytes.Buffer
	opts, _, err := parseOptions([]string{"-scene", "simple", "-width", "80", "-animation", "orbit"}, &out)
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}

	cfg := opts.apply(config.Default())
	if cfg.Scene != "simple" {
		t.Errorf("Expected scene simple, got %s", cfg.Scene)
	}
	if cfg.Width != 80 {
		t.Errorf("Expected width 80, got %d", cfg.Width)
	}
	if cfg.Height != config.Default().Height {
		t.Errorf("Unset height flag should keep %d, got %d", config.Default().Height, cfg.Height)
	}
	if cfg.Scale != 1 {
		t.Errorf("Unset scale flag should keep 1, got %d", cfg.Scale)
	}
	if opts.animation != "orbit" || opts.frames != 10 {
		t.Errorf("Unexpected animation options %q %d", opts.animation, opts.frames)
	}

	if _, _, err := parseOptions([]string{"-width", "wide"}, &out); err == nil {
		t.Error("Expected error for a non-numeric width")
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-help"}, &out); err != nil {
		t.Fatalf("run -help failed: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Help should list scene %s", name)
		}
	}
}

func TestRunRendersImage(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-scene", "simple",
		"-width", "8",
		"-height", "6",
		"-scale", "2",
		"-output", dir,
		"-diagnostics",
	}
	if err := run(args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"output.png", "normals.png", "albedo.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a PNG: %v", name, err)
		}
		if size := img.Bounds().Size(); size.X != 8 || size.Y != 6 {
			t.Errorf("%s should be downscaled to 8x6, got %v", name, size)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{"-env", filepath.Join(dir, "missing.env"), "-width", "0", "-output", dir}, &bytes.Buffer{})
	if err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestNewWriter(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	w, err := newWriter(cfg)
	if err != nil {
		t.Fatalf("newWriter failed: %v", err)
	}
	if _, ok := w.(*output.FileWriter); !ok {
		t.Errorf("Expected a FileWriter, got %T", w)
	}

	cfg.Scale = 2
	cfg.Output.S3 = output.S3Config{Bucket: "frames", Region: "us-east-1", AccessKey: "key", SecretKey: "secret"}
	w, err = newWriter(cfg)
	if err != nil {
		t.Fatalf("newWriter with S3 failed: %v", err)
	}
	resized, ok := w.(output.ResizeWriter)
	if !ok {
		t.Fatalf("Expected a ResizeWriter, got %T", w)
	}
	if multi, ok := resized.Writer.(output.MultiWriter); !ok || len(multi) != 2 {
		t.Errorf("Expected file and S3 writers, got %T", resized.Writer)
	}
}

func TestRenderAnimationErrors(t *testing.T) {
	cfg := config.Default()
	s := scene.NewSimpleScene()
	w := output.MultiWriter{}

	tests := []struct {
		name   string
		kind   string
		frames int
	}{
		{"unknown animation", "spin", 1},
		{"zero frames", "orbit", 0},
		{"fuzz without metal", "fuzz", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := renderAnimation(context.Background(), cfg, tt.kind, tt.frames, s, w, core.NopLogger{}); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestFirstMetal(t *testing.T) {
	index, ok := firstMetal(scene.NewShowcaseScene())
	if !ok {
		t.Fatal("Showcase scene should contain metal")
	}
	if index < 0 {
		t.Errorf("Unexpected index %d", index)
	}

	if _, ok := firstMetal(scene.NewSimpleScene()); ok {
		t.Error("Simple scene has no metal")
	}
}

func TestDollyPath(t *testing.T) {
	from, to := dollyPath("light-tunnel", scene.NewLightTunnelScene())
	if !from.Equals(scene.LightTunnelStart) || !to.Equals(scene.LightTunnelEnd) {
		t.Errorf("Light tunnel dolly should use the tunnel path, got %v -> %v", from, to)
	}

	s := scene.NewSimpleScene()
	from, to = dollyPath("simple", s)
	if !from.Equals(s.Camera.Position) {
		t.Errorf("Dolly should start at the camera, got %v", from)
	}
	expected := s.Camera.Position.Lerp(s.Camera.Target, 0.5)
	if !to.Equals(expected) {
		t.Errorf("Expected dolly end %v, got %v", expected, to)
	}
}
