// Package animation renders frame sequences that change the scene between
// frames.
package animation

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Sequencer renders and stores numbered frames
type Sequencer struct {
	Width  int
	Height int
	Config renderer.RaytracingConfig
	Writer output.Writer
	Logger core.Logger
}

// lerp interpolates from a to b, t in [0, 1]
func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// renderFrame renders the scene as it is now and writes frame index
func (sq *Sequencer) renderFrame(ctx context.Context, s *scene.Scene, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := sq.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	result, err := renderer.NewRenderer(s, sq.Width, sq.Height, sq.Config, logger).Render()
	if err != nil {
		return fmt.Errorf("frame %d: %w", index, err)
	}
	if err := sq.Writer.Write(ctx, output.FrameName(index), result.Image); err != nil {
		return fmt.Errorf("frame %d: %w", index, err)
	}

	logger.Printf("Frame: %d\n", index)
	return nil
}

// BlurTransition interpolates the camera focus distance and blur radius
func (sq *Sequencer) BlurTransition(ctx context.Context, s *scene.Scene, frames int, focusStart, focusEnd, blurStart, blurEnd float64) error {
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		s.Camera.SetFocusBlur(lerp(focusStart, focusEnd, t), lerp(blurStart, blurEnd, t))
		if err := sq.renderFrame(ctx, s, i); err != nil {
			return err
		}
	}
	return nil
}

// CameraOrbit circles the camera around the vertical axis through center at
// the given radius, keeping its height and target. The first frame starts
// on the far side (-Z) of the center.
func (sq *Sequencer) CameraOrbit(ctx context.Context, s *scene.Scene, frames int, radius float64, center core.Vec3) error {
	height := s.Camera.Position.Y
	for i := 0; i < frames; i++ {
		t := float64(i)/float64(frames) + 0.5
		offset := mgl64.Rotate3DY(2 * math.Pi * t).Mul3x1(mgl64.Vec3{0, 0, radius})

		s.Camera.MoveTo(core.NewVec3(center.X+offset.X(), height, center.Z+offset.Z()))
		if err := sq.renderFrame(ctx, s, i); err != nil {
			return err
		}
	}
	return nil
}

// MetalFuzz varies the fuzz of one metal object. Frames are numbered from
// startFrame so several runs can extend one sequence.
func (sq *Sequencer) MetalFuzz(ctx context.Context, s *scene.Scene, startFrame, frames, objectIndex int, fuzzStart, fuzzEnd float64) error {
	if objectIndex < 0 || objectIndex >= len(s.Objects) {
		return fmt.Errorf("object %d out of range (scene has %d objects)", objectIndex, len(s.Objects))
	}
	metal, ok := s.Objects[objectIndex].Material.(material.Metal)
	if !ok {
		return fmt.Errorf("object %d is not a metal", objectIndex)
	}

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		s.Objects[objectIndex].Material = metal.WithFuzz(lerp(fuzzStart, fuzzEnd, t))
		if err := sq.renderFrame(ctx, s, startFrame+i); err != nil {
			return err
		}
	}
	return nil
}

// CameraDolly moves the camera in a straight line towards to, keeping its
// target
func (sq *Sequencer) CameraDolly(ctx context.Context, s *scene.Scene, frames int, from, to core.Vec3) error {
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames)
		s.Camera.MoveTo(from.Lerp(to, t))
		if err := sq.renderFrame(ctx, s, i); err != nil {
			return err
		}
	}
	return nil
}
