package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/animation"
	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the command line flags
type options struct {
	scene       string
	width       int
	height      int
	scale       int
	envFile     string
	outputDir   string
	animation   string
	frames      int
	diagnostics bool
	help        bool

	// set records the flags given explicitly, which override config values
	set map[string]bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, stdout io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", "", "Scene name (see -help for the list)")
	fs.IntVar(&opts.width, "width", 0, "Output width in pixels")
	fs.IntVar(&opts.height, "height", 0, "Output height in pixels")
	fs.IntVar(&opts.scale, "scale", 0, "Supersampling factor; renders at width*scale and downsamples")
	fs.StringVar(&opts.envFile, "env", ".env", "Path to a .env configuration file")
	fs.StringVar(&opts.outputDir, "output", "", "Directory for rendered images")
	fs.StringVar(&opts.animation, "animation", "none", "Animation: none, blur, orbit, fuzz or dolly")
	fs.IntVar(&opts.frames, "frames", 10, "Number of animation frames")
	fs.BoolVar(&opts.diagnostics, "diagnostics", false, "Also write normals.png and albedo.png")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}

	opts.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

// apply overrides configuration values with explicitly given flags
func (o options) apply(cfg config.Config) config.Config {
	if o.set["scene"] {
		cfg.Scene = o.scene
	}
	if o.set["width"] {
		cfg.Width = o.width
	}
	if o.set["height"] {
		cfg.Height = o.height
	}
	if o.set["scale"] {
		cfg.Scale = o.scale
	}
	if o.set["output"] {
		cfg.Output.Dir = o.outputDir
	}
	return cfg
}

func printHelp(fs *flag.FlagSet, stdout io.Writer) {
	fmt.Fprintln(stdout, "Sphere Path Tracer")
	fmt.Fprintln(stdout, "Usage: pathtracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(stdout, "  %-13s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Settings are also read from the .env file and PT_* environment variables.")
}

func run(args []string, stdout io.Writer) error {
	opts, fs, err := parseOptions(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(fs, stdout)
		return nil
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := core.NewDefaultLogger()
	if info, err := config.GetSystemInfo(); err == nil {
		logger.Printf("System: %s\n", info)
	}

	selectedScene, err := createScene(cfg.Scene)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d objects, %d lights)\n", cfg.Scene, len(selectedScene.Objects), len(selectedScene.Lights))

	writer, err := newWriter(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	startTime := time.Now()
	if opts.animation == "none" {
		err = renderImage(ctx, cfg, selectedScene, writer, opts.diagnostics, logger)
	} else {
		err = renderAnimation(ctx, cfg, opts.animation, opts.frames, selectedScene, writer, logger)
	}
	if err != nil {
		return err
	}

	logger.Printf("Render time: %v\n", time.Since(startTime))
	return nil
}

// createScene builds a built-in scene by name
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.ByName(name)
}

// newWriter writes to the output directory, and to S3 when a bucket is
// configured. Supersampled frames are downscaled first.
func newWriter(cfg config.Config) (output.Writer, error) {
	fileWriter, err := output.NewFileWriter(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}

	var writer output.Writer = fileWriter
	if cfg.Output.S3Enabled() {
		s3Writer, err := output.NewS3Writer(cfg.Output.S3)
		if err != nil {
			return nil, err
		}
		writer = output.MultiWriter{fileWriter, s3Writer}
	}

	if cfg.Scale > 1 {
		writer = output.ResizeWriter{Writer: writer, Width: cfg.Width, Height: cfg.Height}
	}
	return writer, nil
}

func renderImage(ctx context.Context, cfg config.Config, s *scene.Scene, writer output.Writer, diagnostics bool, logger core.Logger) error {
	width, height := cfg.RenderSize()
	result, err := renderer.NewRenderer(s, width, height, cfg.Render, logger).Render()
	if err != nil {
		return err
	}

	stats := result.Stats
	logger.Printf("Samples per pixel: %.1f (range %d - %d, %d discarded)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.DiscardedSamples)
	logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(result.Image))

	if err := writer.Write(ctx, "output.png", result.Image); err != nil {
		return err
	}
	if diagnostics {
		if err := writer.Write(ctx, "normals.png", result.Normals); err != nil {
			return err
		}
		if err := writer.Write(ctx, "albedo.png", result.Albedo); err != nil {
			return err
		}
	}

	logger.Printf("Render saved to %s\n", cfg.Output.Dir)
	return nil
}

func renderAnimation(ctx context.Context, cfg config.Config, kind string, frames int, s *scene.Scene, writer output.Writer, logger core.Logger) error {
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	width, height := cfg.RenderSize()
	seq := &animation.Sequencer{
		Width:  width,
		Height: height,
		Config: cfg.Render,
		Writer: writer,
		Logger: logger,
	}

	camera := s.Camera
	switch kind {
	case "blur":
		focus := camera.FocusDistance - 0.5
		return seq.BlurTransition(ctx, s, frames, focus, focus, 0.5, 0)
	case "orbit":
		offset := camera.Position.Subtract(camera.Target)
		offset.Y = 0
		return seq.CameraOrbit(ctx, s, frames, offset.Length(), camera.Target)
	case "fuzz":
		index, ok := firstMetal(s)
		if !ok {
			return fmt.Errorf("scene %s has no metal objects", cfg.Scene)
		}
		return seq.MetalFuzz(ctx, s, 0, frames, index, 0, 1)
	case "dolly":
		from, to := dollyPath(cfg.Scene, s)
		return seq.CameraDolly(ctx, s, frames, from, to)
	default:
		return fmt.Errorf("unknown animation %q (available: none, blur, orbit, fuzz, dolly)", kind)
	}
}

// firstMetal returns the index of the first metal object
func firstMetal(s *scene.Scene) (int, bool) {
	for i, obj := range s.Objects {
		if _, ok := obj.Material.(material.Metal); ok {
			return i, true
		}
	}
	return 0, false
}

// dollyPath flies down the light tunnel, or halfway to the target elsewhere
func dollyPath(name string, s *scene.Scene) (core.Vec3, core.Vec3) {
	if name == "light-tunnel" {
		return scene.LightTunnelStart, scene.LightTunnelEnd
	}
	from := s.Camera.Position
	return from, from.Lerp(s.Camera.Target, 0.5)
}
