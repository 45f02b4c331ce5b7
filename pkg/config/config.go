// Package config loads render settings from a .env file and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Environment keys
const (
	KeyWidth              = "PT_WIDTH"
	KeyHeight             = "PT_HEIGHT"
	KeyScale              = "PT_SCALE"
	KeyScene              = "PT_SCENE"
	KeyExposure           = "PT_EXPOSURE"
	KeyGamma              = "PT_GAMMA"
	KeyRaysPerPixel       = "PT_RAYS_PER_PIXEL"
	KeyMaxDepth           = "PT_MAX_DEPTH"
	KeyThreshold          = "PT_THRESHOLD"
	KeyParallel           = "PT_PARALLEL"
	KeyDenoise            = "PT_DENOISE"
	KeyDenoiseWithNormals = "PT_DENOISE_WITH_NORMALS"
	KeyMaxSamples         = "PT_MAX_SAMPLES"
	KeyWorkers            = "PT_WORKERS"
	KeySeed               = "PT_SEED"
	KeyOutputDir          = "PT_OUTPUT_DIR"
	KeyServerAddress      = "SERVER_ADDRESS"
	KeyS3Bucket           = "S3_BUCKET"
	KeyS3Region           = "S3_REGION"
	KeyS3Endpoint         = "S3_ENDPOINT"
	KeyS3AccessKey        = "S3_ACCESS_KEY"
	KeyS3SecretKey        = "S3_SECRET_KEY"
	KeyS3Prefix           = "S3_PREFIX"
)

var knownKeys = []string{
	KeyWidth, KeyHeight, KeyScale, KeyScene,
	KeyExposure, KeyGamma, KeyRaysPerPixel, KeyMaxDepth, KeyThreshold,
	KeyParallel, KeyDenoise, KeyDenoiseWithNormals, KeyMaxSamples, KeyWorkers, KeySeed,
	KeyOutputDir, KeyServerAddress,
	KeyS3Bucket, KeyS3Region, KeyS3Endpoint, KeyS3AccessKey, KeyS3SecretKey, KeyS3Prefix,
}

// ErrInvalidConfig is returned for values that cannot be parsed or are out
// of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Output selects where frames are written
type Output struct {
	Dir string
	S3  output.S3Config
}

// S3Enabled reports whether frames should also be uploaded
func (o Output) S3Enabled() bool {
	return o.S3.Bucket != ""
}

// Config is the complete application configuration
type Config struct {
	Width         int    // Final image width
	Height        int    // Final image height
	Scale         int    // Supersampling factor, rendered at Width*Scale x Height*Scale
	Scene         string // Built-in scene name
	ServerAddress string // Listen address for the web server
	Render        renderer.RaytracingConfig
	Output        Output
}

// Default returns the configuration used when nothing is set
func Default() Config {
	render := renderer.DefaultRaytracingConfig()
	render.NumWorkers = DefaultWorkers()
	return Config{
		Width:         400,
		Height:        225,
		Scale:         1,
		Scene:         "showcase",
		ServerAddress: ":8080",
		Render:        render,
		Output:        Output{Dir: "."},
	}
}

// RenderSize returns the size rendered before downscaling
func (c Config) RenderSize() (int, int) {
	return c.Width * c.Scale, c.Height * c.Scale
}

// Validate checks the image size and render settings
func (c Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalidConfig, c.Scale)
	}
	width, height := c.RenderSize()
	if err := c.Render.Validate(width, height); err != nil {
		return err
	}
	return nil
}

// Load reads envFile (a missing file is ignored), lets the process
// environment override it and parses the result
func Load(envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	for _, key := range knownKeys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return FromMap(values)
}

// FromMap parses configuration values over the defaults
func FromMap(values map[string]string) (Config, error) {
	cfg := Default()
	p := parser{values: values}

	p.setInt(KeyWidth, &cfg.Width)
	p.setInt(KeyHeight, &cfg.Height)
	p.setInt(KeyScale, &cfg.Scale)
	p.setString(KeyScene, &cfg.Scene)
	p.setString(KeyServerAddress, &cfg.ServerAddress)

	p.setFloat(KeyExposure, &cfg.Render.Exposure)
	p.setFloat(KeyGamma, &cfg.Render.Gamma)
	p.setUint32(KeyRaysPerPixel, &cfg.Render.RaysPerPixel)
	p.setUint8(KeyMaxDepth, &cfg.Render.MaxBounceDepth)
	p.setFloat(KeyThreshold, &cfg.Render.ConvergenceThreshold)
	p.setBool(KeyParallel, &cfg.Render.Parallel)
	p.setBool(KeyDenoise, &cfg.Render.Denoise)
	p.setBool(KeyDenoiseWithNormals, &cfg.Render.DenoiseWithNormals)
	p.setInt(KeyMaxSamples, &cfg.Render.MaxSamplesPerPixel)
	p.setInt(KeyWorkers, &cfg.Render.NumWorkers)
	p.setInt64(KeySeed, &cfg.Render.Seed)

	p.setString(KeyOutputDir, &cfg.Output.Dir)
	p.setString(KeyS3Bucket, &cfg.Output.S3.Bucket)
	p.setString(KeyS3Region, &cfg.Output.S3.Region)
	p.setString(KeyS3Endpoint, &cfg.Output.S3.Endpoint)
	p.setString(KeyS3AccessKey, &cfg.Output.S3.AccessKey)
	p.setString(KeyS3SecretKey, &cfg.Output.S3.SecretKey)
	p.setString(KeyS3Prefix, &cfg.Output.S3.Prefix)

	if p.err != nil {
		return Config{}, p.err
	}
	if cfg.Render.NumWorkers == 0 {
		cfg.Render.NumWorkers = DefaultWorkers()
	}
	return cfg, nil
}

// parser keeps the first parse error so fields can be read in sequence
type parser struct {
	values map[string]string
	err    error
}

func (p *parser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok && v != ""
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
}

func (p *parser) setString(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

func (p *parser) setInt(key string, dst *int) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) setInt64(key string, dst *int64) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) setUint32(key string, dst *uint32) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = uint32(n)
	}
}

func (p *parser) setUint8(key string, dst *uint8) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = uint8(n)
	}
}

func (p *parser) setFloat(key string, dst *float64) {
	if v, ok := p.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (p *parser) setBool(key string, dst *bool) {
	if v, ok := p.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}
