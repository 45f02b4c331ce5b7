// Package output delivers rendered frames to disk or object storage.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Writer stores a named image
type Writer interface {
	Write(ctx context.Context, name string, img image.Image) error
}

// FrameName returns the file name of an animation frame
func FrameName(index int) string {
	return fmt.Sprintf("output_%d.png", index)
}

// EncodePNG encodes an image as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale resizes a supersampled render to its final size
func Downscale(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// FileWriter saves images under a directory
type FileWriter struct {
	Dir string
}

// NewFileWriter creates a writer for dir, creating it if needed
func NewFileWriter(dir string) (*FileWriter, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &FileWriter{Dir: dir}, nil
}

// Write implements Writer. The format follows the file extension.
func (fw *FileWriter) Write(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(fw.Dir, name)
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// MultiWriter writes every image to all of its writers
type MultiWriter []Writer

// Write implements Writer, attempting every writer and joining the errors
func (mw MultiWriter) Write(ctx context.Context, name string, img image.Image) error {
	var errs []error
	for _, w := range mw {
		if err := w.Write(ctx, name, img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResizeWriter downscales every image to Width x Height before passing it on
type ResizeWriter struct {
	Writer Writer
	Width  int
	Height int
}

// Write implements Writer
func (rw ResizeWriter) Write(ctx context.Context, name string, img image.Image) error {
	return rw.Writer.Write(ctx, name, Downscale(img, rw.Width, rw.Height))
}
