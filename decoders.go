package faftex

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Register the broad decode set consumed by the raster and fallback
	// decoders. gif is fallback-only; see DefaultFormats.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegDecoder is the JPEG-specialized backend.
type jpegDecoder struct{}

// NewJPEGDecoder returns the JPEG-specialized decoder ({.jpg, .jpeg}).
func NewJPEGDecoder() Decoder { return jpegDecoder{} }

func (jpegDecoder) Name() string { return "jpeg" }

func (jpegDecoder) Supports(ext string) bool { return ext == ".jpg" || ext == ".jpeg" }

func (d jpegDecoder) Decode(path string) (*Raster, error) {
	if !d.Supports(fileExt(path)) {
		return nil, ErrNotApplicable
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorruptImage, path, err)
	}

	return rasterFromImage(img), nil
}

// rasterDecoder is the general backend. It decodes from a raw byte buffer
// first (tolerates unusual path encodings on the host filesystem), and
// retries with a direct file open when the buffer decode yields nothing.
type rasterDecoder struct {
	exts map[string]bool
}

// NewRasterDecoder returns the general raster decoder for the Raster
// format set.
func NewRasterDecoder(f Formats) Decoder {
	return &rasterDecoder{exts: extSet(f.Raster)}
}

func (*rasterDecoder) Name() string { return "raster" }

func (d *rasterDecoder) Supports(ext string) bool { return d.exts[ext] }

func (d *rasterDecoder) Decode(path string) (*Raster, error) {
	if !d.Supports(fileExt(path)) {
		return nil, ErrNotApplicable
	}

	var img image.Image
	if data, err := os.ReadFile(path); err == nil {
		if m, _, derr := image.Decode(bytes.NewReader(data)); derr == nil {
			img = m
		}
	}

	if img == nil {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
		}
		defer func() { _ = f.Close() }()

		m, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrCorruptImage, path, err)
		}
		img = m
	}

	return rasterFromImage(img), nil
}

// imageDecoder is the generic fallback backend, covering the full set of
// registered image formats.
type imageDecoder struct {
	exts map[string]bool
}

// NewImageDecoder returns the generic fallback decoder for the Image
// format set.
func NewImageDecoder(f Formats) Decoder {
	return &imageDecoder{exts: extSet(f.Image)}
}

func (*imageDecoder) Name() string { return "image" }

func (d *imageDecoder) Supports(ext string) bool { return d.exts[ext] }

func (d *imageDecoder) Decode(path string) (*Raster, error) {
	if !d.Supports(fileExt(path)) {
		return nil, ErrNotApplicable
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorruptImage, path, err)
	}

	return rasterFromImage(img), nil
}
