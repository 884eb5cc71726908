package faftex

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Chain tries decoders in priority order until one produces a raster.
type Chain struct {
	decoders []Decoder
	logger   *slog.Logger
}

// NewChain builds a chain over the given decoders, tried in argument
// order. A nil logger uses slog.Default().
func NewChain(logger *slog.Logger, decoders ...Decoder) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{decoders: decoders, logger: logger}
}

// DefaultChain builds the standard chain: JPEG-specialized, general
// raster, texconv-assisted DDS (enabled on Windows only), native
// DDS/EDDS, generic fallback.
func DefaultChain(logger *slog.Logger) *Chain {
	f := DefaultFormats()
	return NewChain(logger,
		NewJPEGDecoder(),
		NewRasterDecoder(f),
		NewTexconvDecoder(TexconvCommand, runtime.GOOS == "windows", f),
		NewDDSDecoder(),
		NewImageDecoder(f),
	)
}

// Decode runs the chain on the file at path. The first decoder to produce
// a raster wins; NotApplicable moves on silently, a failure is logged and
// the chain moves on. When every decoder passes or fails, the last failure
// propagates, or ErrUnreadableImage when no decoder claimed the file.
func (c *Chain) Decode(path string) (*Raster, error) {
	var lastErr error

	for _, d := range c.decoders {
		if !d.Supports(fileExt(path)) {
			continue
		}

		raster, err := d.Decode(path)
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			lastErr = err
			c.logger.Warn("decoder failed", "decoder", d.Name(), "path", path, "error", err)
			continue
		}

		return raster, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %q", ErrUnreadableImage, path)
}
