package faftex

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TexconvCommand is the external DDS-to-PNG conversion utility. It is
// Windows-only; the decoder is constructed disabled elsewhere.
const TexconvCommand = "texconv"

// texconvDecoder converts .dds files to PNG with the external utility and
// delegates the PNG to the general raster decoder. The platform check is
// resolved once at construction and injected as the enabled flag, not
// re-queried per decode.
type texconvDecoder struct {
	exe     string
	enabled bool
	raster  Decoder
}

// NewTexconvDecoder returns the texconv-assisted DDS decoder. When enabled
// is false the decoder claims no extensions at all.
func NewTexconvDecoder(exe string, enabled bool, f Formats) Decoder {
	return &texconvDecoder{exe: exe, enabled: enabled, raster: NewRasterDecoder(f)}
}

func (*texconvDecoder) Name() string { return "texconv-dds" }

func (d *texconvDecoder) Supports(ext string) bool { return d.enabled && ext == ".dds" }

func (d *texconvDecoder) Decode(path string) (*Raster, error) {
	if !d.Supports(fileExt(path)) {
		return nil, ErrNotApplicable
	}

	outDir, err := os.MkdirTemp("", "faftex-texconv-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTexconv, err)
	}
	// The converted PNG never outlives the decode call, success or failure.
	defer func() { _ = os.RemoveAll(outDir) }()

	cmd := exec.Command(d.exe, "-nologo", "-y", "-ft", "png", "-o", outDir, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v: %s", ErrTexconv, path, err, strings.TrimSpace(string(out)))
	}

	base := filepath.Base(path)
	png := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".png")

	return d.raster.Decode(png)
}
