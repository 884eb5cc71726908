package faftex

import (
	"path/filepath"
	"strings"
)

// Formats enumerates the extensions each decoding backend nominally
// supports. The sets are queried once at chain construction; decoders hold
// their own copies and never consult this value again.
type Formats struct {
	// Raster is the broad set understood by the general raster decoder.
	Raster []string
	// Image is the set understood by the generic fallback decoder. It is a
	// superset of the JPEG-specialized decoder's extensions.
	Image []string
}

// DefaultFormats returns the extension sets for the registered Go image
// decoders: stdlib jpeg/png/gif plus x/image bmp/tiff/webp.
func DefaultFormats() Formats {
	return Formats{
		Raster: []string{".png", ".jpg", ".jpeg", ".bmp", ".webp", ".tif", ".tiff"},
		Image:  []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff"},
	}
}

// fileExt returns the lowercased extension of path, including the dot.
func fileExt(path string) string {
	// Resolver output may use backslash separators on any host OS.
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(filepath.Ext(path))
}

func extSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}
