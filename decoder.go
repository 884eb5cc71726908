package faftex

// Decoder turns file bytes at a path into a raster for a bounded,
// self-declared set of extensions.
//
// Decode has a three-way outcome: a raster, ErrNotApplicable when the
// extension is outside the decoder's set, or any other error when the
// extension is claimed but the bytes cannot be parsed. A decoder must
// never return a nil raster with a nil error.
type Decoder interface {
	Name() string
	Supports(ext string) bool
	Decode(path string) (*Raster, error)
}
