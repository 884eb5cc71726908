package faftex

import "strings"

// scdBasename is the container the game ships unit textures in. Archive
// mode keys on this exact basename, matching the upstream convention.
const scdBasename = "units.scd"

// ImageSource identifies one texture to load. TargetDir is opaque to the
// loader and passed through unchanged.
type ImageSource struct {
	RootPath  string
	UnitName  string
	Kind      TextureKind
	TargetDir string
}

// ResolvedLocation is the concrete location of a texture: either a direct
// file path, or an entry name inside a container at Path.
type ResolvedLocation struct {
	Archived bool
	Path     string
	Entry    string
}

// Resolve computes the concrete location for a source. It is pure string
// construction; whether the target exists is discovered later.
func Resolve(src ImageSource) ResolvedLocation {
	filename := src.UnitName + "_" + src.Kind.Suffix() + ".dds"

	if strings.HasSuffix(src.RootPath, scdBasename) {
		return ResolvedLocation{
			Archived: true,
			Path:     src.RootPath,
			Entry:    "units/" + src.UnitName + "/" + filename,
		}
	}

	// Strip exactly one trailing separator, then rejoin with the separator
	// style the root already uses.
	root := src.RootPath
	sep := "/"
	if strings.Contains(root, `\`) {
		sep = `\`
	}
	root = strings.TrimSuffix(root, sep)

	return ResolvedLocation{
		Path: root + sep + src.UnitName + sep + filename,
	}
}
