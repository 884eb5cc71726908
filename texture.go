package faftex

import (
	"fmt"
	"strings"
)

// TextureKind is one of the closed set of semantic texture roles a unit
// carries. Each kind maps to a fixed filename suffix.
type TextureKind int

const (
	// Albedo is the base color texture.
	Albedo TextureKind = iota
	// SpecTeam is the specular / team-color texture.
	SpecTeam
	// NormalsTS is the tangent-space normal map.
	NormalsTS
)

// Suffix returns the filename suffix for the kind, e.g. "UEB0301_Albedo.dds".
func (k TextureKind) Suffix() string {
	switch k {
	case Albedo:
		return "Albedo"
	case SpecTeam:
		return "SpecTeam"
	case NormalsTS:
		return "normalsTS"
	default:
		return ""
	}
}

func (k TextureKind) String() string {
	switch k {
	case Albedo:
		return "Albedo"
	case SpecTeam:
		return "SpecTeam"
	case NormalsTS:
		return "NormalsTS"
	default:
		return fmt.Sprintf("TextureKind(%d)", int(k))
	}
}

// ParseTextureKind parses a kind name, case-insensitively. Both the kind
// name and its filename suffix are accepted.
func ParseTextureKind(s string) (TextureKind, error) {
	switch strings.ToLower(s) {
	case "albedo":
		return Albedo, nil
	case "specteam":
		return SpecTeam, nil
	case "normalsts", "normals":
		return NormalsTS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTextureKind, s)
	}
}
