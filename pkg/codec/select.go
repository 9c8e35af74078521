package codec

import (
	"path/filepath"
	"strings"
)

// gpuExtensions lists extensions the Auto policy treats as GPU-bound
// payloads (textures, models, geometry) that prefer GDeflate.
var gpuExtensions = map[string]bool{
	".dds":   true,
	".model": true,
	".geom":  true,
}

// available reports whether method has a working Codec registered. All
// four built-in methods are always available in this module; the hook
// exists because the selection policy (spec.md §4.2) is defined in terms
// of availability, not a hard-coded method list — a build that excludes
// a codec (e.g. to shed a dependency) only needs to unregister it here.
func available(method Method) bool {
	_, ok := registry[method]
	return ok
}

// Auto implements the packer's Auto method-selection policy (spec.md
// §4.2): GPU-bound extensions prefer GDeflate, falling back to Zstd then
// Store; everything else prefers Zstd, falling back to LZ4 then Store.
func Auto(relativePath string) Method {
	ext := strings.ToLower(filepath.Ext(relativePath))

	if gpuExtensions[ext] {
		switch {
		case available(GDeflate):
			return GDeflate
		case available(Zstd):
			return Zstd
		default:
			return Store
		}
	}

	switch {
	case available(Zstd):
		return Zstd
	case available(LZ4):
		return LZ4
	default:
		return Store
	}
}
