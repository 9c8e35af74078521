// Package codec implements the Codec Capability contract: a uniform
// compress/decompress interface over a small, fixed set of named
// methods, plus the Auto selection policy the packer uses when a caller
// does not pin a method explicitly.
package codec

import "fmt"

// Method identifies a compression method. Values match the 3-bit method
// id packed into a file entry's flags (bits 2-4).
type Method uint8

const (
	Store    Method = 0
	GDeflate Method = 1
	Zstd     Method = 2
	LZ4      Method = 3
)

func (m Method) String() string {
	switch m {
	case Store:
		return "store"
	case GDeflate:
		return "gdeflate"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Codec is the uniform capability every compression method exposes.
type Codec interface {
	// CompressBound returns the maximum number of bytes Compress may
	// write for an input of n bytes.
	CompressBound(n int) int

	// Compress compresses src at the given level, returning the
	// compressed bytes. level is a hint; codecs without tunable levels
	// ignore it.
	Compress(src []byte, level int) ([]byte, error)

	// Decompress decompresses src into a buffer of exactly targetSize
	// bytes.
	Decompress(src []byte, targetSize int) ([]byte, error)
}

// Registry of built-in codecs, keyed by Method.
var registry = map[Method]Codec{
	Store:    storeCodec{},
	GDeflate: gdeflateCodec{},
	Zstd:     zstdCodec{},
	LZ4:      lz4Codec{},
}

// Get returns the Codec implementing method.
func Get(method Method) (Codec, error) {
	c, ok := registry[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	return c, nil
}
