package gpck

import (
	"fmt"

	"github.com/kilazz/gpck/pkg/codec"
)

// Flags is the packed bit field carried by every file entry.
type Flags uint32

const (
	flagCompressed Flags = 1 << 0
	flagEncrypted  Flags = 1 << 1
	flagStreaming  Flags = 1 << 8

	methodShift = 2
	methodMask  = 0x7 // bits 2-4

	assetTypeShift = 5
	assetTypeMask  = 0x7 // bits 5-7

	alignExpShift = 24
	alignExpMask  = 0xFF // bits 24-31

	// DefaultAlignment is used when an entry's alignment exponent is 0.
	DefaultAlignment = 4096
)

// AssetType classifies an entry's payload for metadata interpretation.
type AssetType uint8

const (
	Generic  AssetType = 0
	Texture  AssetType = 1
	Geometry AssetType = 2
)

func (t AssetType) String() string {
	switch t {
	case Generic:
		return "generic"
	case Texture:
		return "texture"
	case Geometry:
		return "geometry"
	default:
		return fmt.Sprintf("assettype(%d)", uint8(t))
	}
}

// NewFlags composes a Flags value from its component fields. alignment
// must be a power of two; passing 0 selects DefaultAlignment (encoded
// as exponent 0).
func NewFlags(compressed, encrypted, streaming bool, method codec.Method, assetType AssetType, alignment int) Flags {
	var f Flags
	if compressed {
		f |= flagCompressed
	}
	if encrypted {
		f |= flagEncrypted
	}
	if streaming {
		f |= flagStreaming
	}
	f |= Flags(uint8(method)&methodMask) << methodShift
	f |= Flags(uint8(assetType)&assetTypeMask) << assetTypeShift
	f |= Flags(alignmentExponent(alignment)) << alignExpShift
	return f
}

func (f Flags) Compressed() bool { return f&flagCompressed != 0 }
func (f Flags) Encrypted() bool  { return f&flagEncrypted != 0 }
func (f Flags) Streaming() bool  { return f&flagStreaming != 0 }

func (f Flags) Method() codec.Method {
	return codec.Method((f >> methodShift) & methodMask)
}

func (f Flags) AssetType() AssetType {
	return AssetType((f >> assetTypeShift) & assetTypeMask)
}

// Alignment returns the entry's effective data alignment: 1 << exponent,
// or DefaultAlignment when the stored exponent is 0.
func (f Flags) Alignment() int {
	exp := (f >> alignExpShift) & alignExpMask
	if exp == 0 {
		return DefaultAlignment
	}
	return 1 << exp
}

// alignmentExponent returns the bit-shift exponent that reproduces
// alignment, or 0 (meaning DefaultAlignment) when alignment is 0 or
// already the default.
func alignmentExponent(alignment int) uint8 {
	if alignment <= 0 || alignment == DefaultAlignment {
		return 0
	}
	exp := uint8(0)
	for v := alignment; v > 1; v >>= 1 {
		exp++
	}
	return exp
}
