package dds

import "errors"

var (
	// ErrTooShort is returned when data is smaller than a DDS magic+header.
	ErrTooShort = errors.New("dds: data shorter than header")

	// ErrBadMagic is returned when data does not begin with the DDS magic.
	ErrBadMagic = errors.New("dds: bad magic")

	// ErrUnknownFourCC is returned by ParseHeader in strict mode when the
	// FourCC code is not one this package recognizes.
	ErrUnknownFourCC = errors.New("dds: unknown FourCC, refusing to guess block size")
)
