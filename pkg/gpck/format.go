package gpck

import (
	"encoding/binary"
	"fmt"
)

// Magic identifies a GPCK container. It occupies the first 4 bytes of
// every package.
var Magic = [4]byte{'G', 'P', 'C', 'K'}

// Version is the only header version this module writes or accepts.
// The two draft header shapes in circulation disagree on field
// placement; this module implements the canonical offsets (16/24/32/
// 40/48) and refuses every other version rather than guess.
const Version uint32 = 1

// HeaderSize is the fixed byte size of the container header.
const HeaderSize = 64

// headerFlagHasNames marks that the name table holds real path
// records rather than coinciding, empty, with the dependency table.
const headerFlagHasNames uint32 = 1 << 0

// Header is the 64-byte preamble of a GPCK package: magic, version,
// counts, and the absolute offsets of the three tables that follow it.
type Header struct {
	Version               uint32
	FileCount             uint32
	DependencyCount       uint32
	FileTableOffset       uint64
	NameTableOffset       uint64
	DependencyTableOffset uint64

	// HasNames distinguishes a real (possibly empty-per-entry, but
	// present) name table from a packer run with IncludeNames=false,
	// where NameTableOffset numerically coincides with
	// DependencyTableOffset and must not be parsed as name records.
	HasNames bool
}

// Pack serializes h into a HeaderSize-byte buffer, magic included.
func (h Header) Pack() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.FileCount)
	// buf[12:16] reserved
	binary.LittleEndian.PutUint32(buf[16:20], h.DependencyCount)
	var headerFlags uint32
	if h.HasNames {
		headerFlags |= headerFlagHasNames
	}
	binary.LittleEndian.PutUint32(buf[20:24], headerFlags)
	binary.LittleEndian.PutUint64(buf[24:32], h.FileTableOffset)
	// buf[32:40] reserved
	binary.LittleEndian.PutUint64(buf[40:48], h.NameTableOffset)
	binary.LittleEndian.PutUint64(buf[48:56], h.DependencyTableOffset)
	// buf[56:64] reserved
	return buf
}

// UnpackHeader parses and validates a package header from data, which
// must be at least HeaderSize bytes. It checks magic and version but
// does not validate that the table offsets are in-bounds for the
// containing file — callers with the full file size do that.
func UnpackHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(data))
	}
	if [4]byte{data[0], data[1], data[2], data[3]} != Magic {
		return Header{}, ErrBadMagic
	}

	headerFlags := binary.LittleEndian.Uint32(data[20:24])
	h := Header{
		Version:               binary.LittleEndian.Uint32(data[4:8]),
		FileCount:             binary.LittleEndian.Uint32(data[8:12]),
		DependencyCount:       binary.LittleEndian.Uint32(data[16:20]),
		FileTableOffset:       binary.LittleEndian.Uint64(data[24:32]),
		NameTableOffset:       binary.LittleEndian.Uint64(data[40:48]),
		DependencyTableOffset: binary.LittleEndian.Uint64(data[48:56]),
		HasNames:              headerFlags&headerFlagHasNames != 0,
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}
