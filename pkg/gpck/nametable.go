package gpck

import (
	"encoding/binary"
	"fmt"

	"github.com/kilazz/gpck/pkg/hashing"
)

// NameEntry associates an asset id with its original virtual path, for
// debugging and tooling. Name table records are optional debug data —
// the asset id alone is the primary key for every lookup.
type NameEntry struct {
	AssetID hashing.AssetID
	Path    string
}

// PackNameTable serializes entries as `asset_id(16) ‖ varint length ‖
// utf8 bytes`, in the given order (which must match file table order).
func PackNameTable(entries []NameEntry) []byte {
	buf := make([]byte, 0, len(entries)*24)
	var varintBuf [binary.MaxVarintLen64]byte
	for _, e := range entries {
		buf = append(buf, e.AssetID[:]...)
		n := binary.PutUvarint(varintBuf[:], uint64(len(e.Path)))
		buf = append(buf, varintBuf[:n]...)
		buf = append(buf, e.Path...)
	}
	return buf
}

// UnpackNameTable reads exactly count sequential name records from the
// start of data.
func UnpackNameTable(data []byte, count int) ([]NameEntry, error) {
	entries := make([]NameEntry, 0, count)
	pos := 0
	for i := 0; i < count; i++ {
		if pos+16 > len(data) {
			return nil, fmt.Errorf("%w: name table entry %d: truncated asset id", ErrTruncated, i)
		}
		var e NameEntry
		copy(e.AssetID[:], data[pos:pos+16])
		pos += 16

		length, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return nil, fmt.Errorf("%w: name table entry %d: bad varint length", ErrCorruptTable, i)
		}
		pos += n

		end := pos + int(length)
		if end < pos || end > len(data) {
			return nil, fmt.Errorf("%w: name table entry %d: path runs past end of table", ErrTruncated, i)
		}
		e.Path = string(data[pos:end])
		pos = end

		entries = append(entries, e)
	}
	return entries, nil
}
