package gpck

import (
	"encoding/binary"
	"fmt"

	"github.com/kilazz/gpck/pkg/hashing"
)

// DependencyEntrySize is the fixed on-disk size of one dependency
// table record.
const DependencyEntrySize = 36

// DependencyType classifies the strength of a dependency edge.
type DependencyType uint32

const (
	Hard      DependencyType = 0
	Soft      DependencyType = 1
	Streaming DependencyType = 2
)

func (t DependencyType) String() string {
	switch t {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Streaming:
		return "streaming"
	default:
		return fmt.Sprintf("dependencytype(%d)", uint32(t))
	}
}

// DependencyEntry is one edge in the package-wide dependency table.
type DependencyEntry struct {
	SourceID hashing.AssetID
	TargetID hashing.AssetID
	Type     DependencyType
}

// Pack serializes d into a DependencyEntrySize-byte record.
func (d DependencyEntry) Pack() []byte {
	buf := make([]byte, DependencyEntrySize)
	copy(buf[0:16], d.SourceID[:])
	copy(buf[16:32], d.TargetID[:])
	binary.LittleEndian.PutUint32(buf[32:36], uint32(d.Type))
	return buf
}

// UnpackDependencyEntry parses one DependencyEntrySize-byte record.
func UnpackDependencyEntry(data []byte) (DependencyEntry, error) {
	if len(data) < DependencyEntrySize {
		return DependencyEntry{}, fmt.Errorf("%w: dependency entry needs %d bytes, have %d", ErrTruncated, DependencyEntrySize, len(data))
	}
	var d DependencyEntry
	copy(d.SourceID[:], data[0:16])
	copy(d.TargetID[:], data[16:32])
	d.Type = DependencyType(binary.LittleEndian.Uint32(data[32:36]))
	return d, nil
}
