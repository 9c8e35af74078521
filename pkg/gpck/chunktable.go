package gpck

import (
	"encoding/binary"
	"fmt"
)

// ChunkEntrySize is the fixed on-disk size of one chunk table record.
const ChunkEntrySize = 8

// chunkStoredBit marks a chunk whose body is raw, uncompressed bytes
// rather than the entry's codec method — set when that method failed
// to shrink the chunk (e.g. pierrec/lz4's documented n==0 return for
// an incompressible block). It is packed into the high bit of the
// on-disk Compressed field; chunk bodies never approach 2^31 bytes.
const chunkStoredBit = uint32(1) << 31

// ChunkEntry describes one logical chunk of a streaming-layout file:
// its size on disk and its decompressed size in memory. Stored marks
// a chunk whose on-disk bytes are raw rather than encoded with the
// entry's codec method.
type ChunkEntry struct {
	Compressed uint32
	Original   uint32
	Stored     bool
}

// ChunkTable is the ordered sequence of chunks covering one streaming
// file's original bytes, in strict order.
type ChunkTable []ChunkEntry

// Pack serializes the table as `u32 count` followed by packed
// (compressed, original) pairs — the preamble of a streaming-layout
// per-file blob.
func (ct ChunkTable) Pack() []byte {
	buf := make([]byte, 4+len(ct)*ChunkEntrySize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(ct)))
	for i, c := range ct {
		off := 4 + i*ChunkEntrySize
		compressed := c.Compressed
		if c.Stored {
			compressed |= chunkStoredBit
		}
		binary.LittleEndian.PutUint32(buf[off:off+4], compressed)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], c.Original)
	}
	return buf
}

// UnpackChunkTable parses a chunk table from the start of data and
// returns it along with the number of bytes it consumed.
func UnpackChunkTable(data []byte) (ChunkTable, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: chunk table missing count", ErrTruncated)
	}
	count := binary.LittleEndian.Uint32(data[0:4])
	need := 4 + int(count)*ChunkEntrySize
	if need < 4 || len(data) < need {
		return nil, 0, fmt.Errorf("%w: chunk table needs %d bytes, have %d", ErrTruncated, need, len(data))
	}

	ct := make(ChunkTable, count)
	for i := range ct {
		off := 4 + i*ChunkEntrySize
		raw := binary.LittleEndian.Uint32(data[off : off+4])
		ct[i] = ChunkEntry{
			Compressed: raw &^ chunkStoredBit,
			Original:   binary.LittleEndian.Uint32(data[off+4 : off+8]),
			Stored:     raw&chunkStoredBit != 0,
		}
	}
	return ct, need, nil
}

// OriginalSize returns the sum of every chunk's Original size — must
// equal the owning file entry's OriginalSize.
func (ct ChunkTable) OriginalSize() int64 {
	var total int64
	for _, c := range ct {
		total += int64(c.Original)
	}
	return total
}

// CompressedSize returns the sum of every chunk's Compressed size.
func (ct ChunkTable) CompressedSize() int64 {
	var total int64
	for _, c := range ct {
		total += int64(c.Compressed)
	}
	return total
}
