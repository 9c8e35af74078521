package gpck

import (
	"encoding/binary"
	"fmt"

	"github.com/kilazz/gpck/pkg/hashing"
)

// FileEntrySize is the fixed on-disk size of one file table record.
const FileEntrySize = 44

// FileEntry is one record of the file table: everything a reader needs
// to locate and decode one package member, keyed by AssetID.
type FileEntry struct {
	AssetID        hashing.AssetID
	DataOffset     uint64
	CompressedSize uint32
	OriginalSize   uint32
	Flags          Flags
	Meta1          uint32
	Meta2          uint32
}

// TextureMeta packs {width, height} into meta1 and {mip_count,
// tail_size} into meta2, per spec §3's texture metadata convention.
func TextureMeta(width, height, mipCount uint32, tailSize int) (meta1, meta2 uint32) {
	meta1 = (width << 16) | (height & 0xFFFF)
	meta2 = (mipCount << 24) | (uint32(tailSize) & 0x00FFFFFF)
	return meta1, meta2
}

// TextureWidthHeight unpacks meta1 as written by TextureMeta.
func TextureWidthHeight(meta1 uint32) (width, height uint32) {
	return meta1 >> 16, meta1 & 0xFFFF
}

// TextureMipsAndTailSize unpacks meta2 as written by TextureMeta.
func TextureMipsAndTailSize(meta2 uint32) (mipCount uint32, tailSize int) {
	return meta2 >> 24, int(meta2 & 0x00FFFFFF)
}

// Pack serializes e into a FileEntrySize-byte record.
func (e FileEntry) Pack() []byte {
	buf := make([]byte, FileEntrySize)
	copy(buf[0:16], e.AssetID[:])
	binary.LittleEndian.PutUint64(buf[16:24], e.DataOffset)
	binary.LittleEndian.PutUint32(buf[24:28], e.CompressedSize)
	binary.LittleEndian.PutUint32(buf[28:32], e.OriginalSize)
	binary.LittleEndian.PutUint32(buf[32:36], uint32(e.Flags))
	binary.LittleEndian.PutUint32(buf[36:40], e.Meta1)
	binary.LittleEndian.PutUint32(buf[40:44], e.Meta2)
	return buf
}

// UnpackFileEntry parses one FileEntrySize-byte record from data.
func UnpackFileEntry(data []byte) (FileEntry, error) {
	if len(data) < FileEntrySize {
		return FileEntry{}, fmt.Errorf("%w: file entry needs %d bytes, have %d", ErrTruncated, FileEntrySize, len(data))
	}
	var e FileEntry
	copy(e.AssetID[:], data[0:16])
	e.DataOffset = binary.LittleEndian.Uint64(data[16:24])
	e.CompressedSize = binary.LittleEndian.Uint32(data[24:28])
	e.OriginalSize = binary.LittleEndian.Uint32(data[28:32])
	e.Flags = Flags(binary.LittleEndian.Uint32(data[32:36]))
	e.Meta1 = binary.LittleEndian.Uint32(data[36:40])
	e.Meta2 = binary.LittleEndian.Uint32(data[40:44])
	return e, nil
}
