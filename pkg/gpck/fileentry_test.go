package gpck

import (
	"testing"

	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/hashing"
	"github.com/stretchr/testify/require"
)

func TestFileEntryRoundTrip(t *testing.T) {
	e := FileEntry{
		AssetID:        hashing.AssetIDFromPath("textures/hero.dds"),
		DataOffset:     4096,
		CompressedSize: 1024,
		OriginalSize:   4096,
		Flags:          NewFlags(true, false, false, codec.Zstd, Texture, 4096),
		Meta1:          (2048 << 16) | 2048,
		Meta2:          (12 << 24) | 512,
	}
	packed := e.Pack()
	require.Len(t, packed, FileEntrySize)

	got, err := UnpackFileEntry(packed)
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestUnpackFileEntry_Truncated(t *testing.T) {
	_, err := UnpackFileEntry(make([]byte, 10))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDependencyEntryRoundTrip(t *testing.T) {
	d := DependencyEntry{
		SourceID: hashing.AssetIDFromPath("models/hero.model"),
		TargetID: hashing.AssetIDFromPath("textures/hero.dds"),
		Type:     Hard,
	}
	packed := d.Pack()
	require.Len(t, packed, DependencyEntrySize)

	got, err := UnpackDependencyEntry(packed)
	require.NoError(t, err)
	require.Equal(t, d, got)
}
