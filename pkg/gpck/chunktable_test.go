package gpck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkTableRoundTrip(t *testing.T) {
	ct := ChunkTable{
		{Compressed: 100, Original: 65536},
		{Compressed: 90, Original: 65536},
		{Compressed: 10, Original: 4096},
	}
	packed := ct.Pack()

	got, n, err := UnpackChunkTable(packed)
	require.NoError(t, err)
	require.Equal(t, len(packed), n)
	require.Equal(t, ct, got)
	require.Equal(t, int64(65536+65536+4096), ct.OriginalSize())
	require.Equal(t, int64(200), ct.CompressedSize())
}

func TestUnpackChunkTable_Truncated(t *testing.T) {
	ct := ChunkTable{{Compressed: 1, Original: 2}}
	packed := ct.Pack()

	_, _, err := UnpackChunkTable(packed[:len(packed)-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestChunkTableRoundTrip_StoredBit(t *testing.T) {
	ct := ChunkTable{
		{Compressed: 100, Original: 65536},
		{Compressed: 65536, Original: 65536, Stored: true},
	}
	packed := ct.Pack()

	got, n, err := UnpackChunkTable(packed)
	require.NoError(t, err)
	require.Equal(t, len(packed), n)
	require.Equal(t, ct, got)
	require.False(t, got[0].Stored)
	require.True(t, got[1].Stored)
	require.Equal(t, uint32(65536), got[1].Compressed)
}

func TestUnpackChunkTable_TrailingBytesIgnored(t *testing.T) {
	ct := ChunkTable{{Compressed: 1, Original: 2}}
	packed := append(ct.Pack(), 0xFF, 0xFF)

	got, n, err := UnpackChunkTable(packed)
	require.NoError(t, err)
	require.Equal(t, ct, got)
	require.Less(t, n, len(packed))
}
