package gpck

import (
	"testing"

	"github.com/kilazz/gpck/pkg/hashing"
	"github.com/stretchr/testify/require"
)

func TestNameTableRoundTrip(t *testing.T) {
	entries := []NameEntry{
		{AssetID: hashing.AssetIDFromPath("a.bin"), Path: "a.bin"},
		{AssetID: hashing.AssetIDFromPath("dir/b.bin"), Path: "dir/b.bin"},
		{AssetID: hashing.AssetIDFromPath("empty"), Path: ""},
	}

	packed := PackNameTable(entries)
	got, err := UnpackNameTable(packed, len(entries))
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestUnpackNameTable_Truncated(t *testing.T) {
	entries := []NameEntry{{AssetID: hashing.AssetIDFromPath("a.bin"), Path: "a.bin"}}
	packed := PackNameTable(entries)

	_, err := UnpackNameTable(packed[:len(packed)-1], 1)
	require.ErrorIs(t, err, ErrTruncated)
}
