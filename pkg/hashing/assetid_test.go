package hashing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "textures/hero.dds", "textures/hero.dds"},
		{"backslashes", `Textures\Hero.dds`, "textures/hero.dds"},
		{"mixed case", "Textures/Hero.DDS", "textures/hero.dds"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeString(tt.in))
		})
	}
}

func TestAssetIDFromPath_Stability(t *testing.T) {
	a := AssetIDFromPath("Textures/Hero.dds")
	b := AssetIDFromPath(`textures\Hero.DDS`)
	require.Equal(t, a, b, "equal normalized paths must yield equal asset ids")
}

func TestAssetIDFromPath_EmptySentinel(t *testing.T) {
	id := AssetIDFromPath("")
	require.True(t, id.IsZero())
}

func TestAssetIDFromPath_Distinctness(t *testing.T) {
	a := AssetIDFromPath("a.bin")
	b := AssetIDFromPath("b.bin")
	require.NotEqual(t, a, b)
}

func TestAssetID_Compare(t *testing.T) {
	a := AssetID{0x00, 0x01}
	b := AssetID{0x00, 0x02}
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}
