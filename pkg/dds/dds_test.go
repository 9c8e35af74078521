package dds

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildDDS assembles a synthetic but structurally valid DDS file: a
// 128-byte header describing width x height with mipCount levels of
// fourCC, followed by mip data filled with an incrementing byte
// pattern so tests can tell mips apart.
func buildDDS(width, height, mipCount uint32, fourCC string) []byte {
	header := make([]byte, HeaderSize)
	copy(header[0:4], magic[:])
	binary.LittleEndian.PutUint32(header[4:8], headerBodySize)
	binary.LittleEndian.PutUint32(header[heightOffset:heightOffset+4], height)
	binary.LittleEndian.PutUint32(header[widthOffset:widthOffset+4], width)
	binary.LittleEndian.PutUint32(header[mipCountOffset:mipCountOffset+4], mipCount)
	copy(header[fourCCOffset:fourCCOffset+4], []byte(fourCC))

	blockSize := blockSizes[fourCC]
	if blockSize == 0 {
		blockSize = defaultBlockSz
	}

	out := append([]byte(nil), header...)
	w, h := width, height
	for level := uint32(0); level < mipCount; level++ {
		sz := mipSize(w, h, blockSize)
		mip := make([]byte, sz)
		for i := range mip {
			mip[i] = byte(level + 1)
		}
		out = append(out, mip...)
		w, h = halve(w), halve(h)
	}
	return out
}

func TestParseHeader(t *testing.T) {
	data := buildDDS(256, 256, 9, "DXT5")
	hdr, err := ParseHeader(data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, uint32(256), hdr.Width)
	require.Equal(t, uint32(256), hdr.Height)
	require.Equal(t, uint32(9), hdr.MipCount)
	require.Equal(t, 16, hdr.BlockSize)
	require.Equal(t, HeaderSize, hdr.HeaderSize)
}

func TestParseHeader_DXT1BlockSize(t *testing.T) {
	data := buildDDS(64, 64, 1, "DXT1")
	hdr, err := ParseHeader(data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, 8, hdr.BlockSize)
}

func TestParseHeader_BadMagic(t *testing.T) {
	data := buildDDS(64, 64, 1, "DXT1")
	data[0] = 'X'
	_, err := ParseHeader(data, ParseOptions{})
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3}, ParseOptions{})
	require.ErrorIs(t, err, ErrTooShort)
}

func TestParseHeader_UnknownFourCC_Strict(t *testing.T) {
	data := buildDDS(64, 64, 1, "ZZZZ")
	_, err := ParseHeader(data, ParseOptions{Strict: true})
	require.ErrorIs(t, err, ErrUnknownFourCC)
}

func TestParseHeader_UnknownFourCC_NonStrictDefaultsTo16(t *testing.T) {
	data := buildDDS(64, 64, 1, "ZZZZ")
	hdr, err := ParseHeader(data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, 16, hdr.BlockSize)
}

func TestSplitTexture_LargeTextureSplits(t *testing.T) {
	// 256x256 with 9 mips walks 256,128,64,32,16,8,4,2,1 — the first mip
	// at or below the 128 threshold is level 1 (128x128).
	data := buildDDS(256, 256, 9, "DXT5")

	split, err := SplitTexture(data, DefaultMaxTailDim, ParseOptions{})
	require.NoError(t, err)
	require.False(t, split.NotSplit)
	require.Equal(t, len(data), split.TailSize+split.PayloadSize)

	tailHdr, err := ParseHeader(split.Combined[:split.TailSize], ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, uint32(128), tailHdr.Width)
	require.Equal(t, uint32(128), tailHdr.Height)
	require.Equal(t, uint32(8), tailHdr.MipCount)

	// mip 0 (256x256, tag byte 1) belongs entirely to the payload half.
	payload := split.Combined[split.TailSize:]
	require.Equal(t, byte(1), payload[0])
}

func TestSplitTexture_SmallTextureNotSplit(t *testing.T) {
	data := buildDDS(64, 64, 7, "DXT5")

	split, err := SplitTexture(data, DefaultMaxTailDim, ParseOptions{})
	require.NoError(t, err)
	require.True(t, split.NotSplit)
	require.Equal(t, len(data), split.TailSize)
	require.Equal(t, 0, split.PayloadSize)
	require.Equal(t, data, split.Combined)
}

func TestSplitTexture_TailSizeIncludesPatchedHeader(t *testing.T) {
	data := buildDDS(256, 256, 9, "DXT1")

	split, err := SplitTexture(data, DefaultMaxTailDim, ParseOptions{})
	require.NoError(t, err)

	var wantTail int
	w, h := uint32(256), uint32(256)
	for level := 0; level < 9; level++ {
		if w <= DefaultMaxTailDim && h <= DefaultMaxTailDim {
			break
		}
		w, h = halve(w), halve(h)
	}
	// tail = header + mips from (w,h) down to 1x1
	wantTail = HeaderSize
	for w > 0 {
		wantTail += mipSize(w, h, 8)
		if w == 1 && h == 1 {
			break
		}
		w, h = halve(w), halve(h)
	}
	require.Equal(t, wantTail, split.TailSize)
}
