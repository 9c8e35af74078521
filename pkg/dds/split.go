package dds

import "encoding/binary"

// Split is the result of splitting a DDS texture into a resident tail
// and a streamable payload.
type Split struct {
	Header Header

	// NotSplit is true when the whole texture already fits within the
	// tail threshold (the largest mip is at or below maxTailDim on both
	// axes). Combined then holds the unmodified original image and
	// TailSize equals len(Combined); there is no payload to stream.
	NotSplit bool

	// Combined is [patched_header][tail_mips][payload_mips] — the data
	// the packer writes for this texture entry. The patched header
	// reports the tail's own dimensions and mip count, so a consumer
	// that reads only the first TailSize bytes sees a complete,
	// low-resolution DDS texture.
	Combined []byte

	// TailSize is the byte length of the resident prefix of Combined:
	// the patched header plus every mip from the split point to the
	// smallest (1x1) mip. Per spec.md §4.4, this size includes the
	// patched header's own bytes.
	TailSize int

	// PayloadSize is the byte length of the streamable suffix of
	// Combined: every mip from the largest (mip 0) up to, but not
	// including, the split point.
	PayloadSize int
}

// DefaultMaxTailDim is the default threshold (in texels, per axis)
// below which a mip is considered small enough to keep resident.
const DefaultMaxTailDim = 128

// SplitTexture walks data's mip chain from largest to smallest and
// divides it into a resident tail and a streamable payload, per
// spec.md §4.4. maxTailDim of 0 selects DefaultMaxTailDim.
func SplitTexture(data []byte, maxTailDim int, opts ParseOptions) (Split, error) {
	if maxTailDim <= 0 {
		maxTailDim = DefaultMaxTailDim
	}

	hdr, err := ParseHeader(data, opts)
	if err != nil {
		return Split{}, err
	}

	w, h := hdr.Width, hdr.Height
	splitIndex := -1
	splitW, splitH := w, h
	payloadSize := 0

	for level := uint32(0); level < hdr.MipCount; level++ {
		if w <= uint32(maxTailDim) && h <= uint32(maxTailDim) {
			splitIndex = int(level)
			splitW, splitH = w, h
			break
		}
		payloadSize += mipSize(w, h, hdr.BlockSize)
		w = halve(w)
		h = halve(h)
	}
	if splitIndex < 0 {
		// Unreachable for any valid texture: the smallest mip is always
		// 1x1, which is always at or below maxTailDim (clamped >= 1
		// above). Guard against a malformed mip count anyway.
		splitIndex = int(hdr.MipCount) - 1
		splitW, splitH = 1, 1
	}

	if splitIndex == 0 {
		combined := append([]byte(nil), data...)
		return Split{
			Header:      hdr,
			NotSplit:    true,
			Combined:    combined,
			TailSize:    len(combined),
			PayloadSize: 0,
		}, nil
	}

	tailMipCount := hdr.MipCount - uint32(splitIndex)
	patched := patchHeader(data[:hdr.HeaderSize], hdr, splitW, splitH, tailMipCount)

	payload := data[hdr.HeaderSize : hdr.HeaderSize+payloadSize]
	tailMips := data[hdr.HeaderSize+payloadSize:]

	combined := make([]byte, 0, len(patched)+len(tailMips)+len(payload))
	combined = append(combined, patched...)
	combined = append(combined, tailMips...)
	combined = append(combined, payload...)

	return Split{
		Header:      hdr,
		Combined:    combined,
		TailSize:    len(patched) + len(tailMips),
		PayloadSize: len(payload),
	}, nil
}

func halve(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return n / 2
}

// patchHeader returns a copy of the original header with width, height,
// mip count rewritten to the tail's own values and the pitch/linear-size
// field zeroed, since it no longer describes the truncated mip chain.
func patchHeader(header []byte, hdr Header, width, height, mipCount uint32) []byte {
	out := append([]byte(nil), header...)
	binary.LittleEndian.PutUint32(out[widthOffset:widthOffset+4], width)
	binary.LittleEndian.PutUint32(out[heightOffset:heightOffset+4], height)
	binary.LittleEndian.PutUint32(out[mipCountOffset:mipCountOffset+4], mipCount)
	binary.LittleEndian.PutUint32(out[pitchOffset:pitchOffset+4], 0)
	return out
}
