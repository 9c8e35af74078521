package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// gdeflateCodec backs the GDeflate method id.
//
// Real GDeflate is NVIDIA's GPU-parallel DEFLATE variant; encoding and
// decoding it requires a CUDA/DirectStorage binding that is explicitly
// out of scope for this module (spec.md §1 treats GPU-backed
// decompression as an external sink). No pure-Go GDeflate implementation
// exists in the example corpus or the wider ecosystem. This codec wires
// the method id to klauspost/compress/flate — the corpus's DEFLATE-family
// library — so the method round-trips correctly and the packer's "GPU
// method → 4096 alignment" policy has a real codec to exercise; a
// production build links an actual GDeflate encoder/decoder behind this
// same Codec interface without touching any caller.
type gdeflateCodec struct{}

func (gdeflateCodec) CompressBound(n int) int {
	return n + n/1000 + 128
}

func (gdeflateCodec) Compress(src []byte, level int) ([]byte, error) {
	if level <= 0 {
		level = flate.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressFailed, err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressFailed, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressFailed, err)
	}
	return buf.Bytes(), nil
}

func (gdeflateCodec) Decompress(src []byte, targetSize int) ([]byte, error) {
	if len(src) == 0 {
		if targetSize != 0 {
			return nil, ErrDecompressFailed
		}
		return nil, nil
	}

	r := flate.NewReader(bytes.NewReader(src))
	defer r.Close()

	dst := make([]byte, targetSize)
	if _, err := io.ReadFull(r, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	return dst, nil
}
