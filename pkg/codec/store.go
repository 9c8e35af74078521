package codec

// storeCodec implements the Store method: the payload is copied
// verbatim. compressed_size == original_size for every entry it
// produces, per spec.
type storeCodec struct{}

func (storeCodec) CompressBound(n int) int { return n }

func (storeCodec) Compress(src []byte, _ int) ([]byte, error) {
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

func (storeCodec) Decompress(src []byte, targetSize int) ([]byte, error) {
	if len(src) != targetSize {
		return nil, ErrDecompressFailed
	}
	dst := make([]byte, targetSize)
	copy(dst, src)
	return dst, nil
}
