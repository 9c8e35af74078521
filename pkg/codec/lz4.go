package codec

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type carries
// internal hash-table state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

type lz4Codec struct{}

func (lz4Codec) CompressBound(n int) int {
	return lz4.CompressBlockBound(n)
}

func (lz4Codec) Compress(src []byte, _ int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(src)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompressFailed, err)
	}

	return dst[:n], nil
}

func (lz4Codec) Decompress(src []byte, targetSize int) ([]byte, error) {
	if len(src) == 0 {
		if targetSize != 0 {
			return nil, ErrDecompressFailed
		}
		return []byte{}, nil
	}

	dst := make([]byte, targetSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	if n != targetSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecompressFailed, targetSize, n)
	}
	return dst, nil
}
