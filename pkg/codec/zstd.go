package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse, the same pattern used by
// every klauspost/compress/zstd consumer in the corpus: the library is
// explicitly designed for decoder/encoder reuse after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("codec: failed to create zstd decoder: %v", err))
		}
		return d
	},
}

var zstdEncoderPools sync.Map // level (int) -> *sync.Pool

func zstdEncoderPool(level int) *sync.Pool {
	if p, ok := zstdEncoderPools.Load(level); ok {
		return p.(*sync.Pool)
	}
	p := &sync.Pool{
		New: func() any {
			e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
			if err != nil {
				panic(fmt.Sprintf("codec: failed to create zstd encoder: %v", err))
			}
			return e
		},
	}
	actual, _ := zstdEncoderPools.LoadOrStore(level, p)
	return actual.(*sync.Pool)
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level == 1:
		return zstd.SpeedFastest
	case level >= 4:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedBetterCompression
	}
}

type zstdCodec struct{}

func (zstdCodec) CompressBound(n int) int {
	// klauspost/compress/zstd does not expose a bound function; a small,
	// generous multiplier plus fixed frame overhead is always sufficient
	// for well-formed input.
	return n + n/8 + 64
}

func (zstdCodec) Compress(src []byte, level int) ([]byte, error) {
	pool := zstdEncoderPool(level)
	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	out := enc.EncodeAll(src, nil)
	return out, nil
}

func (zstdCodec) Decompress(src []byte, targetSize int) ([]byte, error) {
	if len(src) == 0 {
		if targetSize != 0 {
			return nil, ErrDecompressFailed
		}
		return []byte{}, nil
	}

	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	dst := make([]byte, 0, targetSize)
	out, err := dec.DecodeAll(src, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompressFailed, err)
	}
	if len(out) != targetSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecompressFailed, targetSize, len(out))
	}
	return out, nil
}
