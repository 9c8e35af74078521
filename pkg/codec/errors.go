package codec

import "errors"

var (
	ErrCompressFailed    = errors.New("compress failed")
	ErrDecompressFailed  = errors.New("decompress failed")
	ErrUnsupportedMethod = errors.New("unsupported compression method")
)
