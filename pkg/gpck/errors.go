package gpck

import "errors"

var (
	ErrBadMagic           = errors.New("gpck: bad magic")
	ErrUnsupportedVersion = errors.New("gpck: unsupported version")
	ErrCorruptTable       = errors.New("gpck: corrupt table")
	ErrTruncated          = errors.New("gpck: truncated")
)
