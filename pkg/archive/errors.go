package archive

import "errors"

var (
	ErrIndexOutOfRange = errors.New("archive: index out of range")
)
