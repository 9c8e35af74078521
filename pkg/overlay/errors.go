package overlay

import "errors"

var (
	ErrNotFound       = errors.New("overlay: path not found in any mount")
	ErrAlreadyMounted = errors.New("overlay: name already mounted")
)
