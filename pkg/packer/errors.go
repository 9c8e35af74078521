package packer

import "errors"

var (
	ErrNoFiles      = errors.New("packer: no files to pack")
	ErrEmptyRelPath = errors.New("packer: empty relative path")
)
