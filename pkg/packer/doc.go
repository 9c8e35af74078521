// Package packer builds a GPCK package from a set of source files: a
// parallel per-file stage that selects a codec, optionally splits
// textures and optionally encrypts, followed by a single-threaded
// deterministic layout and write phase. See pkg/gpck for the on-disk
// shapes this package serializes and pkg/archive for the reader that
// consumes them.
package packer
