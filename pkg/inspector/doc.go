// Package inspector builds a human-readable report of an opened GPCK
// package: entry counts, total size, and per-entry codec and texture
// metadata, for tooling built on top of pkg/archive.
package inspector
