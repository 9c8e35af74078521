// Package overlay mounts multiple GPCK packages as a single logical
// filesystem: later mounts win over earlier ones for any path they
// both contain. See pkg/archive for the reader this package layers
// over.
package overlay
