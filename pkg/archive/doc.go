// Package archive opens a GPCK package for reading: it memory-maps the
// table of contents, validates the header and table bounds eagerly,
// and exposes zero-copy entry lookup plus positioned reads of the data
// region for pkg/stream to decode.
package archive
