// Package gpck defines the GPCK container format: the header, file
// table, dependency table, name table, and per-file chunk table that
// together make up a package's table of contents. It has no knowledge
// of how a package is read or written — that lives in pkg/archive and
// pkg/packer — only the wire shapes and their Pack/Unpack codecs.
package gpck
