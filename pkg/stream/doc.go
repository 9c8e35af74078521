// Package stream implements the decoding pipeline over a single
// archive entry: a seekable byte stream that, on demand, fetches the
// entry's compressed bytes, optionally authenticates and decrypts
// them, and decompresses them into plaintext. Non-streaming entries
// materialize their full plaintext lazily on first read; streaming
// entries decode one 64 KiB-nominal chunk at a time and cache only
// the chunk currently being read.
package stream
