package hashing

import "github.com/cespare/xxhash/v2"

// XXH64 computes the 64-bit xxHash of data using the given seed. It is the
// single hash primitive shared by asset id derivation (twin-seeded, see
// AssetID) and the packer's content-fingerprint dedup check.
func XXH64(seed uint64, data []byte) uint64 {
	d := xxhash.NewWithSeed(seed)
	_, _ = d.Write(data) // xxhash.Digest.Write never returns an error
	return d.Sum64()
}

// Fingerprint computes the content fingerprint used by the packer to
// detect byte-identical data regions for deduplication. It is a plain,
// zero-seeded XXH64 over the exact bytes that would be written to disk.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
