package hashing

// Normalize converts a virtual path to its canonical form: backslashes
// become forward slashes and the whole path is lowercased to ASCII. The
// result is the byte sequence every id derivation and lookup is keyed on.
//
// Lowercasing is ASCII-only by design — AssetId stability only needs to
// hold for the path conventions the packer accepts, not for arbitrary
// Unicode casefolding rules that vary by locale.
func Normalize(path string) []byte {
	out := make([]byte, len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '\\' {
			c = '/'
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

// NormalizeString is a convenience wrapper returning the normalized path
// as a string instead of a byte slice.
func NormalizeString(path string) string {
	return string(Normalize(path))
}
