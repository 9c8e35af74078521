package gpck

// AlignUp rounds offset up to the next multiple of alignment.
// alignment must be a power of two.
func AlignUp(offset int64, alignment int) int64 {
	a := int64(alignment)
	return (offset + a - 1) &^ (a - 1)
}
