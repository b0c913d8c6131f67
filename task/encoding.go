package task

// EncodeBits writes the low len(prealloc) bits of n into prealloc, most significant
// bit first, as 0s and 1s.
func EncodeBits(n int, prealloc []float32) []float32 {
	width := len(prealloc)
	for i := range prealloc {
		prealloc[i] = float32((n >> uint(width-1-i)) & 1)
	}
	return prealloc
}

// DecodeBits is the inverse of EncodeBits. Values above 0.5 count as set.
func DecodeBits(a []float32) int {
	var retVal int
	for _, v := range a {
		retVal <<= 1
		if v > 0.5 {
			retVal |= 1
		}
	}
	return retVal
}
