package completion

import "math"

// BitsetBytes returns ceil(total/8).
func BitsetBytes(total uint64) uint64 {
	n := total / BitsPerByte
	if total%BitsPerByte != 0 {
		n++
	}
	return n
}

// CheckTotal validates that total chunk indices can be addressed by a Go int,
// which also bounds the bitset to an allocatable byte slice.
func CheckTotal(total uint64) error {
	if total > uint64(math.MaxInt) {
		return ErrSizeOverflow
	}
	return nil
}

// byteMask returns the byte offset and bit mask for index.
func byteMask(index uint64) (uint64, byte) {
	return index >> 3, MSBMask >> (index & 7)
}
