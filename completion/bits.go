package completion

// IsSet returns true if the bit for index is set in bits.
//
// bits may be any MSB-first bitset, not only one owned by a Store. The caller
// must ensure index < 8*len(bits).
func IsSet(index uint64, bits []byte) bool {
	byteIdx, mask := byteMask(index)
	return bits[byteIdx]&mask != 0
}

// setBit sets the bit for index and reports whether it was previously clear.
func setBit(bits []byte, index uint64) bool {
	byteIdx, mask := byteMask(index)
	if bits[byteIdx]&mask != 0 {
		return false
	}
	bits[byteIdx] |= mask
	return true
}
