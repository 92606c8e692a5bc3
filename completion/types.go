package completion

import "errors"

const (
	// BitsPerByte is the number of chunk indices packed into each byte.
	BitsPerByte = 8

	// MSBMask is the mask for bit index 0 of a byte.
	MSBMask = 0x80
)

var (
	ErrSizeOverflow = errors.New("completion: size computation overflow")
)
