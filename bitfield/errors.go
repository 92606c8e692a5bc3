package bitfield

import "errors"

var (
	// ErrIncorrectListLen is returned when a peer bitfield does not have
	// exactly the byte length implied by the local manifest.
	ErrIncorrectListLen = errors.New("bitfield: incorrect bitfield length for manifest")
	// ErrMalformedPayload wraps rlp decoding failures of a peer bitfield.
	ErrMalformedPayload = errors.New("bitfield: malformed bitfield payload")
)
