package tracker

import "errors"

var (
	ErrNilManifest = errors.New("tracker: a manifest is required")
	ErrCBORCodec   = errors.New("tracker: failed to create the progress cbor codec")
)
