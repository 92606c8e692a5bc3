package tracker

import (
	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/google/uuid"
)

type TrackerOptions struct {
	SessionID uuid.UUID
	CBORCodec *commoncbor.CBORCodec
}

// Option is a generic option type. Implementations type assert to their
// options target record and ignore the option if that fails.
type Option func(any)

// WithSessionID sets the id used to label the session in logs and progress
// reports. A random id is used by default.
func WithSessionID(id uuid.UUID) Option {
	return func(opts any) {
		if o, ok := opts.(*TrackerOptions); ok {
			o.SessionID = id
		}
	}
}

func WithCBORCodec(codec *commoncbor.CBORCodec) Option {
	return func(opts any) {
		if o, ok := opts.(*TrackerOptions); ok {
			o.CBORCodec = codec
		}
	}
}
