package tracker

import (
	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-snapsync/bitfield"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Progress is a point in time report of a sync session's chunk completion.
type Progress struct {
	SessionID uuid.UUID      `cbor:"1,keyasint"`
	Total     uint64         `cbor:"2,keyasint"`
	Available uint64         `cbor:"3,keyasint"`
	State     bitfield.State `cbor:"4,keyasint"`
}

// Needed returns the number of chunks still to fetch.
func (p Progress) Needed() uint64 { return p.Total - p.Available }

// NewProgressCodec returns the deterministic codec used for progress reports.
// Duplicate map keys are rejected on decode.
func NewProgressCodec() (commoncbor.CBORCodec, error) {
	decOpts := commoncbor.NewDeterministicDecOpts()
	decOpts.DupMapKey = cbor.DupMapKeyEnforcedAPF
	codec, err := commoncbor.NewCBORCodec(commoncbor.NewDeterministicEncOpts(), decOpts)
	if err != nil {
		return commoncbor.CBORCodec{}, err
	}
	return codec, nil
}

// UnmarshalProgress decodes a report produced by Tracker.MarshalProgress.
func UnmarshalProgress(codec *commoncbor.CBORCodec, data []byte) (Progress, error) {
	var p Progress
	if err := codec.UnmarshalInto(data, &p); err != nil {
		return Progress{}, err
	}
	return p, nil
}
