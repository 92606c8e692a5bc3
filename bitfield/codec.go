package bitfield

import (
	"fmt"
	"io"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/forestrie/go-snapsync/completion"
)

// wireBitfield is the peer representation: a one element list holding the
// packed completion bits as a byte string.
type wireBitfield struct {
	Bits []byte
}

// EncodeRLP implements rlp.Encoder.
func (b *Bitfield) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, wireBitfield{Bits: b.completion.Bytes()})
}

// IntoRLP encodes the bitfield for advertising to peers. It is intended as the
// final use of b; encode a Clone if b will continue to be marked.
func (b *Bitfield) IntoRLP() ([]byte, error) {
	return rlp.EncodeToBytes(b)
}

// ReadRLP decodes a peer bitfield against the local manifest m and returns the
// hashes the peer has available.
//
// The decoded byte string must be exactly the length implied by m, otherwise
// ErrIncorrectListLen is returned. The result describes the peer and is
// returned as a plain set rather than a Bitfield.
func ReadRLP(m ChunkLister, raw []byte) (mapset.Set[common.Hash], error) {
	var payload wireBitfield
	if err := rlp.DecodeBytes(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	hashes, length := ReadManifest(m)
	if uint64(len(payload.Bits)) != length {
		return nil, fmt.Errorf(
			"%w: got %d bytes, want %d", ErrIncorrectListLen, len(payload.Bits), length)
	}

	capacity := length * completion.BitsPerByte
	available := mapset.NewThreadUnsafeSet[common.Hash]()
	for h, index := range hashes {
		// A repeated manifest hash can leave an index past the bitset.
		if index >= capacity {
			continue
		}
		if completion.IsSet(index, payload.Bits) {
			available.Add(h)
		}
	}
	return available, nil
}
