package completion

import (
	"bytes"
	"fmt"
)

// Store records which of a fixed number of chunks are available.
//
// Store is not safe for concurrent mutation.
type Store struct {
	bits         []byte
	total        uint64
	numAvailable uint64
}

// New returns a store for total chunks with every chunk unavailable.
func New(total uint64) (Store, error) {
	if err := CheckTotal(total); err != nil {
		return Store{}, err
	}
	return Store{
		bits:  make([]byte, BitsetBytes(total)),
		total: total,
	}, nil
}

// Mark sets index as available.
//
// The available count is incremented only if the bit was previously clear.
// Panics if index is outside the allocated bitset.
func (s *Store) Mark(index uint64) {
	s.checkIndex(index)
	if setBit(s.bits, index) {
		s.numAvailable++
	}
}

// Has returns true if index has been marked. Panics if index is outside the
// allocated bitset.
func (s *Store) Has(index uint64) bool {
	s.checkIndex(index)
	return IsSet(index, s.bits)
}

// Bytes returns a copy of the bitset, suitable for framing into a wire
// message.
func (s *Store) Bytes() []byte {
	return bytes.Clone(s.bits)
}

func (s *Store) NumAvailable() uint64 { return s.numAvailable }
func (s *Store) Total() uint64        { return s.total }

// Clone returns an independent copy of the store.
func (s *Store) Clone() Store {
	return Store{
		bits:         s.Bytes(),
		total:        s.total,
		numAvailable: s.numAvailable,
	}
}

func (s *Store) checkIndex(index uint64) {
	if capacity := uint64(len(s.bits)) * BitsPerByte; index >= capacity {
		panic(fmt.Sprintf("completion: index %d out of range [0, %d)", index, capacity))
	}
}
