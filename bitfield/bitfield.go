package bitfield

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/forestrie/go-snapsync/completion"
)

// State is the completion state of a bitfield. Chunks are never unmarked, so
// a bitfield only moves forward through the states.
type State uint8

const (
	StateEmpty State = iota
	StatePartial
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartial:
		return "partial"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Bitfield records which chunks of a single manifest are locally available.
type Bitfield struct {
	// hashes maps each chunk hash to its bit index. It is never modified
	// after New and is shared between clones.
	hashes     map[common.Hash]uint64
	completion completion.Store
}

// New returns a bitfield for the chunks of m with no chunks available.
func New(m ChunkLister) (*Bitfield, error) {
	hashes, _ := ReadManifest(m)
	store, err := completion.New(uint64(len(hashes)))
	if err != nil {
		return nil, err
	}
	return &Bitfield{
		hashes:     hashes,
		completion: store,
	}, nil
}

// MarkOne marks the chunk with the given hash as available. Hashes that are
// not in the manifest are ignored.
func (b *Bitfield) MarkOne(hash common.Hash) {
	if index, ok := b.hashes[hash]; ok {
		b.completion.Mark(index)
	}
}

// MarkSome marks every member of hashes as available.
func (b *Bitfield) MarkSome(hashes mapset.Set[common.Hash]) {
	if hashes == nil {
		return
	}
	hashes.Each(func(h common.Hash) bool {
		b.MarkOne(h)
		return false
	})
}

// MarkAll marks every chunk in the manifest as available.
func (b *Bitfield) MarkAll() {
	for _, index := range b.hashes {
		b.completion.Mark(index)
	}
}

// IsAvailable returns true if hash is in the manifest and has been marked.
func (b *Bitfield) IsAvailable(hash common.Hash) bool {
	index, ok := b.hashes[hash]
	if !ok {
		return false
	}
	return b.completion.Has(index)
}

// AvailableChunks returns the hashes of all marked chunks.
//
// This scans the whole manifest.
func (b *Bitfield) AvailableChunks() mapset.Set[common.Hash] {
	return b.collect(true)
}

// NeededChunks returns the hashes of all chunks not yet marked.
//
// This scans the whole manifest.
func (b *Bitfield) NeededChunks() mapset.Set[common.Hash] {
	return b.collect(false)
}

func (b *Bitfield) collect(available bool) mapset.Set[common.Hash] {
	n := b.completion.NumAvailable()
	if !available {
		n = b.completion.Total() - n
	}
	chunks := mapset.NewThreadUnsafeSetWithSize[common.Hash](int(n))
	for h, index := range b.hashes {
		if b.completion.Has(index) == available {
			chunks.Add(h)
		}
	}
	return chunks
}

func (b *Bitfield) NumAvailable() uint64 { return b.completion.NumAvailable() }
func (b *Bitfield) TotalChunks() uint64  { return b.completion.Total() }

// State derives the completion state from the available count. A manifest
// with no chunks is complete.
func (b *Bitfield) State() State {
	switch n := b.completion.NumAvailable(); {
	case n >= b.completion.Total():
		return StateComplete
	case n == 0:
		return StateEmpty
	default:
		return StatePartial
	}
}

func (b *Bitfield) IsComplete() bool { return b.State() == StateComplete }

// Bytes returns a copy of the packed completion bits.
func (b *Bitfield) Bytes() []byte { return b.completion.Bytes() }

// Clone returns a copy whose completion can be encoded or mutated
// independently of b.
func (b *Bitfield) Clone() *Bitfield {
	return &Bitfield{
		hashes:     b.hashes,
		completion: b.completion.Clone(),
	}
}
