// Package tracker drives chunk completion for a single snapshot sync session.
//
// A Tracker owns one bitfield.Bitfield and serializes all access to it, so it
// can be shared between the goroutines verifying chunks and those talking to
// peers.
package tracker

import (
	"fmt"
	"sync"

	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/forestrie/go-snapsync/bitfield"
	"github.com/google/uuid"
)

type Tracker struct {
	id       uuid.UUID
	log      logger.Logger
	manifest bitfield.ChunkLister
	codec    commoncbor.CBORCodec

	mu        sync.Mutex
	bf        *bitfield.Bitfield
	completed bool
}

// NewTracker creates a tracker for manifest m with no chunks available.
func NewTracker(log logger.Logger, m bitfield.ChunkLister, opts ...Option) (*Tracker, error) {
	if m == nil {
		return nil, ErrNilManifest
	}

	options := TrackerOptions{}
	for _, o := range opts {
		o(&options)
	}

	bf, err := bitfield.New(m)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		id:       options.SessionID,
		log:      log,
		manifest: m,
		bf:       bf,
	}
	if t.id == uuid.Nil {
		t.id = uuid.New()
	}
	if options.CBORCodec != nil {
		t.codec = *options.CBORCodec
	} else {
		t.codec, err = NewProgressCodec()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCBORCodec, err)
		}
	}

	t.log.Debugf("session %s: tracking %d chunks", t.id, bf.TotalChunks())
	return t, nil
}

func (t *Tracker) ID() uuid.UUID { return t.id }

// MarkVerified marks the given chunks as available and returns how many were
// not already marked.
func (t *Tracker) MarkVerified(hashes ...common.Hash) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.bf.NumAvailable()
	for _, h := range hashes {
		t.bf.MarkOne(h)
	}
	added := t.bf.NumAvailable() - before
	t.noteCompletion()
	return added
}

// MarkAll marks every chunk as available, for sessions resuming with all
// chunks already verified.
func (t *Tracker) MarkAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bf.MarkAll()
	t.noteCompletion()
}

// noteCompletion logs the transition to complete exactly once. Must be called
// with t.mu held.
func (t *Tracker) noteCompletion() {
	if t.completed || !t.bf.IsComplete() {
		return
	}
	t.completed = true
	t.log.Infof("session %s: all %d snapshot chunks available", t.id, t.bf.TotalChunks())
}

func (t *Tracker) IsAvailable(hash common.Hash) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bf.IsAvailable(hash)
}

func (t *Tracker) Available() mapset.Set[common.Hash] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bf.AvailableChunks()
}

func (t *Tracker) Needed() mapset.Set[common.Hash] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bf.NeededChunks()
}

// Advertise encodes the current completion for sending to peers. The encoding
// is taken from a clone so the lock is not held while encoding.
func (t *Tracker) Advertise() ([]byte, error) {
	t.mu.Lock()
	snapshot := t.bf.Clone()
	t.mu.Unlock()

	return snapshot.IntoRLP()
}

// PeerAvailability decodes a bitfield advertised by a peer. An error means the
// peer message is malformed or was built from a different manifest, and
// should be discarded.
func (t *Tracker) PeerAvailability(raw []byte) (mapset.Set[common.Hash], error) {
	available, err := bitfield.ReadRLP(t.manifest, raw)
	if err != nil {
		t.log.Debugf("session %s: discarding peer bitfield: %v", t.id, err)
		return nil, err
	}
	return available, nil
}

// Fetchable returns the chunks we still need that the peer advertising raw
// has available.
func (t *Tracker) Fetchable(raw []byte) (mapset.Set[common.Hash], error) {
	peer, err := t.PeerAvailability(raw)
	if err != nil {
		return nil, err
	}
	return t.Needed().Intersect(peer), nil
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Progress{
		SessionID: t.id,
		Total:     t.bf.TotalChunks(),
		Available: t.bf.NumAvailable(),
		State:     t.bf.State(),
	}
}

// MarshalProgress returns the current Progress as deterministic CBOR.
func (t *Tracker) MarshalProgress() ([]byte, error) {
	return t.codec.MarshalCBOR(t.Progress())
}
