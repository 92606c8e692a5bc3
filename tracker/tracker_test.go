package tracker

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/forestrie/go-snapsync/bitfield"
	"github.com/forestrie/go-snapsync/snapsynctesting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, seed int64, blockChunks, stateChunks int, opts ...Option) (
	snapsynctesting.TestContext, *bitfield.ManifestData, *Tracker) {

	tc := snapsynctesting.NewTestContext(t, snapsynctesting.TestConfig{
		Seed: seed, TestLabelPrefix: t.Name(), LogLevel: "NOOP"})
	m := tc.Gen.Manifest(blockChunks, stateChunks)
	tr, err := NewTracker(tc.Log, m, opts...)
	require.NoError(t, err)
	return tc, m, tr
}

func TestNewTracker(t *testing.T) {
	tc := snapsynctesting.NewTestContext(t, snapsynctesting.TestConfig{
		Seed: 1, TestLabelPrefix: "TestNewTracker", LogLevel: "NOOP"})

	_, err := NewTracker(tc.Log, nil)
	require.ErrorIs(t, err, ErrNilManifest)

	id := uuid.New()
	tr, err := NewTracker(tc.Log, tc.Gen.Manifest(2, 2), WithSessionID(id))
	require.NoError(t, err)
	require.Equal(t, id, tr.ID())

	other, err := NewTracker(tc.Log, tc.Gen.Manifest(2, 2))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, other.ID())
	require.NotEqual(t, id, other.ID())
}

func TestTrackerMarkVerified(t *testing.T) {
	_, m, tr := newTestTracker(t, 2, 3, 7)
	all := snapsynctesting.ChunkHashes(m)

	require.Equal(t, uint64(2), tr.MarkVerified(all[0], all[4]))
	require.Equal(t, uint64(0), tr.MarkVerified(all[0], all[4]))
	require.Equal(t, uint64(1), tr.MarkVerified(all[4], all[9], common.Hash{}))

	require.True(t, tr.IsAvailable(all[9]))
	require.False(t, tr.IsAvailable(all[1]))
	require.ElementsMatch(t, []common.Hash{all[0], all[4], all[9]}, tr.Available().ToSlice())
	require.Equal(t, 7, tr.Needed().Cardinality())

	p := tr.Progress()
	assert.Equal(t, tr.ID(), p.SessionID)
	assert.Equal(t, uint64(10), p.Total)
	assert.Equal(t, uint64(3), p.Available)
	assert.Equal(t, uint64(7), p.Needed())
	assert.Equal(t, bitfield.StatePartial, p.State)
}

func TestTrackerCompletion(t *testing.T) {
	_, m, tr := newTestTracker(t, 3, 2, 2)
	all := snapsynctesting.ChunkHashes(m)

	require.Equal(t, bitfield.StateEmpty, tr.Progress().State)
	tr.MarkVerified(all[:3]...)
	require.False(t, tr.completed)
	tr.MarkVerified(all[3])
	require.True(t, tr.completed)
	require.Equal(t, bitfield.StateComplete, tr.Progress().State)

	_, _, resumed := newTestTracker(t, 4, 5, 5)
	resumed.MarkAll()
	require.True(t, resumed.completed)
	require.Equal(t, uint64(10), resumed.Progress().Available)
	require.Equal(t, 0, resumed.Needed().Cardinality())
}

func TestTrackerAdvertiseAndFetchable(t *testing.T) {
	_, m, local := newTestTracker(t, 5, 4, 20)
	all := snapsynctesting.ChunkHashes(m)

	remote, err := NewTracker(local.log, m)
	require.NoError(t, err)

	local.MarkVerified(all[0], all[1], all[2])
	remote.MarkVerified(all[1], all[2], all[3], all[23])

	raw, err := remote.Advertise()
	require.NoError(t, err)

	peer, err := local.PeerAvailability(raw)
	require.NoError(t, err)
	require.ElementsMatch(t, []common.Hash{all[1], all[2], all[3], all[23]}, peer.ToSlice())

	fetchable, err := local.Fetchable(raw)
	require.NoError(t, err)
	require.ElementsMatch(t, []common.Hash{all[3], all[23]}, fetchable.ToSlice())

	// Advertising does not consume the tracker.
	remote.MarkVerified(all[5])
	raw2, err := remote.Advertise()
	require.NoError(t, err)
	require.NotEqual(t, raw, raw2)
}

func TestTrackerRejectsForeignManifest(t *testing.T) {
	tc, _, local := newTestTracker(t, 6, 4, 4)

	// A peer built on a manifest with a different chunk count.
	remote, err := NewTracker(tc.Log, tc.Gen.Manifest(4, 12))
	require.NoError(t, err)
	remote.MarkAll()
	raw, err := remote.Advertise()
	require.NoError(t, err)

	_, err = local.PeerAvailability(raw)
	require.ErrorIs(t, err, bitfield.ErrIncorrectListLen)
	_, err = local.Fetchable(raw)
	require.ErrorIs(t, err, bitfield.ErrIncorrectListLen)

	_, err = local.Fetchable([]byte{0xde, 0xad})
	require.ErrorIs(t, err, bitfield.ErrMalformedPayload)
}

func TestTrackerProgressCBOR(t *testing.T) {
	_, m, tr := newTestTracker(t, 7, 3, 3)
	tr.MarkVerified(snapsynctesting.ChunkHashes(m)[2])

	data, err := tr.MarshalProgress()
	require.NoError(t, err)

	again, err := tr.MarshalProgress()
	require.NoError(t, err)
	require.Equal(t, data, again)

	codec, err := NewProgressCodec()
	require.NoError(t, err)
	got, err := UnmarshalProgress(&codec, data)
	require.NoError(t, err)
	require.Equal(t, tr.Progress(), got)
}

func TestTrackerWithCBORCodec(t *testing.T) {
	codec, err := NewProgressCodec()
	require.NoError(t, err)

	_, _, tr := newTestTracker(t, 8, 1, 1, WithCBORCodec(&codec))
	data, err := tr.MarshalProgress()
	require.NoError(t, err)

	got, err := UnmarshalProgress(&codec, data)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Total)
	require.Equal(t, bitfield.StateEmpty, got.State)
}

func TestTrackerConcurrentMarks(t *testing.T) {
	_, m, tr := newTestTracker(t, 9, 50, 450)
	all := snapsynctesting.ChunkHashes(m)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(all); i += workers {
				tr.MarkVerified(all[i])
				if i%17 == 0 {
					_, err := tr.Advertise()
					assert.NoError(t, err)
				}
			}
		}(w)
	}
	wg.Wait()

	p := tr.Progress()
	require.Equal(t, uint64(len(all)), p.Available)
	require.Equal(t, bitfield.StateComplete, p.State)

	raw, err := tr.Advertise()
	require.NoError(t, err)
	peer, err := tr.PeerAvailability(raw)
	require.NoError(t, err)
	require.Equal(t, len(all), peer.Cardinality())
}
