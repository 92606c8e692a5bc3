package snapsynctesting

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/forestrie/go-snapsync/bitfield"
)

// TestGenerator produces deterministic chunk hashes and manifests.
type TestGenerator struct {
	rand *rand.Rand
}

func NewTestGenerator(seed int64) TestGenerator {
	return TestGenerator{rand: rand.New(rand.NewSource(seed))}
}

func (g *TestGenerator) NextHash() common.Hash {
	var h common.Hash
	// (*rand.Rand).Read always fills the slice and never errors.
	_, _ = g.rand.Read(h[:])
	return h
}

func (g *TestGenerator) Hashes(n int) []common.Hash {
	hashes := make([]common.Hash, n)
	for i := range hashes {
		hashes[i] = g.NextHash()
	}
	return hashes
}

// Manifest returns a manifest with the requested numbers of block and state
// chunk hashes.
func (g *TestGenerator) Manifest(blockChunks, stateChunks int) *bitfield.ManifestData {
	return &bitfield.ManifestData{
		BlockHashes: g.Hashes(blockChunks),
		StateHashes: g.Hashes(stateChunks),
		StateRoot:   g.NextHash(),
		BlockNumber: uint64(g.rand.Int63n(1 << 24)),
		BlockHash:   g.NextHash(),
	}
}

// Subset picks each of hashes with probability p.
func (g *TestGenerator) Subset(hashes []common.Hash, p float64) []common.Hash {
	var picked []common.Hash
	for _, h := range hashes {
		if g.rand.Float64() < p {
			picked = append(picked, h)
		}
	}
	return picked
}

// ChunkHashes returns the block hashes followed by the state hashes of m.
func ChunkHashes(m bitfield.ChunkLister) []common.Hash {
	blockHashes, stateHashes := m.ChunkHashes()
	all := make([]common.Hash, 0, len(blockHashes)+len(stateHashes))
	all = append(all, blockHashes...)
	return append(all, stateHashes...)
}

func HashSet(hashes ...common.Hash) mapset.Set[common.Hash] {
	return mapset.NewThreadUnsafeSet(hashes...)
}

// NumberedHash returns a hash whose final byte is n, convenient for hand
// written test manifests.
func NumberedHash(n byte) common.Hash {
	var h common.Hash
	h[common.HashLength-1] = n
	return h
}
