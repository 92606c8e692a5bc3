package bitfield

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/forestrie/go-snapsync/completion"
)

// ReadManifest derives the hash to bit index map for a manifest, and the byte
// length of the corresponding bitfield.
//
// Block hashes are numbered first, then state hashes, from 0. Hashes are
// expected to be unique. A repeated hash keeps the index of its last
// occurrence.
func ReadManifest(m ChunkLister) (map[common.Hash]uint64, uint64) {
	blockHashes, stateHashes := m.ChunkHashes()

	hashes := make(map[common.Hash]uint64, len(blockHashes)+len(stateHashes))
	var index uint64
	for _, chunks := range [][]common.Hash{blockHashes, stateHashes} {
		for _, h := range chunks {
			hashes[h] = index
			index++
		}
	}
	return hashes, completion.BitsetBytes(uint64(len(hashes)))
}
