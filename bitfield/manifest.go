package bitfield

import (
	"github.com/ethereum/go-ethereum/common"
)

// ChunkLister provides the ordered chunk hashes of a snapshot manifest.
//
// The order of both slices is part of the wire contract and must not change
// for the lifetime of a bitfield.
type ChunkLister interface {
	ChunkHashes() (blockHashes []common.Hash, stateHashes []common.Hash)
}

// ManifestData is the subset of a snapshot manifest consumed when tracking
// chunk completion.
type ManifestData struct {
	BlockHashes []common.Hash
	StateHashes []common.Hash
	StateRoot   common.Hash
	BlockNumber uint64
	BlockHash   common.Hash
}

func (m *ManifestData) ChunkHashes() ([]common.Hash, []common.Hash) {
	return m.BlockHashes, m.StateHashes
}
