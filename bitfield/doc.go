// Package bitfield tracks which chunks of a state snapshot are available,
// addressed by chunk hash.
//
// A manifest lists the block chunk hashes followed by the state chunk hashes.
// Enumerating that concatenation assigns each hash its bit index, so two peers
// holding the same manifest agree on the meaning of every bit without
// exchanging hashes. The bitfield is advertised to peers as an RLP list
// holding a single byte string; see EncodeRLP and ReadRLP.
//
// A Bitfield is not safe for concurrent mutation. Hand a Clone to encoding or
// reporting paths, or use the tracker package which serializes access.
package bitfield
