package completion

/*

# Completion bitsets for snapshot chunk sync

This package provides the storage primitive behind a chunk bitfield: one bit
per chunk index, packed into a byte slice, with a population count that is
maintained as bits are set rather than recomputed.

The package keeps to:

- explicit byte layouts
- index arithmetic on byte slices
- a burden of knowledge on the caller for hot paths

## Bit numbering

Bits are numbered MSB-first within each byte:

	index:  0 1 2 3 4 5 6 7 | 8 9 ...
	byte:   0               | 1
	mask:   0x80 >> (index % 8)

This is the layout advertised to peers, so it must not change. Padding bits in
the final byte (indices >= total) stay clear as long as the caller only marks
indices below total.

## Counting

Store.Mark increments the available count only when a bit goes from 0 to 1.
Marking is idempotent and there is no unmark; the count only grows.

## Index contract

Indices handed to Store.Mark and Store.Has come from the owning bitfield's
manifest derived index map, so an index outside the allocated bitset is a
programming error and panics. IsSet is the unchecked form for buffers decoded from peers, after
their length has been validated.

*/
