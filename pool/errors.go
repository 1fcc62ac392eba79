package pool

import "errors"

var (
	// ErrInvalidConfig indicates rejected construction parameters: zero block
	// size or count, an alignment that is not a power of two or is below the
	// platform minimum, or a region size that overflows int.
	ErrInvalidConfig = errors.New("pool: invalid configuration")

	// ErrExhausted indicates no memory was available: at construction the
	// region reservation failed, or at Alloc every block was in use.
	ErrExhausted = errors.New("pool: no free blocks")

	// ErrInvalidFree indicates a release request that did not originate from
	// Alloc on this pool, or a block that is already free (double free or
	// corruption).
	ErrInvalidFree = errors.New("pool: invalid free")

	// ErrClosed indicates an operation on a pool after Close.
	ErrClosed = errors.New("pool: pool is closed")
)
