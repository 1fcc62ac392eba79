// Package pool implements a fixed-size block allocator over a single contiguous,
// aligned memory region.
//
// # Overview
//
// A Pool carves one region into blockCount slots of identical stride and hands
// them out one at a time. Allocation and release are O(1): free slots are
// threaded onto an intrusive singly-linked free-list stored inside the slots
// themselves, and a per-slot occupancy table rejects double frees and foreign
// slices without ever dereferencing caller input. All mutating operations are
// serialized by a single mutex.
//
// # Usage Example
//
//	p, err := pool.New(128, 1024, 64)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	buf, err := p.Alloc()
//	if err != nil {
//	    // pool.ErrExhausted when every block is in use
//	    return err
//	}
//
//	// buf is exactly 128 bytes, starting on a 64-byte boundary.
//	copy(buf, payload)
//
//	if err := p.Free(buf); err != nil {
//	    return err
//	}
//
// # Geometry
//
// The distance between consecutive slot starts is the stride:
//
//	stride = roundUp(max(blockSize, 8), alignment)
//
// The 8-byte floor reserves room for the embedded free-list link, which occupies
// the first bytes of a slot only while the slot is free; Alloc hands those bytes
// to the caller as ordinary payload. The region holds stride*blockCount bytes
// and its base address is itself a multiple of alignment, so every slot start
// satisfies the alignment guarantee.
//
// # Allocation Order
//
// The free-list is built by prepending slots at construction, so the first
// Alloc after New returns the highest-indexed slot. This ordering is an
// implementation detail and is not guaranteed; callers must not rely on any
// particular slot order.
//
// # Failure Modes
//
// Errors are sentinel values selected with errors.Is:
//
//   - ErrInvalidConfig: rejected construction parameters (zero sizes, bad
//     alignment, region size overflow). Reconstruct with corrected values.
//   - ErrExhausted: the region reservation failed at construction, or Alloc
//     found no free block. Alloc never blocks or retries; backoff is the
//     caller's policy.
//   - ErrInvalidFree: the slice passed to Free is foreign, misaligned, or
//     already free. Signals a memory-safety bug in the caller; never masked.
//   - ErrClosed: the pool has been closed.
//
// A failed operation leaves the free-list, occupancy table, and free count
// exactly as they were.
//
// # Thread Safety
//
// Alloc, Free, FreeBlocks, Stats, and Close are safe for concurrent use; each
// holds the pool mutex for its full duration. Geometry accessors read
// construction-time values and take no lock. A Pool must not be copied after
// construction: exactly one owner holds it, passed by pointer, until Close.
package pool
