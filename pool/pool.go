package pool

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/joshuapare/blockpool/internal/align"
	"github.com/joshuapare/blockpool/internal/region"
)

const (
	// freeLinkSize is the number of bytes a free slot lends to the embedded
	// free-list: the little-endian offset of the next free slot. Every stride
	// is at least this large.
	freeLinkSize = 8

	// minAlignment is the natural pointer alignment of the platform, the floor
	// for caller-requested alignments.
	minAlignment = int(unsafe.Alignof(uintptr(0)))

	// freeListEnd terminates the embedded free-list.
	freeListEnd = ^uint64(0)
)

// Pool is a fixed-size block allocator. Construct with New, release with Close,
// and pass by pointer only; a Pool must not be copied.
type Pool struct {
	blockSize  int
	blockCount int
	alignment  int
	stride     int

	data    []byte       // the region; len(data) == stride*blockCount
	base    uintptr      // address of data[0], a multiple of alignment
	release func() error // returns the region to the memory system

	mu        sync.Mutex
	freeHead  uint64 // offset of the first free slot, freeListEnd when empty
	freeCount int
	occupied  []byte // per-slot flag: 0 free, 1 allocated
	closed    bool
	stats     Stats
}

// New constructs a pool of blockCount blocks of blockSize bytes each, every
// block starting on an alignment-byte boundary. alignment must be a power of
// two no smaller than the platform's pointer alignment.
//
// Configuration errors wrap ErrInvalidConfig; a failed region reservation
// wraps ErrExhausted.
func New(blockSize, blockCount, alignment int) (*Pool, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0 (got %d)", ErrInvalidConfig, blockSize)
	}
	if blockCount <= 0 {
		return nil, fmt.Errorf("%w: block count must be > 0 (got %d)", ErrInvalidConfig, blockCount)
	}
	if !align.IsPowerOfTwo(alignment) {
		return nil, fmt.Errorf("%w: alignment must be a power of two (got %d)", ErrInvalidConfig, alignment)
	}
	if alignment < minAlignment {
		return nil, fmt.Errorf("%w: alignment must be >= %d (got %d)", ErrInvalidConfig, minAlignment, alignment)
	}

	if blockSize > math.MaxInt-alignment {
		return nil, fmt.Errorf("%w: block size overflows when aligned (%d)", ErrInvalidConfig, blockSize)
	}
	stride := align.RoundUp(max(blockSize, freeLinkSize), alignment)
	if stride > math.MaxInt/blockCount {
		return nil, fmt.Errorf("%w: region size overflows (stride %d * count %d)",
			ErrInvalidConfig, stride, blockCount)
	}
	total := stride * blockCount

	data, release, err := region.Reserve(total, alignment)
	if err != nil {
		return nil, fmt.Errorf("%w: reserving %d-byte region: %v", ErrExhausted, total, err)
	}

	p := &Pool{
		blockSize:  blockSize,
		blockCount: blockCount,
		alignment:  alignment,
		stride:     stride,
		data:       data,
		base:       region.BaseAddr(data),
		release:    release,
		freeHead:   freeListEnd,
		freeCount:  blockCount,
		occupied:   make([]byte, blockCount),
	}

	// Thread every slot onto the free-list. Prepending leaves the
	// highest-indexed slot at the head; the order is not a guarantee.
	for i := 0; i < blockCount; i++ {
		off := i * stride
		binary.LittleEndian.PutUint64(data[off:off+freeLinkSize], p.freeHead)
		p.freeHead = uint64(off)
	}

	return p, nil
}

// Alloc pops one free block and returns its payload: a slice of exactly
// BlockSize bytes starting on an Alignment-byte boundary. The bytes are the
// caller's until the matching Free; their initial contents are unspecified.
//
// Alloc fails with ErrExhausted when every block is in use. It never blocks
// and never retries.
func (p *Pool) Alloc() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.freeHead == freeListEnd {
		p.stats.FailedAllocs++
		return nil, fmt.Errorf("%w: all %d blocks in use", ErrExhausted, p.blockCount)
	}

	off := int(p.freeHead)
	p.freeHead = binary.LittleEndian.Uint64(p.data[off : off+freeLinkSize])
	p.occupied[off/p.stride] = 1
	p.freeCount--
	p.stats.Allocs++

	return p.data[off : off+p.blockSize : off+p.blockSize], nil
}

// Free returns a block obtained from Alloc to the pool. A nil slice is a
// no-op. Any other slice that does not point at a block start of this pool, or
// that points at a block already free, fails with ErrInvalidFree and leaves
// the pool unchanged.
func (p *Pool) Free(b []byte) error {
	if b == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	off, err := p.slotOffset(b)
	if err != nil {
		p.stats.FailedFrees++
		return err
	}
	idx := off / p.stride
	if p.occupied[idx] == 0 {
		p.stats.FailedFrees++
		return fmt.Errorf("%w: double free or corruption at block %d", ErrInvalidFree, idx)
	}

	binary.LittleEndian.PutUint64(p.data[off:off+freeLinkSize], p.freeHead)
	p.freeHead = uint64(off)
	p.occupied[idx] = 0
	p.freeCount++
	p.stats.Frees++

	return nil
}

// slotOffset recovers the region offset of the slot backing b, rejecting
// slices that did not originate from Alloc on this pool. Bounds and stride
// arithmetic on the backing address only; b's contents are never read.
func (p *Pool) slotOffset(b []byte) (int, error) {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < p.base || addr >= p.base+uintptr(len(p.data)) {
		return 0, fmt.Errorf("%w: block does not belong to this pool", ErrInvalidFree)
	}
	off := int(addr - p.base)
	if off%p.stride != 0 {
		return 0, fmt.Errorf("%w: address is not a block start (offset %d, stride %d)",
			ErrInvalidFree, off, p.stride)
	}
	return off, nil
}

// Close releases the region. After Close every Alloc and Free fails with
// ErrClosed, and no previously returned block may be touched. Repeated Close
// calls are no-ops.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.freeHead = freeListEnd
	p.freeCount = 0
	p.occupied = nil
	p.data = nil

	return p.release()
}

// BlockSize returns the requested payload size in bytes.
func (p *Pool) BlockSize() int { return p.blockSize }

// BlockCount returns the number of blocks in the pool.
func (p *Pool) BlockCount() int { return p.blockCount }

// Alignment returns the byte alignment guaranteed for every block start.
func (p *Pool) Alignment() int { return p.alignment }

// Stride returns the byte distance between consecutive block starts.
func (p *Pool) Stride() int { return p.stride }

// CapacityBytes returns the total region size, Stride()*BlockCount().
func (p *Pool) CapacityBytes() int { return p.stride * p.blockCount }

// FreeBlocks returns the number of currently free blocks. The value is a
// snapshot and may be stale by the time it is observed under concurrent use.
func (p *Pool) FreeBlocks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freeCount
}
