// Package region reserves the contiguous, aligned memory regions that back block
// pools. On unix the region is an anonymous private mapping; elsewhere it is a
// heap-backed buffer. Either way the returned slice starts on an address that is a
// multiple of the requested alignment, and the release function returns the region
// to the operating system (or the garbage collector) exactly once.
package region

import (
	"fmt"

	"github.com/joshuapare/blockpool/internal/align"
)

// Reserve obtains a region of exactly size bytes whose base address is a multiple
// of alignment. alignment must be a power of two. The returned release function is
// safe to call more than once; only the first call releases the region.
func Reserve(size, alignment int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("region: size must be > 0 (got %d)", size)
	}
	if !align.IsPowerOfTwo(alignment) {
		return nil, nil, fmt.Errorf("region: alignment must be a power of two (got %d)", alignment)
	}
	return reserve(size, alignment)
}

// alignedSlice carves the aligned size-byte window out of raw. raw must be at
// least size+alignment bytes so a conforming base always exists.
func alignedSlice(raw []byte, size, alignment int) []byte {
	addr := baseAddr(raw)
	shift := int((uintptr(alignment) - addr%uintptr(alignment)) % uintptr(alignment))
	return raw[shift : shift+size : shift+size]
}
