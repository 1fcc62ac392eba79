//go:build unix

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// reserve maps an anonymous private region. mmap already returns page-aligned
// memory, but alignments above the page size are legal, so the mapping is padded
// by one alignment unit and the base is slid forward to the first conforming
// address. The release function unmaps the whole original mapping.
func reserve(size, alignment int) ([]byte, func() error, error) {
	mapLen := size + alignment
	raw, err := unix.Mmap(-1, 0, mapLen,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, fmt.Errorf("region: mmap %d bytes: %w", mapLen, err)
	}

	released := false
	release := func() error {
		if released || raw == nil {
			return nil
		}
		released = true
		err := unix.Munmap(raw)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}

	return alignedSlice(raw, size, alignment), release, nil
}
