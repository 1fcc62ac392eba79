//go:build !unix

package region

// reserve allocates from the Go heap when mmap is not available. The buffer is
// padded by one alignment unit and the base slid forward, since the runtime only
// guarantees small natural alignments for byte slices. Release is a no-op; the
// garbage collector reclaims the buffer once the pool drops its reference.
func reserve(size, alignment int) ([]byte, func() error, error) {
	raw := make([]byte, size+alignment)
	return alignedSlice(raw, size, alignment), func() error { return nil }, nil
}
