package region

import "unsafe"

// baseAddr returns the address of the first byte backing s.
// Valid for any non-empty slice regardless of length vs. capacity.
func baseAddr(s []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}

// BaseAddr is the exported form used by pool validation and by tests that assert
// alignment postconditions.
func BaseAddr(s []byte) uintptr {
	return baseAddr(s)
}
