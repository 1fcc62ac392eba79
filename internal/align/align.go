// Package align provides byte-alignment arithmetic shared by the pool and the
// region reservation layer.
package align

// IsPowerOfTwo reports whether n is a positive power of two.
//
// Example:
//
//	IsPowerOfTwo(1)  = true
//	IsPowerOfTwo(64) = true
//	IsPowerOfTwo(24) = false
//	IsPowerOfTwo(0)  = false
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// RoundUp returns n aligned up to the next multiple of a.
// a must be a power of two.
//
// Example:
//
//	RoundUp(1, 8)   = 8
//	RoundUp(8, 8)   = 8
//	RoundUp(24, 64) = 64
//	RoundUp(65, 64) = 128
func RoundUp(n, a int) int {
	mask := a - 1
	return (n + mask) &^ mask
}
