package align

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 64, 4096, 1 << 30} {
		require.True(t, IsPowerOfTwo(n), "n=%d", n)
	}
	for _, n := range []int{0, -1, -8, 3, 6, 24, 100, 4095} {
		require.False(t, IsPowerOfTwo(n), "n=%d", n)
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct {
		n, a, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{24, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{4097, 4096, 8192},
	}
	for _, c := range cases {
		require.Equal(t, c.want, RoundUp(c.n, c.a), "RoundUp(%d, %d)", c.n, c.a)
	}
}
