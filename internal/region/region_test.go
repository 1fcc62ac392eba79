package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveRejectsBadArguments(t *testing.T) {
	cases := []struct {
		name      string
		size      int
		alignment int
	}{
		{"zero size", 0, 64},
		{"negative size", -1, 64},
		{"zero alignment", 128, 0},
		{"non-power-of-two alignment", 128, 24},
		{"negative alignment", 128, -8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf, release, err := Reserve(c.size, c.alignment)
			require.Error(t, err)
			require.Nil(t, buf)
			require.Nil(t, release)
		})
	}
}

func TestReserveAlignment(t *testing.T) {
	for _, alignment := range []int{8, 16, 64, 256, 4096, 1 << 14} {
		buf, release, err := Reserve(1024, alignment)
		require.NoError(t, err, "alignment=%d", alignment)
		require.Len(t, buf, 1024)
		require.Zero(t, BaseAddr(buf)%uintptr(alignment),
			"base address not aligned to %d", alignment)
		require.NoError(t, release())
	}
}

func TestReserveRegionIsWritable(t *testing.T) {
	const size = 8192
	buf, release, err := Reserve(size, 64)
	require.NoError(t, err)
	defer func() { require.NoError(t, release()) }()

	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		require.Equal(t, byte(i), buf[i], "byte %d", i)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	buf, release, err := Reserve(4096, 4096)
	require.NoError(t, err)
	require.NotNil(t, buf)

	require.NoError(t, release())
	require.NoError(t, release())
}
