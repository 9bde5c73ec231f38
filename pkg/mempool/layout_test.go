package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeLayoutSmallAlign(t *testing.T) {
	l := computeLayout(8, 24)
	require.Equal(t, uintptr(16), l.HeaderSize)
	require.Equal(t, uintptr(40), l.BlockSize)
	require.Equal(t, uintptr(16), l.PageHeaderSize)
	require.Equal(t, uintptr(8), l.Align)
	require.Equal(t, uintptr(16+40*1024), l.PageSize)

	// payload size rounds up to the next multiple of 8
	require.Equal(t, uintptr(16+16), computeLayout(4, 12).BlockSize)
	require.Equal(t, uintptr(16+8), computeLayout(1, 1).BlockSize)
	require.Equal(t, uintptr(16), computeLayout(1, 0).BlockSize)
}

func TestComputeLayoutAlign16(t *testing.T) {
	l := computeLayout(16, 32)
	require.Equal(t, uintptr(32), l.HeaderSize)
	require.Equal(t, uintptr(64), l.BlockSize)
	require.Equal(t, uintptr(16), l.PageHeaderSize)
	require.Equal(t, uintptr(16), l.Align)
}

func TestComputeLayoutLargeAlign(t *testing.T) {
	l := computeLayout(32, 64)
	require.Equal(t, uintptr(32), l.HeaderSize)
	require.Equal(t, uintptr(96), l.BlockSize)
	require.Equal(t, uintptr(32), l.PageHeaderSize)
	require.Equal(t, uintptr(32), l.Align)

	l = computeLayout(64, 128)
	require.Equal(t, uintptr(64), l.HeaderSize)
	require.Equal(t, uintptr(192), l.BlockSize)
	require.Equal(t, uintptr(64), l.PageHeaderSize)
	require.Equal(t, uintptr(64+192*1024), l.PageSize)
}

func TestLayoutOf(t *testing.T) {
	l := layoutOf[uint64]()
	require.Equal(t, uintptr(8), l.ElemSize)
	require.Equal(t, uintptr(8), l.ElemAlign)
	require.Equal(t, uintptr(24), l.BlockSize)

	type rec struct {
		a uint64
		b uint32
	}
	l = layoutOf[rec]()
	require.Equal(t, uintptr(16), l.ElemSize)
	require.Equal(t, uintptr(16+16), l.BlockSize)
}

func TestLayoutImmutable(t *testing.T) {
	pool := New[uint64]()
	before := pool.Layout()

	for i := 0; i < 10; i++ {
		_, err := pool.Alloc()
		require.NoError(t, err)
	}

	require.Equal(t, before, pool.Layout())
}
