package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocAlignment(t *testing.T) {
	a := New(4096)
	defer a.Close()

	for _, align := range []uintptr{1, 2, 4, 8, 16} {
		p, err := a.Alloc(10, align)
		require.NoError(t, err)
		require.Zero(t, uintptr(p)%align)
	}
}

func TestGrowthAndReset(t *testing.T) {
	a := New(1024)
	defer a.Close()

	for i := 0; i < 10; i++ {
		_, err := a.Alloc(512, 8)
		require.NoError(t, err)
	}
	require.Greater(t, a.PageCount(), 1)

	a.Reset()
	require.Equal(t, 1, a.PageCount())

	// the retained page is reused from the start
	_, err := a.Alloc(512, 8)
	require.NoError(t, err)
	require.Equal(t, 1, a.PageCount())
}

func TestOversizedAlloc(t *testing.T) {
	a := New(256)
	defer a.Close()

	_, err := a.Alloc(257, 8)
	require.ErrorIs(t, err, ErrSizeTooLarge)
}

func TestClosed(t *testing.T) {
	a := New(0)
	require.NoError(t, a.Close())

	_, err := a.Alloc(8, 8)
	require.ErrorIs(t, err, ErrClosed)
}

func TestTyped(t *testing.T) {
	type rec struct {
		id    uint64
		score float64
	}

	a := New(0)
	defer a.Close()

	typed := NewTyped[rec](a)
	seen := map[*rec]bool{}
	for i := 0; i < 100; i++ {
		ptr, err := typed.New()
		require.NoError(t, err)
		require.Zero(t, uintptr(unsafe.Pointer(ptr))%unsafe.Alignof(rec{}))
		require.Equal(t, rec{}, *ptr)
		require.False(t, seen[ptr])
		seen[ptr] = true

		ptr.id = uint64(i)
	}
}
