package vector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-mempool/pkg/allocator"
)

func newVec(t *testing.T) *Vector[int] {
	t.Helper()
	return New[int](allocator.NewSystem[int]())
}

func TestPushPop(t *testing.T) {
	v := newVec(t)

	_, err := v.Pop()
	require.ErrorIs(t, err, ErrEmpty)

	const n = 1000
	for i := 0; i < n; i++ {
		require.NoError(t, v.Push(i))
	}
	require.Equal(t, n, v.Len())
	require.GreaterOrEqual(t, v.Cap(), n)

	for i := n - 1; i >= 0; i-- {
		elem, err := v.Pop()
		require.NoError(t, err)
		require.Equal(t, i, elem)
	}
	require.Equal(t, 0, v.Len())
}

func TestGetSet(t *testing.T) {
	v := newVec(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Push(i))
	}

	elem, err := v.Get(7)
	require.NoError(t, err)
	require.Equal(t, 7, elem)

	require.NoError(t, v.Set(7, 70))
	elem, _ = v.Get(7)
	require.Equal(t, 70, elem)

	_, err = v.Get(10)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.Get(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.ErrorIs(t, v.Set(10, 0), ErrOutOfBounds)
}

func TestReserveTruncate(t *testing.T) {
	v := newVec(t)

	require.NoError(t, v.Reserve(64))
	require.GreaterOrEqual(t, v.Cap(), 64)
	require.Equal(t, 0, v.Len())

	capacity := v.Cap()
	for i := 0; i < 32; i++ {
		require.NoError(t, v.Push(i))
	}
	require.Equal(t, capacity, v.Cap(), "pushes within reserve must not reallocate")

	require.NoError(t, v.Truncate(5))
	require.Equal(t, 5, v.Len())
	require.Equal(t, capacity, v.Cap())

	require.ErrorIs(t, v.Truncate(6), ErrOutOfBounds)
	require.ErrorIs(t, v.Truncate(-1), ErrOutOfBounds)
}

func TestScan(t *testing.T) {
	v := newVec(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, v.Push(i))
	}

	collected := []int{}
	require.NoError(t, v.Scan(0, false, func(_ int, elem int) (bool, error) {
		collected = append(collected, elem)
		return false, nil
	}))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, collected)

	collected = collected[:0]
	require.NoError(t, v.Scan(9, true, func(_ int, elem int) (bool, error) {
		collected = append(collected, elem)
		return elem == 5, nil
	}))
	require.Equal(t, []int{9, 8, 7, 6, 5}, collected)

	require.ErrorIs(t, v.Scan(10, false, nil), ErrOutOfBounds)
}
