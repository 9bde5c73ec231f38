// Package allocator defines the allocation abstraction containers
// build on, plus its two implementations: the regular Go heap and the
// fixed-size block pool.
package allocator

import (
	"unsafe"

	"github.com/pkg/errors"

	"go-mempool/pkg/mempool"
)

var ErrNegativeCount = errors.New("negative element count")

// Allocator hands out uninitialized storage for n elements of T.
// Construction and destruction of the stored values stay with the
// caller.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(s []T, n int) error
}

// System is backed by the regular Go heap. Deallocate only drops the
// reference; the garbage collector reclaims the storage.
type System[T any] struct{}

func NewSystem[T any]() *System[T] {
	return &System[T]{}
}

func (*System[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	return make([]T, n), nil
}

func (*System[T]) Deallocate([]T, int) error {
	return nil
}

// PoolBacked adapts a block pool to the Allocator interface. The
// pool's unit of allocation is always one element, so any larger
// request fails with mempool.ErrCountOutOfRange.
type PoolBacked[T any] struct {
	pool *mempool.Pool[T]
}

func NewPoolBacked[T any](pool *mempool.Pool[T]) *PoolBacked[T] {
	return &PoolBacked[T]{pool: pool}
}

func (a *PoolBacked[T]) Allocate(n int) ([]T, error) {
	ptr, err := a.pool.AllocN(n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate block")
	}
	return unsafe.Slice(ptr, 1), nil
}

func (a *PoolBacked[T]) Deallocate(s []T, n int) error {
	if len(s) == 0 {
		return nil
	}
	return errors.Wrap(a.pool.FreeN(&s[0], n), "failed to free block")
}
