// Package vector implements a dynamic array on top of the allocator
// abstraction, growing by reallocate-and-copy.
package vector

import (
	stderrors "errors"

	"github.com/pkg/errors"

	"go-mempool/pkg/allocator"
	"go-mempool/util/helpers"
)

var ErrOutOfBounds = stderrors.New("out of bounds")
var ErrEmpty = stderrors.New("empty")

// New creates an empty vector drawing storage from alloc.
func New[T any](alloc allocator.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: alloc}
}

type Vector[T any] struct {
	alloc allocator.Allocator[T]
	buf   []T
	size  int
}

func (v *Vector[T]) Push(elem T) error {
	if v.size == len(v.buf) {
		if err := v.grow(helpers.Max(1, 2*len(v.buf))); err != nil {
			return err
		}
	}

	v.buf[v.size] = elem
	v.size++
	return nil
}

func (v *Vector[T]) Pop() (T, error) {
	var zero T
	if v.size == 0 {
		return zero, ErrEmpty
	}

	v.size--
	elem := v.buf[v.size]
	v.buf[v.size] = zero
	return elem, nil
}

func (v *Vector[T]) Get(index int) (T, error) {
	if index < 0 || index >= v.size {
		var zero T
		return zero, ErrOutOfBounds
	}
	return v.buf[index], nil
}

func (v *Vector[T]) Set(index int, elem T) error {
	if index < 0 || index >= v.size {
		return ErrOutOfBounds
	}
	v.buf[index] = elem
	return nil
}

func (v *Vector[T]) Len() int {
	return v.size
}

func (v *Vector[T]) Cap() int {
	return len(v.buf)
}

// Reserve grows capacity to at least n without changing Len.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.grow(n)
}

// Truncate shrinks the vector to size elements, zeroing the tail.
// Capacity is retained.
func (v *Vector[T]) Truncate(size int) error {
	if size < 0 || size > v.size {
		return ErrOutOfBounds
	}

	var zero T
	for i := size; i < v.size; i++ {
		v.buf[i] = zero
	}
	v.size = size
	return nil
}

// Scan visits elements starting at index, forward or reverse, until
// scanFn signals a stop or errors.
func (v *Vector[T]) Scan(index int, reverse bool, scanFn func(index int, elem T) (bool, error)) error {
	if index < 0 || (index >= v.size && v.size > 0) {
		return ErrOutOfBounds
	}

	step := 1
	if reverse {
		step = -1
	}

	for i := index; i >= 0 && i < v.size; i += step {
		stop, err := scanFn(i, v.buf[i])
		if err != nil {
			return err
		} else if stop {
			return nil
		}
	}

	return nil
}

func (v *Vector[T]) grow(newCap int) error {
	newBuf, err := v.alloc.Allocate(newCap)
	if err != nil {
		return errors.Wrap(err, "failed to grow vector")
	}

	copy(newBuf, v.buf[:v.size])
	if err := v.alloc.Deallocate(v.buf, len(v.buf)); err != nil {
		return errors.Wrap(err, "failed to release old buffer")
	}

	v.buf = newBuf
	return nil
}
