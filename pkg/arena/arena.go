// Package arena implements a bump-pointer allocator: allocations are
// dealt out of page-sized regions by advancing an offset, and memory
// is only reclaimed wholesale via Reset or Close. Like the block
// pool, arena memory is raw storage the garbage collector never
// scans, so stored values must not hold references into the Go heap.
package arena

import (
	"errors"
	"unsafe"

	"go-mempool/util/helpers"
)

// DefaultPageSize is used when New is given a non-positive page size.
const DefaultPageSize = 64 * 1024

var ErrSizeTooLarge = errors.New("allocation exceeds arena page size")
var ErrClosed = errors.New("arena is closed")

// New creates an empty arena dealing out of pages of pageSize bytes.
func New(pageSize int) *Arena {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Arena{pageSize: uintptr(pageSize)}
}

// Arena is single-threaded, like the block pool it complements.
type Arena struct {
	pageSize uintptr
	pages    [][]byte
	off      uintptr // bump offset within the last page
	closed   bool
}

// Alloc returns size bytes aligned to align. Requests larger than the
// page size are rejected; there is no per-object free.
func (a *Arena) Alloc(size, align uintptr) (unsafe.Pointer, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size > a.pageSize {
		return nil, ErrSizeTooLarge
	}
	if align == 0 {
		align = 1
	}

	if len(a.pages) == 0 {
		a.grow()
	}

	cur := a.pages[len(a.pages)-1]
	base := uintptr(unsafe.Pointer(&cur[0]))

	off := alignUp(base+a.off, align) - base
	if off+size > a.pageSize {
		a.grow()
		cur = a.pages[len(a.pages)-1]
		base = uintptr(unsafe.Pointer(&cur[0]))
		off = alignUp(base, align) - base
		if off+size > a.pageSize {
			return nil, ErrSizeTooLarge
		}
	}

	a.off = off + size
	return unsafe.Pointer(&cur[off]), nil
}

// Reset recycles the arena: the first page is retained and the bump
// offset rewinds, every other page is dropped.
func (a *Arena) Reset() {
	if len(a.pages) > 1 {
		a.pages = a.pages[:1]
	}
	a.off = 0
}

// Close drops every page. Further allocations fail with ErrClosed.
func (a *Arena) Close() error {
	a.pages = nil
	a.off = 0
	a.closed = true
	return nil
}

// PageCount reports how many pages the arena has grown to.
func (a *Arena) PageCount() int {
	return len(a.pages)
}

func (a *Arena) grow() {
	// slack absorbs alignment of the first allocation in the page
	a.pages = append(a.pages, make([]byte, a.pageSize+helpers.Min(a.pageSize, 64)))
	a.off = 0
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// NewTyped creates a typed view over an arena for allocating single
// values of T.
func NewTyped[T any](a *Arena) *Typed[T] {
	return &Typed[T]{
		arena: a,
		size:  helpers.Sizeof[T](),
		align: helpers.Alignof[T](),
	}
}

// Typed deals zeroed storage for one T per call out of the underlying
// arena.
type Typed[T any] struct {
	arena *Arena
	size  uintptr
	align uintptr
}

func (t *Typed[T]) New() (*T, error) {
	p, err := t.arena.Alloc(t.size, t.align)
	if err != nil {
		return nil, err
	}

	ptr := (*T)(p)
	var zero T
	*ptr = zero
	return ptr, nil
}
