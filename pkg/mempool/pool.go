// Package mempool implements a fixed-size block memory pool for a
// single element type. Storage is raw: the pool never constructs or
// destroys values, and element types must not hold references into
// the regular Go heap since pool memory is invisible to the garbage
// collector.
package mempool

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// New creates an empty pool for T. No memory is reserved until the
// first allocation.
func New[T any]() *Pool[T] {
	return &Pool[T]{layout: layoutOf[T]()}
}

// Pool hands out storage for exactly one T per call and takes it back
// one block at a time. Not safe for concurrent use.
type Pool[T any] struct {
	layout Layout
	pages  []*page
	closed bool
}

// Layout exposes the pool's immutable sizing policy.
func (p *Pool[T]) Layout() Layout {
	return p.layout
}

// Alloc returns a pointer to uninitialized storage for one element.
// The pool grows by one page when every existing page is full.
func (p *Pool[T]) Alloc() (*T, error) {
	if p.closed {
		return nil, ErrClosed
	}

	pg := p.findFreePage()
	if pg == nil {
		pg = newPage(p.layout)
		p.pages = append(p.pages, pg)
	}

	return (*T)(pg.payload(pg.takeFree())), nil
}

// AllocN is Alloc with the allocator contract's element count. The
// pool's unit of allocation is always one block, so any n greater
// than one fails before touching pool state.
func (p *Pool[T]) AllocN(n int) (*T, error) {
	if n > 1 {
		return nil, errors.Wrap(ErrCountOutOfRange, "alloc")
	}
	return p.Alloc()
}

// Free returns a block previously handed out by Alloc on this pool.
// The pointer is rejected with ErrInvalidPointer when no page owns it;
// freeing an already free block is not detected.
func (p *Pool[T]) Free(ptr *T) error {
	if p.closed {
		return ErrClosed
	}

	addr := uintptr(unsafe.Pointer(ptr))
	for _, pg := range p.pages {
		if !pg.contains(addr) {
			continue
		}

		i := pg.blockIndex(addr)
		if i == nilIdx {
			return errors.Wrap(ErrInvalidPointer, "free")
		}

		pg.insertFree(i)
		return nil
	}

	return errors.Wrap(ErrInvalidPointer, "free")
}

// FreeN is Free with the allocator contract's element count.
func (p *Pool[T]) FreeN(ptr *T, n int) error {
	if n > 1 {
		return errors.Wrap(ErrCountOutOfRange, "free")
	}
	return p.Free(ptr)
}

// Close drops every page so the runtime can reclaim them. Any further
// operation fails with ErrClosed.
func (p *Pool[T]) Close() error {
	p.pages = nil
	p.closed = true
	return nil
}

// PageCount reports how many pages the pool has grown to.
func (p *Pool[T]) PageCount() int {
	return len(p.pages)
}

// FreeCount reports the total number of free blocks across all pages.
func (p *Pool[T]) FreeCount() int {
	n := 0
	for _, pg := range p.pages {
		n += pg.freeCount()
	}
	return n
}

// Print dumps every page's free chain, for debugging.
func (p *Pool[T]) Print() {
	fmt.Printf("layout -> %+v\n", p.layout)
	for id, pg := range p.pages {
		fmt.Printf("page %v, head -> %v, chain ->", id, pg.firstFree)
		for i := pg.firstFree; i != nilIdx; i = pg.headers[i].next {
			fmt.Printf(" %v", i)
		}
		fmt.Println()
	}
}

// findFreePage returns the first page, in creation order, whose free
// chain is not empty.
func (p *Pool[T]) findFreePage() *page {
	for _, pg := range p.pages {
		if pg.firstFree != nilIdx {
			return pg
		}
	}
	return nil
}
