package mempool

import (
	"unsafe"
)

// nilIdx is the free chain's null sentinel.
const nilIdx = int32(-1)

// blockHeader carries one block's free chain metadata. Links are block
// indices within the owning page, never raw addresses.
type blockHeader struct {
	free bool
	next int32
	prev int32
}

const headerStructSize = unsafe.Sizeof(blockHeader{})

// page is a single contiguous region subdivided into BlocksPerPage
// fixed-size blocks. Payload bytes live in raw; the per block headers
// live in a parallel slice so that no pointer is ever stored inside
// raw memory.
type page struct {
	layout Layout

	// raw is oversized by one alignment unit so base can be rounded
	// up to the layout's alignment.
	raw  []byte
	base unsafe.Pointer

	headers   []blockHeader
	firstFree int32
}

// newPage reserves the page's full byte range and chains all blocks
// into an ascending free list. The page is fully initialized before
// the caller links it anywhere.
func newPage(l Layout) *page {
	raw := make([]byte, l.PageSize+l.Align)
	base := unsafe.Pointer(&raw[0])
	if off := uintptr(base) & (l.Align - 1); off != 0 {
		base = unsafe.Add(base, l.Align-off)
	}

	p := &page{
		layout:    l,
		raw:       raw,
		base:      base,
		headers:   make([]blockHeader, BlocksPerPage),
		firstFree: 0,
	}

	for i := range p.headers {
		h := &p.headers[i]
		h.free = true
		h.next = int32(i) + 1
		h.prev = int32(i) - 1
	}
	p.headers[BlocksPerPage-1].next = nilIdx

	return p
}

// payload returns the data address of block i, immediately after the
// block's header padding.
func (p *page) payload(i int32) unsafe.Pointer {
	off := p.layout.PageHeaderSize + uintptr(i)*p.layout.BlockSize + p.layout.HeaderSize
	return unsafe.Add(p.base, off)
}

// contains reports whether addr falls inside this page's byte range.
func (p *page) contains(addr uintptr) bool {
	base := uintptr(p.base)
	return addr > base && addr < base+p.layout.PageSize
}

// blockIndex recovers the block index owning a payload address, or
// nilIdx when addr is not a payload start of this page.
func (p *page) blockIndex(addr uintptr) int32 {
	start := uintptr(p.base) + p.layout.PageHeaderSize + p.layout.HeaderSize
	if addr < start {
		return nilIdx
	}

	off := addr - start
	if off%p.layout.BlockSize != 0 {
		return nilIdx
	}

	i := off / p.layout.BlockSize
	if i >= BlocksPerPage {
		return nilIdx
	}
	return int32(i)
}

// takeFree detaches the head of the free chain and returns its index.
// The caller must have checked that the chain is not empty.
func (p *page) takeFree() int32 {
	i := p.firstFree
	h := &p.headers[i]

	h.free = false
	if h.next != nilIdx {
		p.headers[h.next].prev = nilIdx
	}
	p.firstFree = h.next
	h.next, h.prev = nilIdx, nilIdx

	return i
}

// insertFree splices block i back into the free chain, keeping the
// chain in strictly ascending index order. Ascending index order and
// ascending address order are the same thing since blocks are laid
// out back to back.
func (p *page) insertFree(i int32) {
	h := &p.headers[i]
	h.free = true

	if p.firstFree == nilIdx {
		h.next, h.prev = nilIdx, nilIdx
		p.firstFree = i
		return
	}

	// walk to the nearest free neighbor, stopping early when the
	// scanned block is the immediately preceding slot
	adj := p.firstFree
	for adj < i && p.headers[adj].next != nilIdx {
		if adj == i-1 {
			break
		}
		adj = p.headers[adj].next
	}

	if adj < i {
		// neighbor precedes the block, splice in after it
		h.prev = adj
		h.next = p.headers[adj].next
		p.headers[adj].next = i
		if h.next != nilIdx {
			p.headers[h.next].prev = i
		}
	} else {
		// neighbor follows the block, splice in before it
		h.next = adj
		h.prev = p.headers[adj].prev
		p.headers[adj].prev = i
		if h.prev != nilIdx {
			p.headers[h.prev].next = i
		}
	}

	if h.prev == nilIdx {
		p.firstFree = i
	}
}

// freeCount walks the free chain and reports its length.
func (p *page) freeCount() int {
	n := 0
	for i := p.firstFree; i != nilIdx; i = p.headers[i].next {
		n++
	}
	return n
}
