package mempool

import (
	"go-mempool/util/helpers"
)

// BlocksPerPage is the fixed number of blocks held by a single page.
const BlocksPerPage = 1024

// Layout is the sizing policy of a pool, derived once from the element
// type's size and alignment and immutable afterwards. The block header
// is padded to at least the element's alignment so the payload that
// follows it starts on a correctly aligned address.
type Layout struct {
	ElemSize  uintptr
	ElemAlign uintptr

	// Align is the alignment of every page base (and therefore of
	// every block start inside it).
	Align          uintptr
	HeaderSize     uintptr
	BlockSize      uintptr
	PageHeaderSize uintptr
	PageSize       uintptr
}

func layoutOf[T any]() Layout {
	return computeLayout(helpers.Alignof[T](), helpers.Sizeof[T]())
}

func computeLayout(align, size uintptr) Layout {
	l := Layout{
		ElemSize:  size,
		ElemAlign: align,
		Align:     helpers.Max(align, 8),
	}

	switch {
	case align >= 32:
		l.HeaderSize = align
		l.BlockSize = align + size
		l.PageHeaderSize = align
	case align == 16:
		l.HeaderSize = 32
		l.BlockSize = 32 + size
		l.PageHeaderSize = 16
	default:
		// the header struct itself, padded to keep 8 byte payload
		// alignment intact
		l.HeaderSize = alignUp(headerStructSize, 8)
		l.BlockSize = l.HeaderSize + alignUp(size, 8)
		l.PageHeaderSize = 16
	}

	l.PageSize = l.PageHeaderSize + l.BlockSize*BlocksPerPage
	return l
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
