// Package list implements a doubly linked list whose nodes are drawn
// from a block pool instead of the regular Go heap — the node-churn
// workload the pool exists for. Element types must not hold
// references into the Go heap (see package mempool).
package list

import (
	stderrors "errors"

	"github.com/pkg/errors"

	"go-mempool/pkg/mempool"
)

var ErrEmpty = stderrors.New("empty")

// node links are plain Go pointers into pool-owned blocks; every
// target is kept alive by the pool itself until Close.
type node[T any] struct {
	val  T
	next *node[T]
	prev *node[T]
}

// New creates an empty list with its own node pool.
func New[T any]() *List[T] {
	return &List[T]{pool: mempool.New[node[T]]()}
}

type List[T any] struct {
	pool *mempool.Pool[node[T]]
	head *node[T]
	tail *node[T]
	size int
}

func (l *List[T]) PushFront(val T) error {
	n, err := l.newNode(val)
	if err != nil {
		return err
	}

	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.size++
	return nil
}

func (l *List[T]) PushBack(val T) error {
	n, err := l.newNode(val)
	if err != nil {
		return err
	}

	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
	return nil
}

func (l *List[T]) PopFront() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmpty
	}
	return l.remove(l.head)
}

func (l *List[T]) PopBack() (T, error) {
	if l.tail == nil {
		var zero T
		return zero, ErrEmpty
	}
	return l.remove(l.tail)
}

func (l *List[T]) Front() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmpty
	}
	return l.head.val, nil
}

func (l *List[T]) Back() (T, error) {
	if l.tail == nil {
		var zero T
		return zero, ErrEmpty
	}
	return l.tail.val, nil
}

func (l *List[T]) Len() int {
	return l.size
}

// Scan visits values front to back (or back to front) until scanFn
// signals a stop or errors.
func (l *List[T]) Scan(reverse bool, scanFn func(val T) (bool, error)) error {
	n := l.head
	if reverse {
		n = l.tail
	}

	for n != nil {
		stop, err := scanFn(n.val)
		if err != nil {
			return err
		} else if stop {
			return nil
		}

		if reverse {
			n = n.prev
		} else {
			n = n.next
		}
	}

	return nil
}

// Close releases the node pool. The list must not be used afterwards.
func (l *List[T]) Close() error {
	l.head, l.tail, l.size = nil, nil, 0
	return l.pool.Close()
}

func (l *List[T]) newNode(val T) (*node[T], error) {
	n, err := l.pool.Alloc()
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate node")
	}

	n.val = val
	n.next, n.prev = nil, nil
	return n, nil
}

func (l *List[T]) remove(n *node[T]) (T, error) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.size--

	val := n.val
	return val, errors.Wrap(l.pool.Free(n), "failed to free node")
}
