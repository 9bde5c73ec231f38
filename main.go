package main

import (
	r "math/rand"
	"os"
	"time"

	"go-mempool/pkg/allocator"
	"go-mempool/pkg/arena"
	"go-mempool/pkg/list"
	"go-mempool/pkg/mempool"
	"go-mempool/pkg/vector"
	"go-mempool/util/logger"
)

var seed = time.Now().UnixMilli()
var rand = r.New(r.NewSource(seed))

// record is a typical pool element: small, fixed size, no heap
// references.
type record struct {
	id    uint64
	score float64
	flags uint32
}

func main() {
	poolDemo()
	arenaDemo()
	vectorDemo()
	listDemo()
}

func poolDemo() {
	pool := mempool.New[record]()
	defer pool.Close()

	l := pool.Layout()
	logger.L.Infof(
		"pool layout: block %v bytes (header %v), page %v bytes",
		l.BlockSize, l.HeaderSize, l.PageSize,
	)

	const n = 5000
	started := time.Now()

	live := make([]*record, 0, n)
	for i := 0; i < n; i++ {
		ptr, err := pool.Alloc()
		if err != nil {
			fatal(err)
		}
		ptr.id = uint64(i)
		ptr.score = rand.Float64()
		live = append(live, ptr)
	}

	// free a random half, then reallocate it
	rand.Shuffle(len(live), func(i, j int) {
		live[i], live[j] = live[j], live[i]
	})
	for _, ptr := range live[:n/2] {
		if err := pool.Free(ptr); err != nil {
			fatal(err)
		}
	}
	for i := range live[:n/2] {
		ptr, err := pool.Alloc()
		if err != nil {
			fatal(err)
		}
		live[i] = ptr
	}

	logger.L.Infof(
		"pool churn: %v allocs + %v frees in %v, %v pages, %v free blocks",
		n+n/2, n/2, time.Since(started), pool.PageCount(), pool.FreeCount(),
	)
}

func arenaDemo() {
	a := arena.New(0)
	defer a.Close()

	typed := arena.NewTyped[record](a)
	started := time.Now()

	const n = 5000
	for i := 0; i < n; i++ {
		ptr, err := typed.New()
		if err != nil {
			fatal(err)
		}
		ptr.id = uint64(i)
	}

	logger.L.Infof(
		"arena: %v allocs in %v, %v pages",
		n, time.Since(started), a.PageCount(),
	)

	a.Reset()
	logger.L.Infof("arena reset: %v pages retained", a.PageCount())
}

func vectorDemo() {
	v := vector.New[uint64](allocator.NewSystem[uint64]())

	const n = 10000
	for i := 0; i < n; i++ {
		if err := v.Push(rand.Uint64()); err != nil {
			fatal(err)
		}
	}

	var max uint64
	err := v.Scan(0, false, func(_ int, elem uint64) (bool, error) {
		if elem > max {
			max = elem
		}
		return false, nil
	})
	if err != nil {
		fatal(err)
	}

	logger.L.Infof("vector: %v pushes, len %v cap %v, max %v", n, v.Len(), v.Cap(), max)
}

func listDemo() {
	l := list.New[int]()
	defer l.Close()

	const n = 3000
	for i := 0; i < n; i++ {
		if err := l.PushBack(i); err != nil {
			fatal(err)
		}
	}
	for i := 0; i < n/2; i++ {
		if _, err := l.PopFront(); err != nil {
			fatal(err)
		}
	}

	front, err := l.Front()
	if err != nil {
		fatal(err)
	}

	logger.L.Infof("list: len %v, front %v", l.Len(), front)
}

func fatal(val interface{}) {
	logger.L.Error(val)
	os.Exit(1)
}
