// Package workpool provides the per-rank thread team used by the transpose
// kernel: a persistent pool of worker goroutines created once per process and
// reused across every phase of every iteration. Spawning goroutines per
// parallel region would dominate the cost of small block transposes, so the
// workers persist and receive work over a single channel.
//
// ParallelFor partitions [0,n) into contiguous chunks, one per worker, and
// blocks until all chunks complete — the implicit barrier at the end of a
// parallel region. Chunks never overlap, so regions whose destinations are
// disjoint per index need no further synchronization.
package workpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent team of worker goroutines. The zero value is not
// usable; construct with New and release with Close.
type Pool struct {
	workers   int
	tasks     chan task
	closeOnce sync.Once
	closed    atomic.Bool
}

// task is one chunk of a parallel region plus its completion barrier.
type task struct {
	run     func()
	barrier *sync.WaitGroup
}

// New creates a pool of n persistent workers. If n <= 0 the pool sizes
// itself to GOMAXPROCS.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: n,
		tasks:   make(chan task, n),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// worker is the loop run by each persistent goroutine.
func (p *Pool) worker() {
	for t := range p.tasks {
		t.run()
		t.barrier.Done()
	}
}

// NumWorkers returns the team size.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close retires the workers. Pending chunks still complete; further
// ParallelFor calls degrade to sequential execution. Safe to call twice.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
	})
}

// ParallelFor runs body over [0,n) split into contiguous [start,end) chunks,
// at most one per worker, and returns once every chunk has finished.
func (p *Pool) ParallelFor(n int, body func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.closed.Load() {
		body(0, n)
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers == 1 {
		body(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= n {
			wg.Done()
			continue
		}
		p.tasks <- task{
			run:     func() { body(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}
