package comm

import (
	"context"
	"fmt"
	"sync"
)

// barrier is a reusable rendezvous for a fixed number of ranks. The release
// channel is swapped out each generation so the barrier can be reused
// immediately, and waiters watch the run context to avoid deadlocking a
// world whose peer has already failed.
type barrier struct {
	n       int
	mu      sync.Mutex
	count   int
	release chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, release: make(chan struct{})}
}

func (b *barrier) wait(ctx context.Context) error {
	b.mu.Lock()
	ch := b.release
	b.count++
	if b.count == b.n {
		b.count = 0
		b.release = make(chan struct{})
		close(ch)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("barrier: %w", ErrAborted)
	}
}

// Barrier blocks until every rank in the world has entered it.
func (r *Rank) Barrier() error {
	return r.world.bar.wait(r.ctx)
}

// reduce runs one collective: each rank deposits x in its slot, all ranks
// rendezvous, every rank folds the slots locally, and a second rendezvous
// frees the slots for the next collective. Ranks must call collectives in
// the same order; that is the usual message-passing contract.
func (r *Rank) reduce(x float64, fold func(acc, v float64) float64) (float64, error) {
	w := r.world
	w.redVals[r.id] = x
	if err := r.Barrier(); err != nil {
		return 0, err
	}
	acc := w.redVals[0]
	for _, v := range w.redVals[1:] {
		acc = fold(acc, v)
	}
	if err := r.Barrier(); err != nil {
		return 0, err
	}
	return acc, nil
}

// MaxFloat64 reduces x across all ranks with max; every rank receives the
// result.
func (r *Rank) MaxFloat64(x float64) (float64, error) {
	return r.reduce(x, func(acc, v float64) float64 {
		if v > acc {
			return v
		}
		return acc
	})
}

// SumFloat64 reduces x across all ranks with +; every rank receives the
// result. Order-independent up to floating point association; callers that
// compare against a tolerance own that slack.
func (r *Rank) SumFloat64(x float64) (float64, error) {
	return r.reduce(x, func(acc, v float64) float64 { return acc + v })
}

// Agree is the collective error gate: every rank reports its local error and
// learns the world's verdict. If every rank passes nil, Agree returns nil on
// every rank. Otherwise every rank returns non-nil — its own error if it had
// one, or ErrPeerAbort naming the lowest failed rank — so no rank proceeds
// past a gate a peer has failed.
func (r *Rank) Agree(local error) error {
	w := r.world
	w.errVals[r.id] = local
	if err := r.Barrier(); err != nil {
		return err
	}
	verdictRank, verdict := -1, error(nil)
	for id, e := range w.errVals {
		if e != nil {
			verdictRank, verdict = id, e
			break
		}
	}
	if err := r.Barrier(); err != nil {
		return err
	}
	if verdict == nil {
		return nil
	}
	if local != nil {
		return local
	}
	return fmt.Errorf("%w: rank %d: %v", ErrPeerAbort, verdictRank, verdict)
}
