package comm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// packet is one message on a point-to-point link.
type packet struct {
	tag  int
	data []float64
}

// World owns the links and collective state shared by a fixed set of ranks.
// Construct with NewWorld, then drive every rank's body with Run.
type World struct {
	size int
	// links[to][from] carries packets from rank `from` to rank `to`.
	// Buffered one deep: a phased schedule has at most one message in
	// flight per ordered pair.
	links [][]chan packet
	bar   *barrier
	// collective slots, valid only between the two barriers of a collective
	redVals []float64
	errVals []error
}

// NewWorld creates a world of size ranks.
func NewWorld(size int) (*World, error) {
	if size <= 0 {
		return nil, fmt.Errorf("NewWorld(%d): %w", size, ErrBadSize)
	}
	links := make([][]chan packet, size)
	for to := range links {
		links[to] = make([]chan packet, size)
		for from := range links[to] {
			if from != to {
				links[to][from] = make(chan packet, 1)
			}
		}
	}
	return &World{
		size:    size,
		links:   links,
		bar:     newBarrier(size),
		redVals: make([]float64, size),
		errVals: make([]error, size),
	}, nil
}

// Size returns the number of ranks in the world.
func (w *World) Size() int { return w.size }

// Run executes body once per rank, each on its own goroutine, and blocks
// until every rank returns. The first non-nil error cancels the shared
// context, unwinding ranks blocked in communication calls, and is returned.
func (w *World) Run(ctx context.Context, body func(*Rank) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < w.size; id++ {
		r := &Rank{world: w, id: id, ctx: ctx}
		g.Go(func() error {
			if err := body(r); err != nil {
				return fmt.Errorf("rank %d: %w", r.id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Rank is one process-analogue within a World. A Rank is confined to the
// goroutine Run started for it and must not be shared.
type Rank struct {
	world *World
	id    int
	ctx   context.Context
}

// ID returns this rank's id in [0, Size).
func (r *Rank) ID() int { return r.id }

// Size returns the world size.
func (r *Rank) Size() int { return r.world.size }

// checkPeer validates a peer id for point-to-point traffic.
func (r *Rank) checkPeer(peer int) error {
	if peer < 0 || peer >= r.world.size || peer == r.id {
		return fmt.Errorf("rank %d, peer %d: %w", r.id, peer, ErrBadPeer)
	}
	return nil
}
