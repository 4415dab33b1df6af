package transpose

import "fmt"

// Plan holds one rank's share of the distribution: how many columns it owns,
// where they sit in the global matrix, the resolved tiling decision and the
// per-phase partner schedule.
type Plan struct {
	Order int // global matrix order N
	Procs int // number of ranks P
	Rank  int // this rank's id

	BlockOrder int // columns owned per rank, N/P
	ColStart   int // global index of this rank's first column, Rank*BlockOrder

	// TileOrder is the tile edge actually used by the local transpose:
	// 0 means untiled, either because the caller asked for it, because the
	// tile would not subdivide the matrix, or because tiling would starve
	// the worker team (see NewPlan).
	TileOrder int
	Collapse  bool
	Workers   int
}

// NewPlan validates the run configuration once, before any allocation, and
// computes the distribution parameters for one rank.
//
// Tiling policy: a requested tile order is honored only when 0 < tile <
// order and the resulting tile count keeps every worker busy — tiles along
// one Block edge, squared when Collapse partitions the 2D tile grid. Fewer
// work units than workers silently disables tiling; the formula is a
// heuristic, the intent (never idle the team to tile) is the contract.
func NewPlan(order int, procs, rank int, opts Options) (*Plan, error) {
	if procs < 1 {
		return nil, fmt.Errorf("%d ranks: %w", procs, ErrBadProcs)
	}
	if rank < 0 || rank >= procs {
		return nil, fmt.Errorf("rank %d of %d: %w", rank, procs, ErrBadRank)
	}
	if order < procs {
		return nil, fmt.Errorf("order %d, %d ranks: %w", order, procs, ErrOrderTooSmall)
	}
	if order%procs != 0 {
		return nil, fmt.Errorf("order %d, %d ranks: %w", order, procs, ErrOrderNotDivisible)
	}
	if opts.Iterations < 1 {
		return nil, fmt.Errorf("%d iterations: %w", opts.Iterations, ErrBadIterations)
	}
	if opts.Workers < 1 || opts.Workers > MaxWorkers {
		return nil, fmt.Errorf("%d workers: %w", opts.Workers, ErrBadWorkers)
	}
	if opts.TileOrder < 0 {
		return nil, fmt.Errorf("tile order %d: %w", opts.TileOrder, ErrBadTileOrder)
	}

	blockOrder := order / procs
	tile := opts.TileOrder
	if tile >= order {
		tile = 0
	}
	if tile > 0 {
		concurrency := (blockOrder + tile - 1) / tile
		if opts.Collapse {
			concurrency *= concurrency
		}
		if concurrency < opts.Workers {
			tile = 0
		}
	}

	return &Plan{
		Order:      order,
		Procs:      procs,
		Rank:       rank,
		BlockOrder: blockOrder,
		ColStart:   rank * blockOrder,
		TileOrder:  tile,
		Collapse:   opts.Collapse,
		Workers:    opts.Workers,
	}, nil
}

// Tiled reports whether the local transpose runs the tiled strategy.
func (p *Plan) Tiled() bool { return p.TileOrder > 0 }

// SendTo returns the partner this rank sends to in the given phase,
// phase ∈ [1, Procs).
func (p *Plan) SendTo(phase int) int {
	return (p.Rank - phase + p.Procs) % p.Procs
}

// RecvFrom returns the partner this rank receives from in the given phase.
// Together with SendTo this ring walk makes every ordered pair of distinct
// ranks exchange exactly once per transpose.
func (p *Plan) RecvFrom(phase int) int {
	return (p.Rank + phase) % p.Procs
}
