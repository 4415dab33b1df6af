// SPDX-License-Identifier: MIT

package transpose

import "runtime"

// Tunables and fixed policy constants.
const (
	// Epsilon is the aggregate absolute-error tolerance of the verifier.
	// The reduction is order-independent in meaning but floating point
	// association may vary across platforms, hence a tolerance rather than
	// exact equality.
	Epsilon = 1e-8

	// DefaultTileOrder is the tile edge used when the caller does not pick
	// one. 0 disables tiling outright.
	DefaultTileOrder = 32

	// MaxWorkers bounds the per-rank worker team.
	MaxWorkers = 1024

	// elemBytes is the size of one matrix element on the wire and in memory.
	elemBytes = 8
)

// Exchange selects how a phase moves its pair of Blocks.
type Exchange int

const (
	// NonBlocking posts the receive first, stages the outgoing Block while
	// the receive is pending, then sends and waits for both.
	NonBlocking Exchange = iota
	// Synchronous performs one combined send/receive call per phase: one
	// fewer transfer to track, no compute/communication overlap.
	Synchronous
)

// String renders the mode the way the report echoes it.
func (e Exchange) String() string {
	if e == Synchronous {
		return "Blocking messages"
	}
	return "Non-Blocking messages"
}

// Options configures a transpose run. The zero value is not meaningful;
// start from DefaultOptions and override.
//   - Iterations: timed passes (a warmup pass is added on top).
//   - Workers: per-rank worker team size.
//   - TileOrder: tile edge for the local transpose; 0 or ≥ order disables
//     tiling. May also be disabled by the worker-starvation policy, see Plan.
//   - Collapse: partition tiled loops over the 2D tile grid instead of tile
//     rows only (finer work units, same results).
//   - Exchange: phase exchange mode.
//   - Verbose: include the summed verification error in the report.
type Options struct {
	Iterations int
	Workers    int
	TileOrder  int
	Collapse   bool
	Exchange   Exchange
	Verbose    bool
}

// DefaultOptions returns the canonical configuration: one timed iteration,
// a GOMAXPROCS-sized worker team, tile order 32, non-blocking exchanges.
func DefaultOptions() Options {
	return Options{
		Iterations: 1,
		Workers:    runtime.GOMAXPROCS(0),
		TileOrder:  DefaultTileOrder,
		Exchange:   NonBlocking,
	}
}
