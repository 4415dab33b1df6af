// SPDX-License-Identifier: MIT

package transpose

import "errors"

// Sentinel errors for plan and run configuration. Validation happens once,
// before any allocation, and is matched with errors.Is.
var (
	// ErrBadProcs indicates a non-positive rank count.
	ErrBadProcs = errors.New("transpose: rank count must be > 0")
	// ErrBadRank indicates a rank id outside [0, procs).
	ErrBadRank = errors.New("transpose: rank id out of range")
	// ErrOrderTooSmall indicates a matrix order below the rank count.
	ErrOrderTooSmall = errors.New("transpose: matrix order must be at least the rank count")
	// ErrOrderNotDivisible indicates an order not evenly divisible by the
	// rank count.
	ErrOrderNotDivisible = errors.New("transpose: matrix order must be divisible by the rank count")
	// ErrBadIterations indicates an iteration count below 1.
	ErrBadIterations = errors.New("transpose: iterations must be >= 1")
	// ErrBadWorkers indicates a worker count outside [1, MaxWorkers].
	ErrBadWorkers = errors.New("transpose: workers must be between 1 and MaxWorkers")
	// ErrBadTileOrder indicates a negative tile order.
	ErrBadTileOrder = errors.New("transpose: tile order must be >= 0")
)
