// Package kernels is the root of a distributed matrix-transpose benchmark:
// it measures how fast a large square matrix, spread by column blocks over a
// set of cooperating ranks, can be transposed when every rank also
// parallelizes its local work over a team of workers.
//
// What lives where:
//
//	colblock/  — column-major 2D views over flat buffers: the Colblock each
//	             rank owns and the Block windows the ranks exchange
//	workpool/  — the per-rank worker team: a persistent pool with
//	             ParallelFor over contiguous chunks
//	comm/      — the rank world: tagged point-to-point links, barrier,
//	             reductions, and the collective error gate
//	transpose/ — the kernel: distribution plan and ring schedule, tiled and
//	             untiled local transposition, the phased exchange, analytic
//	             verification and the timing harness
//	cmd/transpose — the command-line front end
//
// The benchmark is exact by construction: the fill is integer-valued, its
// transpose has a closed form, and a run only validates when the aggregate
// absolute error across all ranks stays below 1e-8.
//
//	go run ./cmd/transpose -ranks 4 -workers 2 -i 10 -n 4096 -t 32
package kernels
