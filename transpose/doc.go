// Package transpose implements a distributed matrix-transpose benchmark:
// B = A^T for a square order×order matrix spread over P cooperating ranks,
// each rank further parallelizing its local work over a team of workers.
//
// # Distribution
//
// Each rank owns one column block (Colblock) of A and of B: order rows by
// order/P columns, column-major. A Colblock is logically P square Blocks of
// order/P stacked vertically. Block i of rank j, locally transposed, becomes
// Block j of rank i's transposed matrix — the diagonal Block stays home, and
// every off-diagonal Block crosses between exactly one pair of ranks.
//
// # Exchange schedule
//
// The transfer runs in P−1 phases. In phase p, rank r receives from
// (r+p) mod P and sends to (r−p+P) mod P, so every ordered pair of distinct
// ranks exchanges exactly once per transpose and no rank addresses itself.
// Each phase posts its receive, stages the outgoing Block (a local transpose
// into a work buffer, overlapping the pending receive), sends, waits for
// both transfers, and scatters the received Block into B. A synchronous
// variant trades the overlap for a single combined exchange call.
//
// # Local transposition
//
// Block transposes run either untiled (plain double loop) or tiled in
// square tiles to improve cache and TLB locality. Both produce identical
// results; tiling is switched off when it would leave workers idle (fewer
// tiles than workers), which is a performance policy, not a correctness
// rule.
//
// # Measurement
//
// A run performs iterations+1 passes; the first is warmup and is excluded.
// All ranks rendezvous before the clock starts, per-rank wall time is
// max-reduced (the slowest rank defines throughput), and the verifier checks
// B against the closed-form expectation of the deterministic fill, with the
// absolute error sum-reduced across ranks and compared to a 1e-8 tolerance.
package transpose
