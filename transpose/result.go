package transpose

import (
	"fmt"
	"io"
)

// Result is the outcome of one benchmark run, identical on every rank.
type Result struct {
	Plan     Plan
	Exchange Exchange
	Verbose  bool

	// Validated is true when the aggregate absolute error across all ranks
	// stayed below Epsilon.
	Validated bool
	// AbsErr is that aggregate error.
	AbsErr float64
	// AvgTime is the slowest rank's wall time divided by the iteration
	// count, in seconds.
	AvgTime float64
	// RateMBs is the sustained throughput: both matrices' bytes (A read,
	// B written) over AvgTime.
	RateMBs float64
}

// WriteConfig echoes the resolved configuration. The CLI calls this on the
// root rank before the run.
func (r *Runner) WriteConfig(w io.Writer) {
	fmt.Fprintf(w, "Distributed matrix transpose: B = A^T\n")
	fmt.Fprintf(w, "Number of ranks      = %d\n", r.plan.Procs)
	fmt.Fprintf(w, "Number of workers    = %d\n", r.plan.Workers)
	fmt.Fprintf(w, "Matrix order         = %d\n", r.plan.Order)
	fmt.Fprintf(w, "Number of iterations = %d\n", r.opts.Iterations)
	if r.plan.Tiled() {
		fmt.Fprintf(w, "Tile size            = %d\n", r.plan.TileOrder)
		if r.plan.Collapse {
			fmt.Fprintf(w, "Using loop collapse\n")
		}
	} else {
		fmt.Fprintf(w, "Untiled\n")
	}
	fmt.Fprintf(w, "%s\n", r.opts.Exchange)
}

// Report renders the verification verdict and, on success, the measured
// throughput. The CLI calls this on the root rank after the run.
func (res *Result) Report(w io.Writer) {
	if !res.Validated {
		fmt.Fprintf(w, "ERROR: Aggregate absolute error %f exceeds threshold %e\n", res.AbsErr, Epsilon)
		return
	}
	fmt.Fprintf(w, "Solution validates\n")
	fmt.Fprintf(w, "Rate (MB/s): %f Avg time (s): %f\n", res.RateMBs, res.AvgTime)
	if res.Verbose {
		fmt.Fprintf(w, "Summed errors: %f\n", res.AbsErr)
	}
}
