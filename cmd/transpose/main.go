// Command transpose measures the sustained throughput of a distributed
// matrix transpose: B = A^T over a world of cooperating ranks, each with its
// own worker team.
//
// Usage:
//
//	transpose -ranks 4 -workers 2 -i 10 -n 4096 [-t 32] [-sync] [-collapse]
//
// The output is a configuration echo, the verification verdict, and the
// measured rate in MB/s with the average iteration time. The process exits
// non-zero if configuration is rejected, communication fails, or the result
// does not validate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/npadmana/Kernels/comm"
	"github.com/npadmana/Kernels/transpose"
)

var (
	ranks      = flag.Int("ranks", 1, "number of ranks the matrix is distributed over")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "worker team size per rank")
	iterations = flag.Int("i", 1, "number of timed iterations (a warmup pass is added)")
	order      = flag.Int("n", 0, "matrix order (required)")
	tile       = flag.Int("t", transpose.DefaultTileOrder, "tile order for the local transpose; 0 disables tiling")
	syncMode   = flag.Bool("sync", false, "use synchronous combined exchanges instead of posted receives")
	collapse   = flag.Bool("collapse", false, "partition tiled loops over the 2D tile grid")
	verbose    = flag.Bool("verbose", false, "include the summed verification error in the report")
)

func main() {
	flag.Parse()
	if *order <= 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s -ranks <ranks> -workers <workers> -i <iterations> -n <order> [-t <tile>]\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := transpose.Options{
		Iterations: *iterations,
		Workers:    *workers,
		TileOrder:  *tile,
		Collapse:   *collapse,
		Verbose:    *verbose,
	}
	if *syncMode {
		opts.Exchange = transpose.Synchronous
	}

	world, err := comm.NewWorld(*ranks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	var report *transpose.Result
	err = world.Run(context.Background(), func(rank *comm.Rank) error {
		runner, err := transpose.NewRunner(rank, *order, opts)
		if err != nil {
			return err
		}
		defer runner.Close()

		if rank.ID() == 0 {
			fmt.Println("Parallel Research Kernels")
			runner.WriteConfig(os.Stdout)
		}

		res, err := runner.Run()
		if err != nil {
			return err
		}
		if rank.ID() == 0 {
			report = res
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	report.Report(os.Stdout)
	if !report.Validated {
		os.Exit(1)
	}
}
