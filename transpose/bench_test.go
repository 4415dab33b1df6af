package transpose_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/npadmana/Kernels/comm"
	"github.com/npadmana/Kernels/transpose"
)

// benchRun performs one full benchmark pass over a fresh world.
func benchRun(b *testing.B, procs, order int, opts transpose.Options) {
	b.Helper()
	w, err := comm.NewWorld(procs)
	if err != nil {
		b.Fatal(err)
	}
	err = w.Run(context.Background(), func(rk *comm.Rank) error {
		r, err := transpose.NewRunner(rk, order, opts)
		if err != nil {
			return err
		}
		defer r.Close()
		res, err := r.Run()
		if err != nil {
			return err
		}
		if !res.Validated {
			return fmt.Errorf("aggregate error %g exceeds tolerance", res.AbsErr)
		}
		return nil
	})
	if err != nil {
		b.Fatal(err)
	}
}

// BenchmarkTranspose measures the full distributed pass across world sizes
// and strategies. Bytes reflect both matrices, matching the reported rate.
func BenchmarkTranspose(b *testing.B) {
	cases := []struct {
		name  string
		procs int
		order int
		tile  int
		sync  bool
	}{
		{"P1_N256_Untiled", 1, 256, 0, false},
		{"P1_N256_Tile32", 1, 256, 32, false},
		{"P4_N256_Untiled", 4, 256, 0, false},
		{"P4_N256_Tile32", 4, 256, 32, false},
		{"P4_N256_Tile32_Sync", 4, 256, 32, true},
		{"P8_N512_Tile32", 8, 512, 32, false},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			opts := transpose.DefaultOptions()
			opts.Iterations = 1
			opts.Workers = 2
			opts.TileOrder = tc.tile
			if tc.sync {
				opts.Exchange = transpose.Synchronous
			}
			b.SetBytes(int64(2 * 8 * tc.order * tc.order))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchRun(b, tc.procs, tc.order, opts)
			}
		})
	}
}

// BenchmarkLocalOnly isolates the single-rank path, where the whole pass is
// one local transpose with no phases.
func BenchmarkLocalOnly(b *testing.B) {
	for _, tile := range []int{0, 16, 32, 64} {
		name := fmt.Sprintf("Tile%d", tile)
		if tile == 0 {
			name = "Untiled"
		}
		b.Run(name, func(b *testing.B) {
			opts := transpose.DefaultOptions()
			opts.Iterations = 1
			opts.Workers = 4
			opts.TileOrder = tile
			b.SetBytes(int64(2 * 8 * 512 * 512))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				benchRun(b, 1, 512, opts)
			}
		})
	}
}
