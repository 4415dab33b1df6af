package transpose

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/npadmana/Kernels/colblock"
	"github.com/npadmana/Kernels/workpool"
)

// randomBlock builds a dense n×n column-major block with a deterministic
// random fill.
func randomBlock(t *testing.T, n int, seed int64) *colblock.ColBlock {
	t.Helper()
	m, err := colblock.New(n, n)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	for i := range m.Data {
		m.Data[i] = r.NormFloat64()
	}
	return m
}

// TestTiledMatchesUntiled verifies bit-identical output for every tile order
// from 1 up to the block order, on a block that is not a tile multiple.
func TestTiledMatchesUntiled(t *testing.T) {
	const n = 23 // prime, so every tile order leaves a ragged edge
	pool := workpool.New(4)
	defer pool.Close()

	src := randomBlock(t, n, 1)
	want, err := colblock.New(n, n)
	require.NoError(t, err)
	untiledTranspose(pool)(want, src)

	for tile := 1; tile <= n; tile++ {
		for _, collapse := range []bool{false, true} {
			got, err := colblock.New(n, n)
			require.NoError(t, err)
			tiledTranspose(pool, tile, collapse)(got, src)
			require.Equal(t, want.Data, got.Data, "tile %d collapse %v", tile, collapse)
		}
	}
}

// TestTransposeAgainstGonum checks both strategies against an independent
// oracle: gonum's matrix transpose of the same data.
func TestTransposeAgainstGonum(t *testing.T) {
	const n = 17
	pool := workpool.New(2)
	defer pool.Close()

	src := randomBlock(t, n, 7)

	// gonum reads the flat slice row-major, so NewDense over column-major
	// data yields srcᵀ; one more .T() recovers src in gonum's orientation.
	oracle := mat.DenseCopyOf(mat.NewDense(n, n, src.Data).T())

	for name, strategy := range map[string]localTranspose{
		"untiled":        untiledTranspose(pool),
		"tiled":          tiledTranspose(pool, 5, false),
		"tiled-collapse": tiledTranspose(pool, 5, true),
	} {
		dst, err := colblock.New(n, n)
		require.NoError(t, err)
		strategy(dst, src)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				// column-major dst(i,j) corresponds to oracle(j,i).
				require.Equal(t, oracle.At(j, i), dst.Data[dst.Index(i, j)],
					"%s at (%d,%d)", name, i, j)
			}
		}
	}
}

// TestTransposeIsInvolution verifies transposing twice reproduces the input
// exactly, for both strategies.
func TestTransposeIsInvolution(t *testing.T) {
	const n = 16
	pool := workpool.New(3)
	defer pool.Close()

	src := randomBlock(t, n, 42)
	for name, strategy := range map[string]localTranspose{
		"untiled": untiledTranspose(pool),
		"tiled":   tiledTranspose(pool, 4, false),
	} {
		once, err := colblock.New(n, n)
		require.NoError(t, err)
		twice, err := colblock.New(n, n)
		require.NoError(t, err)
		strategy(once, src)
		strategy(twice, once)
		require.Equal(t, src.Data, twice.Data, name)
	}
}

// TestTransposeThroughWindows runs the strategy over Block windows of a tall
// Colblock, the way the scheduler stages off-diagonal Blocks.
func TestTransposeThroughWindows(t *testing.T) {
	const order, blockOrder = 12, 4 // three stacked blocks
	pool := workpool.New(2)
	defer pool.Close()

	a, err := colblock.New(order, blockOrder)
	require.NoError(t, err)
	for i := range a.Data {
		a.Data[i] = float64(i)
	}

	stage := tiledTranspose(pool, 3, false)
	for blk := 0; blk < order/blockOrder; blk++ {
		src, err := a.Window(blk*blockOrder, blockOrder)
		require.NoError(t, err)
		dst, err := colblock.New(blockOrder, blockOrder)
		require.NoError(t, err)
		stage(dst, src)
		for i := 0; i < blockOrder; i++ {
			for j := 0; j < blockOrder; j++ {
				require.Equal(t,
					a.Data[a.Index(blk*blockOrder+i, j)],
					dst.Data[dst.Index(j, i)],
					"block %d (%d,%d)", blk, i, j)
			}
		}
	}
}

// TestFillColblock pins the deterministic fill and the -1 reset of B, for
// untiled, tiled and collapsed plans.
func TestFillColblock(t *testing.T) {
	pool := workpool.New(2)
	defer pool.Close()

	for _, tc := range []struct {
		name string
		opts func(*Options)
	}{
		{"untiled", func(o *Options) { o.TileOrder = 0 }},
		{"tiled", func(o *Options) { o.TileOrder = 3 }},
		{"tiled-collapse", func(o *Options) { o.TileOrder = 3; o.Collapse = true }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Workers = 2
			tc.opts(&opts)

			// order 10, 2 ranks: check rank 1 so ColStart is non-zero.
			p, err := NewPlan(10, 2, 1, opts)
			require.NoError(t, err)

			a, err := colblock.New(p.Order, p.BlockOrder)
			require.NoError(t, err)
			b, err := colblock.New(p.Order, p.BlockOrder)
			require.NoError(t, err)
			fillColblock(pool, a, b, p)

			for j := 0; j < p.BlockOrder; j++ {
				for i := 0; i < p.Order; i++ {
					require.Equal(t, float64(p.Order*(j+p.ColStart)+i),
						a.Data[a.Index(i, j)], "A(%d,%d)", i, j)
					require.Equal(t, -1.0, b.Data[b.Index(i, j)], "B(%d,%d)", i, j)
				}
			}
		})
	}
}
