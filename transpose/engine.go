package transpose

import (
	"github.com/npadmana/Kernels/colblock"
	"github.com/npadmana/Kernels/workpool"
)

// localTranspose writes dst(j,i) = src(i,j) for a square Block. The two
// strategies below are interchangeable bit for bit; tiling only changes the
// traversal order. The strategy is picked once, at Runner construction.
type localTranspose func(dst, src *colblock.ColBlock)

// untiledTranspose parallelizes the plain double loop over source rows.
// Each worker owns a contiguous row range of src and therefore a disjoint
// column range of dst, so no two workers touch the same destination cell.
func untiledTranspose(pool *workpool.Pool) localTranspose {
	return func(dst, src *colblock.ColBlock) {
		n := src.Rows
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					dst.Data[dst.Index(j, i)] = src.Data[src.Index(i, j)]
				}
			}
		})
	}
}

// tiledTranspose walks tile-aligned origins in steps of tile, clamping the
// final partial tile at the Block edge. Work units are tile rows, or single
// tiles of the 2D grid when collapse is set; either way destination tiles
// are disjoint across units.
func tiledTranspose(pool *workpool.Pool, tile int, collapse bool) localTranspose {
	return func(dst, src *colblock.ColBlock) {
		n := src.Rows
		nt := (n + tile - 1) / tile
		units := nt
		if collapse {
			units = nt * nt
		}
		pool.ParallelFor(units, func(start, end int) {
			for u := start; u < end; u++ {
				i0 := u * tile
				j0, j1 := 0, n
				if collapse {
					i0 = (u / nt) * tile
					j0 = (u % nt) * tile
					j1 = min(n, j0+tile)
				}
				for j := j0; j < j1; j += tile {
					for it := i0; it < min(n, i0+tile); it++ {
						for jt := j; jt < min(n, j+tile); jt++ {
							dst.Data[dst.Index(jt, it)] = src.Data[src.Index(it, jt)]
						}
					}
				}
			}
		})
	}
}

// fillColblock initializes one rank's column blocks: A(i,j) is the global
// flat value order*(j+colStart)+i, a fill whose transpose has the closed
// form the verifier recomputes, and B is set to -1 so a cell the exchange
// never writes cannot validate by accident. Follows the same tiled/untiled
// selection as the transpose itself.
func fillColblock(pool *workpool.Pool, a, b *colblock.ColBlock, p *Plan) {
	order := p.Order
	if !p.Tiled() {
		pool.ParallelFor(a.Cols, func(start, end int) {
			for j := start; j < end; j++ {
				base := float64(order * (j + p.ColStart))
				for i := 0; i < order; i++ {
					a.Data[a.Index(i, j)] = base + float64(i)
					b.Data[b.Index(i, j)] = -1.0
				}
			}
		})
		return
	}

	tile := p.TileOrder
	ntj := (a.Cols + tile - 1) / tile
	nti := (order + tile - 1) / tile
	units := ntj
	if p.Collapse {
		units = ntj * nti
	}
	pool.ParallelFor(units, func(start, end int) {
		for u := start; u < end; u++ {
			j0 := u * tile
			i0, i1 := 0, order
			if p.Collapse {
				j0 = (u / nti) * tile
				i0 = (u % nti) * tile
				i1 = min(order, i0+tile)
			}
			for i := i0; i < i1; i += tile {
				for jt := j0; jt < min(a.Cols, j0+tile); jt++ {
					base := float64(order * (jt + p.ColStart))
					for it := i; it < min(order, i+tile); it++ {
						a.Data[a.Index(it, jt)] = base + float64(it)
						b.Data[b.Index(it, jt)] = -1.0
					}
				}
			}
		}
	})
}
