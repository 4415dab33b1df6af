// Package colblock provides the column-major storage primitive for the
// distributed transpose kernel: a 2D view over a flat []float64 slice.
//
// Layout nomenclature:
//
//   - Each rank owns one block of columns (the Colblock) of the overall
//     matrix, stored contiguously in column-major order: elements (i,j) and
//     (i+1,j) are adjacent, while (i,j) and (i,j+1) are Stride words apart.
//   - A Colblock of a rank in a world of P ranks is logically composed of P
//     square Blocks stacked vertically. A Block is the unit of data exchanged
//     between two ranks in one communication phase; it is addressed as a
//     Window into the Colblock and is not itself contiguous.
//   - Work buffers used to stage Blocks in flight are dense b×b views with
//     Stride == rows, built over their own backing slice via FromSlice.
//
//	 ---------------------------
//	|          |                |
//	| Colblock |                |
//	|          |                |
//	|   ------------            |
//	|          |    |           |
//	|   Block  |    |  Overall  |
//	|          |    |  matrix   |
//	|   ------------            |
//	|          |                |
//	|          |                |
//	 ---------------------------
//
// Accessors At/Set carry a bounds contract and return ErrOutOfRange instead
// of panicking; hot loops that have already established their bounds index
// Data directly through Index. Both roads compute the same flat offset
// i + Stride·j.
package colblock
