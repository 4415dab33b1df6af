// SPDX-License-Identifier: MIT

package colblock

import "errors"

// Sentinel errors for colblock construction and access.
// All are matched with errors.Is; fmt.Errorf("%w", ...) wrapping at call
// sites adds the offending indices.
var (
	// ErrBadShape indicates non-positive rows or columns.
	ErrBadShape = errors.New("colblock: rows and cols must be > 0")
	// ErrBadStride indicates a stride smaller than the number of rows.
	ErrBadStride = errors.New("colblock: stride must be >= rows")
	// ErrShortSlice indicates a backing slice too small for the view.
	ErrShortSlice = errors.New("colblock: backing slice too small for view")
	// ErrOutOfRange indicates a row or column index outside the view.
	ErrOutOfRange = errors.New("colblock: index out of range")
	// ErrBadWindow indicates a requested sub-window outside the parent view.
	ErrBadWindow = errors.New("colblock: window out of range")
)
