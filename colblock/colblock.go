package colblock

import "fmt"

// ColBlock is a column-major view of Rows×Cols float64 elements over a flat
// backing slice. Element (i,j) lives at Data[i + Stride*j]. A freshly
// allocated ColBlock is dense (Stride == Rows); a Window shares its parent's
// backing slice and stride.
type ColBlock struct {
	Rows, Cols int
	// Stride is the flat distance between (i,j) and (i,j+1).
	Stride int
	// Data holds at least (Cols-1)*Stride+Rows elements. (0,0) is Data[0].
	Data []float64
}

// New allocates a dense rows×cols column-major view initialized to zeros.
// Complexity: O(rows*cols) time and memory.
func New(rows, cols int) (*ColBlock, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrBadShape)
	}
	return &ColBlock{
		Rows:   rows,
		Cols:   cols,
		Stride: rows,
		Data:   make([]float64, rows*cols),
	}, nil
}

// FromSlice wraps an existing backing slice in a rows×cols view with the
// given stride. The slice is shared, not copied; callers own aliasing.
func FromSlice(data []float64, rows, cols, stride int) (*ColBlock, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("FromSlice(%d,%d): %w", rows, cols, ErrBadShape)
	}
	if stride < rows {
		return nil, fmt.Errorf("FromSlice: stride %d, rows %d: %w", stride, rows, ErrBadStride)
	}
	if need := (cols-1)*stride + rows; len(data) < need {
		return nil, fmt.Errorf("FromSlice: have %d, need %d: %w", len(data), need, ErrShortSlice)
	}
	return &ColBlock{Rows: rows, Cols: cols, Stride: stride, Data: data}, nil
}

// Index computes the flat offset of (i,j) without a bounds check.
// Hot loops that have clamped their ranges use this directly.
func (m *ColBlock) Index(i, j int) int {
	return i + m.Stride*j
}

// inRange reports whether (i,j) lies inside the view.
func (m *ColBlock) inRange(i, j int) bool {
	return i >= 0 && i < m.Rows && j >= 0 && j < m.Cols
}

// At retrieves the element at (i,j), honoring the bounds contract.
func (m *ColBlock) At(i, j int) (float64, error) {
	if !m.inRange(i, j) {
		return 0, fmt.Errorf("At(%d,%d) of %dx%d: %w", i, j, m.Rows, m.Cols, ErrOutOfRange)
	}
	return m.Data[m.Index(i, j)], nil
}

// Set assigns v at (i,j), honoring the bounds contract.
func (m *ColBlock) Set(i, j int, v float64) error {
	if !m.inRange(i, j) {
		return fmt.Errorf("Set(%d,%d) of %dx%d: %w", i, j, m.Rows, m.Cols, ErrOutOfRange)
	}
	m.Data[m.Index(i, j)] = v
	return nil
}

// Window returns the rows×Cols sub-view starting at row rowOff, spanning all
// columns. The returned view shares the backing slice and stride of m; this
// is how a Block (one square slice of the Colblock) is addressed.
func (m *ColBlock) Window(rowOff, rows int) (*ColBlock, error) {
	if rows <= 0 || rowOff < 0 || rowOff+rows > m.Rows {
		return nil, fmt.Errorf("Window(%d,%d) of %d rows: %w", rowOff, rows, m.Rows, ErrBadWindow)
	}
	end := (m.Cols-1)*m.Stride + rowOff + rows
	return &ColBlock{
		Rows:   rows,
		Cols:   m.Cols,
		Stride: m.Stride,
		Data:   m.Data[rowOff:end],
	}, nil
}

// Fill assigns v to every element of the view, honoring the stride.
func (m *ColBlock) Fill(v float64) {
	for j := 0; j < m.Cols; j++ {
		col := m.Data[m.Stride*j : m.Stride*j+m.Rows]
		for i := range col {
			col[i] = v
		}
	}
}

// Clone returns a dense deep copy of the view.
func (m *ColBlock) Clone() *ColBlock {
	out := &ColBlock{Rows: m.Rows, Cols: m.Cols, Stride: m.Rows, Data: make([]float64, m.Rows*m.Cols)}
	for j := 0; j < m.Cols; j++ {
		copy(out.Data[j*m.Rows:(j+1)*m.Rows], m.Data[m.Stride*j:m.Stride*j+m.Rows])
	}
	return out
}

// String implements fmt.Stringer for debugging small views.
func (m *ColBlock) String() string {
	s := fmt.Sprintf("ColBlock %dx%d (stride %d)\n", m.Rows, m.Cols, m.Stride)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			s += fmt.Sprintf("%8.1f ", m.Data[m.Index(i, j)])
		}
		s += "\n"
	}
	return s
}
