package domain

import "fmt"

// Matrix is a dense row-major table of float32 values.
// Row i of an embedding matrix is the vector for vocabulary index i.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: matrix shape %dx%d", ErrInvalidInput, rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}, nil
}

// NewMatrixFrom wraps an existing row-major slice without copying.
func NewMatrixFrom(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: matrix shape %dx%d", ErrInvalidInput, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d matrix", ErrShapeMismatch, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Row returns a view of row i. Callers must not modify it once the
// matrix belongs to a Model.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Data returns the backing row-major slice.
func (m *Matrix) Data() []float32 {
	return m.data
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}
