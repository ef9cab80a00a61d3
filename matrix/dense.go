// SPDX-License-Identifier: MIT
//
// Package matrix provides the Dense matrix structure used by the rotation
// engine and produced by the input normalizer.
//
// Dense stores elements in a flat row-major slice. Public indexers never
// panic; they return ErrOutOfRange instead.
package matrix

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/fault"
)

// Sentinel errors for matrix construction and access.
var (
	// ErrBadShape is returned when requested dimensions are non-positive.
	ErrBadShape = fault.Define(fault.ErrStructuralPrecondition, "matrix: invalid shape")

	// ErrRagged is returned when rows of different lengths are supplied.
	ErrRagged = fault.Define(fault.ErrStructuralPrecondition, "matrix: rows have different lengths")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = fault.Define(fault.ErrStructuralPrecondition, "matrix: matrix is not square")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, len == r*c
}

// NewDense creates an r×c zero matrix.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a Dense from a slice of equally sized rows.
// The input is copied; later changes to rows do not affect the matrix.
// Complexity: O(r*c).
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrBadShape)
	}
	cols := len(rows[0])
	m := &Dense{r: len(rows), c: cols, data: make([]float64, 0, len(rows)*cols)}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), cols, ErrRagged)
		}
		m.data = append(m.data, row...)
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Len returns the number of cells.
func (m *Dense) Len() int { return len(m.data) }

// IsSquare reports whether Rows()==Cols().
func (m *Dense) IsSquare() bool { return m.r == m.c }

// indexOf computes the flat offset for (row, col).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense(%d,%d) on %dx%d: %w", row, col, m.r, m.c, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At returns the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[i], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	i, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v

	return nil
}

// Clone returns a deep copy of m.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// ToRows returns the matrix as freshly allocated rows.
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// String renders the matrix one row per line, for debugging and examples.
func (m *Dense) String() string {
	var buf []byte
	for i := 0; i < m.r; i++ {
		buf = fmt.Appendf(buf, "%v\n", m.data[i*m.c:(i+1)*m.c])
	}

	return string(buf)
}
