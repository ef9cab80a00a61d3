// SPDX-License-Identifier: MIT
//
// Package rotation rotates a square matrix 90° clockwise, ring by ring,
// recording every four-way cell cycle.
package rotation

import (
	"fmt"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on rotation traces.
const Algorithm = "rotate"

// ErrMatrixNil is returned for a nil matrix.
var ErrMatrixNil = fault.Define(fault.ErrStructuralPrecondition, "rotation: matrix is nil")

// Result holds the rotated matrix and the trace. The input is untouched.
type Result struct {
	Matrix *matrix.Dense
	Trace  *trace.Trace
}

// Rotate rotates a copy of m clockwise. Non-square input fails with
// matrix.ErrNonSquare before anything is recorded.
//
// Complexity: O(n²).
func Rotate(m *matrix.Dense) (*Result, error) {
	if m == nil {
		return nil, ErrMatrixNil
	}
	if !m.IsSquare() {
		return nil, fmt.Errorf("rotation: %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrNonSquare)
	}

	n := m.Rows()
	cells := m.ToRows()
	rec := trace.NewRecorder(Algorithm, n*n)
	rec.Emit(trace.KindStart, trace.MatrixState{Cells: cells, Layer: trace.None}, "rotate %dx%d clockwise", n, n)

	for layer := 0; layer < n/2; layer++ {
		first, last := layer, n-1-layer
		for i := first; i < last; i++ {
			off := i - first
			top := cells[first][i]
			cells[first][i] = cells[last-off][first]
			cells[last-off][first] = cells[last][last-off]
			cells[last][last-off] = cells[i][last]
			cells[i][last] = top

			rec.Emit(trace.KindSwap, trace.MatrixState{
				Cells: cells,
				Layer: layer,
				Active: []trace.Cell{
					{Row: first, Col: i},
					{Row: i, Col: last},
					{Row: last, Col: last - off},
					{Row: last - off, Col: first},
				},
			}, "ring %d: cycle (%d,%d) (%d,%d) (%d,%d) (%d,%d)", layer,
				first, i, i, last, last, last-off, last-off, first)
		}
	}
	rec.Emit(trace.KindDone, trace.MatrixState{Cells: cells, Layer: trace.None}, "done: %d rings", n/2)

	out, err := matrix.FromRows(cells)
	if err != nil {
		return nil, err
	}
	tr, err := rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Matrix: out, Trace: tr}, nil
}
