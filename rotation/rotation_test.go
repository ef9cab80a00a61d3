package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/input"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/rotation"
	"github.com/katalvlaran/stepwise/trace"
)

func TestRotate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want [][]float64
		swap int
	}{
		{"1x1", "5", [][]float64{{5}}, 0},
		{"2x2", "1,2\n3,4", [][]float64{{3, 1}, {4, 2}}, 1},
		{"3x3", "1,2,3\n4,5,6\n7,8,9", [][]float64{{7, 4, 1}, {8, 5, 2}, {9, 6, 3}}, 2},
		{"4x4", "1,2,3,4\n5,6,7,8\n9,10,11,12\n13,14,15,16",
			[][]float64{{13, 9, 5, 1}, {14, 10, 6, 2}, {15, 11, 7, 3}, {16, 12, 8, 4}}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := input.ParseMatrix(tc.in)
			require.NoError(t, err)
			before := m.ToRows()

			res, err := rotation.Rotate(m)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Matrix.ToRows())
			assert.Equal(t, before, m.ToRows(), "input must not change")
			assert.Equal(t, tc.swap+2, res.Trace.Len())

			first := res.Trace.First().State.(trace.MatrixState)
			assert.Equal(t, before, first.Cells)
			last := res.Trace.Last().State.(trace.MatrixState)
			assert.Equal(t, tc.want, last.Cells)
		})
	}
}

func TestRotate_SwapCellsAreAFourCycle(t *testing.T) {
	m, err := input.ParseMatrix("1,2,3\n4,5,6\n7,8,9")
	require.NoError(t, err)
	res, err := rotation.Rotate(m)
	require.NoError(t, err)

	swap := res.Trace.Snapshots()[1].State.(trace.MatrixState)
	assert.Equal(t, 0, swap.Layer)
	assert.Equal(t, []trace.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 2}, {Row: 2, Col: 0}}, swap.Active)
	assert.Equal(t, [][]float64{{7, 2, 1}, {4, 5, 6}, {9, 8, 3}}, swap.Cells)
}

func TestRotate_Errors(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = rotation.Rotate(m)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.ErrorIs(t, err, fault.ErrStructuralPrecondition)

	_, err = rotation.Rotate(nil)
	require.ErrorIs(t, err, rotation.ErrMatrixNil)
}
