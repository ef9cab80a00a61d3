package input_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/input"
)

func TestParseArray(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []float64
	}{
		{"commas", "2,1,2,4,3", []float64{2, 1, 2, 4, 3}},
		{"spaces", "73 74  75\t71", []float64{73, 74, 75, 71}},
		{"mixed", " 1, 2.5 ,-3\n4 ", []float64{1, 2.5, -3, 4}},
		{"blank", "   ", []float64{}},
		{"empty", "", []float64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := input.ParseArray(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseArray_Errors(t *testing.T) {
	for _, text := range []string{"1,x,3", "NaN", "1 Inf", "1,,2e"} {
		_, err := input.ParseArray(text)
		require.Error(t, err, text)
		assert.ErrorIs(t, err, input.ErrParse)
		assert.ErrorIs(t, err, fault.ErrInputParse)
	}

	_, err := input.ParseArray("1 2\n3 oops")
	var pe *input.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 2, pe.Pos)
	assert.Equal(t, "oops", pe.Token)
}

func TestParseInts(t *testing.T) {
	got, err := input.ParseInts("10, 20 30")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, got)

	_, err = input.ParseInts("1 2.5")
	require.ErrorIs(t, err, input.ErrParse)
}

func TestParseMatrix(t *testing.T) {
	m, err := input.ParseMatrix("1, 2, 3\n4,5,6\n\n7,8,9\n")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, m.ToRows())
}

func TestParseMatrix_Errors(t *testing.T) {
	cases := map[string]string{
		"ragged":      "1,2,3\n4,5",
		"non numeric": "1,2\n3,b",
		"empty value": "1,,2",
		"empty":       "\n \n",
		"no text":     "",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := input.ParseMatrix(text)
			require.ErrorIs(t, err, input.ErrParse)
		})
	}

	_, err := input.ParseMatrix("1,2\n3,4\n5")
	var pe *input.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Error(), "row has 1 values, want 2")
}
