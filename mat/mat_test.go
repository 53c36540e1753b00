package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMult(t *testing.T) {
	table := []struct {
		m1, m2, out *Matrix
	}{
		{Identity(2), NewMatrix([]float64{1, 2, 3, 4}, 2, 2),
			NewMatrix([]float64{1, 2, 3, 4}, 2, 2)},
		{NewMatrix([]float64{1, 2, 3, 4}, 2, 2),
			NewMatrix([]float64{5, 6, 7, 8}, 2, 2),
			NewMatrix([]float64{19, 22, 43, 50}, 2, 2)},
		{NewMatrix([]float64{1, 2, 3}, 3, 1),
			NewMatrix([]float64{1, 1, 1}, 1, 3),
			NewMatrix([]float64{6}, 1, 1)},
	}

	for i, test := range table {
		out := test.m1.Mult(test.m2)
		assert.Equal(t, test.out, out, "%d) Mult", i+1)
	}
}

func TestTranspose(t *testing.T) {
	m := NewMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	mt := m.Transpose()

	assert.Equal(t, 2, mt.Width)
	assert.Equal(t, 3, mt.Height)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, mt.Vals)
	assert.Equal(t, m, mt.Transpose())
}

func TestNewMatrixPanics(t *testing.T) {
	assert.Panics(t, func() { NewMatrix([]float64{1, 2}, 3, 1) })
	assert.Panics(t, func() { NewMatrix(nil, 0, 1) })
	assert.Panics(t, func() { Identity(2).Mult(Identity(3)) })
}
