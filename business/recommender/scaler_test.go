package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMaxScalerColumnwise(t *testing.T) {
	m := &Matrix{
		UserIDs:    []uint64{1, 2, 3},
		ProductIDs: []uint64{10, 20},
		Data: []float64{
			1, -2,
			3, 0,
			2, 2,
		},
	}

	out, err := (&MinMaxScaler{}).FitTransform(m)
	require.NoError(t, err)

	assert.Equal(t, []float64{
		0, 0,
		1, 0.5,
		0.5, 1,
	}, out.Data)
}

func TestMinMaxScalerConstantColumn(t *testing.T) {
	m := &Matrix{
		UserIDs:    []uint64{1, 2},
		ProductIDs: []uint64{10, 20},
		Data: []float64{
			7, 1,
			7, 3,
		},
	}

	out, err := (&MinMaxScaler{}).FitTransform(m)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0}, []float64{out.At(0, 0), out.At(1, 0)})
	assert.Equal(t, []float64{0, 1}, []float64{out.At(0, 1), out.At(1, 1)})
}

func TestMinMaxScalerUnfitted(t *testing.T) {
	m := NewMatrix([]uint64{1, 2}, []uint64{10, 20})
	_, err := (&MinMaxScaler{}).Transform(m)
	assert.Error(t, err)
}

func TestMinMaxScalerColumnCountMismatch(t *testing.T) {
	s := &MinMaxScaler{}
	s.Fit(NewMatrix([]uint64{1, 2}, []uint64{10, 20}))

	_, err := s.Transform(NewMatrix([]uint64{1, 2}, []uint64{10, 20, 30}))
	assert.Error(t, err)
}

func TestMinMaxScalerReappliesPersistedFit(t *testing.T) {
	fitM := &Matrix{
		UserIDs:    []uint64{1, 2},
		ProductIDs: []uint64{10},
		Data:       []float64{0, 10},
	}
	s := &MinMaxScaler{}
	s.Fit(fitM)

	// a different matrix transformed with the stored min/max, as at serving time
	other := &Matrix{
		UserIDs:    []uint64{1, 2},
		ProductIDs: []uint64{10},
		Data:       []float64{5, 20},
	}
	out, err := s.Transform(other)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 2}, out.Data)
}
