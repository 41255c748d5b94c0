package recommender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTruncatedSVDReconstructsLowRankMatrix(t *testing.T) {
	// true rank 1, so the rank-1 fit reconstructs it exactly
	m := &Matrix{
		UserIDs:    []uint64{1, 2, 3},
		ProductIDs: []uint64{10, 20},
		Data: []float64{
			2, 4,
			1, 2,
			3, 6,
		},
	}

	fitted, err := FitTruncatedSVD(m, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, fitted.Rank)

	scores, err := fitted.Scores(m.UserIDs, m.ProductIDs)
	require.NoError(t, err)
	for i, want := range m.Data {
		assert.InDelta(t, want, scores.Data[i], 1e-9)
	}
}

func TestFitTruncatedSVDClampsRank(t *testing.T) {
	m := &Matrix{
		UserIDs:    []uint64{1, 2, 3},
		ProductIDs: []uint64{10, 20, 30},
		Data:       make([]float64, 9),
	}
	m.Data[0] = 1
	m.Data[4] = 2
	m.Data[8] = 3

	// requested 40, clamped to min(3,3)-1 = 2
	fitted, err := FitTruncatedSVD(m, 40)
	require.NoError(t, err)
	assert.Equal(t, 2, fitted.Rank)
	assert.Len(t, fitted.UserFactors, 3*2)
	assert.Len(t, fitted.ItemFactors, 3*2)
}

func TestFitTruncatedSVDInsufficientRank(t *testing.T) {
	m := NewMatrix([]uint64{1}, []uint64{10, 20})
	_, err := FitTruncatedSVD(m, 10)
	assert.ErrorIs(t, err, ErrInsufficientRank)
}

func TestFitTruncatedSVDHandlesZeroRows(t *testing.T) {
	m := &Matrix{
		UserIDs:    []uint64{1, 2, 3},
		ProductIDs: []uint64{10, 20, 30},
		Data: []float64{
			5, 0, 1,
			0, 0, 0, // user with no purchases in the training slice
			0, 2, 0,
		},
	}

	fitted, err := FitTruncatedSVD(m, 2)
	require.NoError(t, err)

	scores, err := fitted.Scores(m.UserIDs, m.ProductIDs)
	require.NoError(t, err)
	for _, v := range scores.Data {
		assert.False(t, math.IsNaN(v))
	}
}

func TestScoresAxisMismatch(t *testing.T) {
	m := &Matrix{
		UserIDs:    []uint64{1, 2},
		ProductIDs: []uint64{10, 20},
		Data:       []float64{1, 0, 0, 1},
	}
	fitted, err := FitTruncatedSVD(m, 1)
	require.NoError(t, err)

	_, err = fitted.Scores([]uint64{1, 2, 3}, m.ProductIDs)
	assert.Error(t, err)
}
