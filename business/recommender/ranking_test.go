package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkk4567/webbanhang/domain"
)

func TestBlendScoresAlphaIdentities(t *testing.T) {
	cf := &Matrix{UserIDs: []uint64{1}, ProductIDs: []uint64{10, 20}, Data: []float64{0.2, 0.8}}
	cbf := &Matrix{UserIDs: []uint64{1}, ProductIDs: []uint64{10, 20}, Data: []float64{0.6, 0.1}}

	pureCF, err := BlendScores(cf, cbf, 1)
	require.NoError(t, err)
	assert.Equal(t, cf.Data, pureCF.Data)

	pureCBF, err := BlendScores(cf, cbf, 0)
	require.NoError(t, err)
	assert.Equal(t, cbf.Data, pureCBF.Data)

	half, err := BlendScores(cf, cbf, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, half.Data[0], 1e-12)
	assert.InDelta(t, 0.45, half.Data[1], 1e-12)
}

func TestBlendScoresShapeMismatch(t *testing.T) {
	cf := NewMatrix([]uint64{1, 2}, []uint64{10, 20})
	cbf := NewMatrix([]uint64{1, 2}, []uint64{10, 20, 30})
	_, err := BlendScores(cf, cbf, 0.5)
	assert.Error(t, err)
}

func TestHybridRowMatchesBlend(t *testing.T) {
	cf := &Matrix{UserIDs: []uint64{1, 2}, ProductIDs: []uint64{10, 20}, Data: []float64{0.2, 0.8, 0.5, 0.5}}
	cbf := &Matrix{UserIDs: []uint64{1, 2}, ProductIDs: []uint64{10, 20}, Data: []float64{0.6, 0.1, 0.3, 0.9}}

	full, err := BlendScores(cf, cbf, 0.8)
	require.NoError(t, err)
	assert.Equal(t, full.Row(1), HybridRow(cf, cbf, 1, 0.8))
}

func TestTopNUnpurchasedMasksPurchases(t *testing.T) {
	events := []domain.Interaction{
		{UserID: 1, ProductID: 10, Quantity: 3},
		{UserID: 1, ProductID: 30, Quantity: 1},
		{UserID: 2, ProductID: 20, Quantity: 2},
	}
	m, err := BuildInteractionMatrix(events, []uint64{1, 2}, []uint64{10, 20, 30})
	require.NoError(t, err)

	// user 1 purchased 10 and 30, so only 20 is recommendable no matter the scores
	scores := []float64{0.9, 0.1, 0.8}
	i, _ := m.UserIndex(1)
	recs := TopNUnpurchased(scores, m.Row(i), m.ProductIDs, 3)
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(20), recs[0].ProductID)
}

func TestTopNUnpurchasedTieBreaksByID(t *testing.T) {
	purchased := []float64{0, 0, 0}
	scores := []float64{0.5, 0.5, 0.9}
	recs := TopNUnpurchased(scores, purchased, []uint64{10, 20, 30}, 2)
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(30), recs[0].ProductID)
	assert.Equal(t, uint64(10), recs[1].ProductID)
}

func TestTopSellers(t *testing.T) {
	events := []domain.Interaction{
		{UserID: 1, ProductID: 10, Quantity: 3},
		{UserID: 2, ProductID: 20, Quantity: 3},
		{UserID: 2, ProductID: 30, Quantity: 5},
	}
	m, err := BuildInteractionMatrix(events, []uint64{1, 2}, []uint64{10, 20, 30, 40})
	require.NoError(t, err)

	recs := TopSellers(m, 3)
	require.Len(t, recs, 3)
	assert.Equal(t, uint64(30), recs[0].ProductID)
	// 10 and 20 tie at 3 units, lower id first
	assert.Equal(t, uint64(10), recs[1].ProductID)
	assert.Equal(t, uint64(20), recs[2].ProductID)
}

func TestTopNZeroCount(t *testing.T) {
	assert.Nil(t, TopSellers(NewMatrix([]uint64{1, 2}, []uint64{10, 20}), 0))
}
