package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkk4567/webbanhang/domain"
)

func syntheticEvents(n int) []domain.Interaction {
	events := make([]domain.Interaction, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, domain.Interaction{
			UserID:    uint64(i%7 + 1),
			ProductID: uint64((i%5 + 1) * 10),
			Quantity:  float64(i%3 + 1),
		})
	}
	return events
}

func TestSplitInteractionsProportions(t *testing.T) {
	events := syntheticEvents(100)
	splits, err := SplitInteractions(events, 42)
	require.NoError(t, err)

	assert.Len(t, splits.Test, 20)
	assert.Len(t, splits.Validation, 20)
	assert.Len(t, splits.Train, 60)
	assert.Len(t, append(append(splits.Train, splits.Validation...), splits.Test...), 100)
}

func TestSplitInteractionsDeterministic(t *testing.T) {
	events := syntheticEvents(50)

	a, err := SplitInteractions(events, 42)
	require.NoError(t, err)
	b, err := SplitInteractions(events, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := SplitInteractions(events, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a.Test, c.Test)
}

func TestSplitInteractionsTooFewEvents(t *testing.T) {
	_, err := SplitInteractions(syntheticEvents(5), 42)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPrecisionRecallAtK(t *testing.T) {
	recs := []ScoredProduct{{ProductID: 10}, {ProductID: 20}, {ProductID: 30}}
	truth := map[uint64]struct{}{10: {}, 30: {}, 40: {}, 50: {}}

	precision, recall := PrecisionRecallAtK(recs, truth, 3)
	assert.InDelta(t, 2.0/3.0, precision, 1e-12)
	assert.InDelta(t, 2.0/4.0, recall, 1e-12)
}

func TestPrecisionRecallAtKEmptyTruth(t *testing.T) {
	recs := []ScoredProduct{{ProductID: 10}}
	precision, recall := PrecisionRecallAtK(recs, nil, 10)
	assert.Equal(t, 0.0, precision)
	assert.Equal(t, 0.0, recall)
}

func TestPrecisionRecallAtKShortList(t *testing.T) {
	// precision divides by K even when fewer than K items could be recommended
	recs := []ScoredProduct{{ProductID: 10}}
	truth := map[uint64]struct{}{10: {}}
	precision, recall := PrecisionRecallAtK(recs, truth, 10)
	assert.InDelta(t, 0.1, precision, 1e-12)
	assert.InDelta(t, 1.0, recall, 1e-12)
}

func TestTunePicksACandidateFromTheGrid(t *testing.T) {
	events := syntheticEvents(200)
	catalog := []domain.CatalogRow{
		{ProductID: 10, ProductName: "A", Category: strptr("Trà")},
		{ProductID: 20, ProductName: "B", Category: strptr("Trà")},
		{ProductID: 30, ProductName: "C", Category: strptr("Cà phê")},
		{ProductID: 40, ProductName: "D", Category: strptr("Cà phê")},
		{ProductID: 50, ProductName: "E", Category: nil},
	}
	grid := GridConfig{
		Ranks:  []int{2, 3},
		Alphas: []float64{0.2, 0.5, 0.8},
		TopK:   3,
		Seed:   42,
	}

	report, err := Tune(events, catalog, grid)
	require.NoError(t, err)

	assert.Contains(t, grid.Ranks, report.BestRank)
	assert.Contains(t, grid.Alphas, report.BestAlpha)
	assert.Len(t, report.Candidates, len(grid.Ranks)*len(grid.Alphas))
	assert.GreaterOrEqual(t, report.TestPrecision, 0.0)
	assert.LessOrEqual(t, report.TestPrecision, 1.0)
	assert.GreaterOrEqual(t, report.TestRecall, 0.0)
	assert.LessOrEqual(t, report.TestRecall, 1.0)
}

func TestTuneDeterministicForFixedSeed(t *testing.T) {
	events := syntheticEvents(120)
	catalog := []domain.CatalogRow{
		{ProductID: 10, ProductName: "A", Category: strptr("Trà")},
		{ProductID: 20, ProductName: "B", Category: strptr("Trà")},
		{ProductID: 30, ProductName: "C", Category: strptr("Cà phê")},
		{ProductID: 40, ProductName: "D", Category: strptr("Cà phê")},
		{ProductID: 50, ProductName: "E", Category: strptr("Trà")},
	}
	grid := GridConfig{Ranks: []int{2}, Alphas: []float64{0.2, 0.8}, TopK: 3, Seed: 42}

	a, err := Tune(events, catalog, grid)
	require.NoError(t, err)
	b, err := Tune(events, catalog, grid)
	require.NoError(t, err)

	assert.Equal(t, a.BestRank, b.BestRank)
	assert.Equal(t, a.BestAlpha, b.BestAlpha)
	assert.Equal(t, a.Candidates, b.Candidates)
}

func TestTuneInvalidTopK(t *testing.T) {
	_, err := Tune(syntheticEvents(100), nil, GridConfig{Ranks: []int{2}, Alphas: []float64{0.5}, TopK: 0, Seed: 42})
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestClampRanksFallsBackToMaxValid(t *testing.T) {
	m := NewMatrix([]uint64{1, 2, 3}, []uint64{10, 20, 30})
	assert.Equal(t, []int{2}, clampRanks([]int{10, 20, 30, 40}, m))
	assert.Equal(t, []int{1, 2}, clampRanks([]int{1, 2, 40}, m))
}
