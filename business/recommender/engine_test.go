package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkk4567/webbanhang/domain"
)

type fakeDetailRepo struct {
	details map[uint64]domain.ProductDetail
	err     error
}

func (r *fakeDetailRepo) FindDetailsByIDs(_ context.Context, ids []uint64) ([]domain.ProductDetail, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.ProductDetail, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.details[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func testEngine(t *testing.T) (*RecommenderEngine, *fakeDetailRepo) {
	t.Helper()
	arts := trainedArtifacts(t)
	tra, caphe := "Trà", "Cà phê"
	repo := &fakeDetailRepo{details: map[uint64]domain.ProductDetail{
		10: {ProductID: 10, ProductName: "A", Category: &tra, Price: 10000},
		20: {ProductID: 20, ProductName: "B", Category: &caphe, Price: 20000},
		30: {ProductID: 30, ProductName: "C", Category: &tra, Price: 30000},
	}}
	return NewRecommenderEngine(arts, repo), repo
}

func TestRecommendForUserMasksPurchases(t *testing.T) {
	engine, _ := testEngine(t)

	// user 1 already bought 10 and 30
	recs, err := engine.RecommendForUser(context.Background(), 1, 5, 0.5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(20), recs[0].ProductID)
	assert.Equal(t, "B", recs[0].ProductName)
	assert.Equal(t, "Cà phê", recs[0].Category)
}

func TestRecommendForUserColdStartFallsBackToTopSellers(t *testing.T) {
	engine, _ := testEngine(t)

	recs, err := engine.RecommendForUser(context.Background(), 999, 2, 0.5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// total quantities: 10 → 3, 20 → 2, 30 → 1
	assert.Equal(t, uint64(10), recs[0].ProductID)
	assert.Equal(t, uint64(20), recs[1].ProductID)
}

func TestRecommendForUserInvalidCount(t *testing.T) {
	engine, _ := testEngine(t)

	_, err := engine.RecommendForUser(context.Background(), 1, 0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestRecommendForUserClampsAlpha(t *testing.T) {
	engine, _ := testEngine(t)

	// out-of-range alphas behave as the nearest bound rather than erroring
	low, err := engine.RecommendForUser(context.Background(), 1, 5, -3)
	require.NoError(t, err)
	atZero, err := engine.RecommendForUser(context.Background(), 1, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, atZero, low)
}

func TestSimilarProductsEnriches(t *testing.T) {
	engine, _ := testEngine(t)

	recs, err := engine.SimilarProducts(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, uint64(10), r.ProductID)
		assert.NotEmpty(t, r.ProductName)
	}
}

func TestSimilarProductsUnknownID(t *testing.T) {
	engine, _ := testEngine(t)

	_, err := engine.SimilarProducts(context.Background(), 999, 3)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestEnrichDropsProductsMissingFromCatalog(t *testing.T) {
	engine, repo := testEngine(t)
	delete(repo.details, 20)

	// user 1's only recommendable product vanished from the catalog
	recs, err := engine.RecommendForUser(context.Background(), 1, 5, 0.5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestEnrichRepositoryError(t *testing.T) {
	engine, repo := testEngine(t)
	repo.err = errors.New("db down")

	_, err := engine.RecommendForUser(context.Background(), 1, 5, 0.5)
	assert.Error(t, err)
}
