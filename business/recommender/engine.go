package recommender

import (
	"context"
	"fmt"

	"github.com/hkk4567/webbanhang/domain"
)

// ProductDetailRepository fetches catalog rows for response enrichment only;
// it never participates in scoring.
type ProductDetailRepository interface {
	FindDetailsByIDs(ctx context.Context, ids []uint64) ([]domain.ProductDetail, error)
}

// RecommenderEngine serves recommendations from one loaded artifact
// generation. It holds no mutable state after construction, so concurrent
// requests need no synchronization. Retraining produces a new generation on
// disk; this engine keeps serving the one it was built with.
type RecommenderEngine struct {
	arts     *Artifacts
	products ProductDetailRepository
}

func NewRecommenderEngine(arts *Artifacts, products ProductDetailRepository) *RecommenderEngine {
	return &RecommenderEngine{
		arts:     arts,
		products: products,
	}
}

// Meta exposes the loaded generation's identity.
func (e *RecommenderEngine) Meta() ArtifactMetadata {
	return e.arts.Meta
}

// RecommendForUser returns up to n unpurchased products ranked by the hybrid
// score alpha·CF + (1−alpha)·CBF. A user absent from the interaction matrix
// gets the global best sellers instead — a deliberate cold-start fallback,
// not an error.
func (e *RecommenderEngine) RecommendForUser(ctx context.Context, userID uint64, n int, alpha float64) ([]domain.RecommendedProduct, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: num_recs=%d", ErrInvalidCount, n)
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	idx, ok := e.arts.Interactions.UserIndex(userID)
	if !ok {
		ColdStartFallbacksTotal.Inc()
		return e.enrich(ctx, TopSellers(e.arts.Interactions, n))
	}

	scores := HybridRow(e.arts.CFNorm, e.arts.CBFNorm, idx, alpha)
	recs := TopNUnpurchased(scores, e.arts.Interactions.Row(idx), e.arts.Interactions.ProductIDs, n)
	return e.enrich(ctx, recs)
}

// SimilarProducts returns up to n products closest to the query product in
// latent factor space. Unknown products fail with ErrProductNotFound.
func (e *RecommenderEngine) SimilarProducts(ctx context.Context, productID uint64, n int) ([]domain.RecommendedProduct, error) {
	recs, err := e.arts.Items.SimilarTo(productID, n)
	if err != nil {
		return nil, err
	}
	return e.enrich(ctx, recs)
}

// enrich joins ranked ids with catalog detail rows, preserving rank order.
// Ids whose product has since disappeared from the catalog are dropped.
func (e *RecommenderEngine) enrich(ctx context.Context, recs []ScoredProduct) ([]domain.RecommendedProduct, error) {
	if len(recs) == 0 {
		return []domain.RecommendedProduct{}, nil
	}
	ids := make([]uint64, len(recs))
	for i, r := range recs {
		ids[i] = r.ProductID
	}
	details, err := e.products.FindDetailsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich recommendations: %w", err)
	}
	byID := make(map[uint64]domain.ProductDetail, len(details))
	for _, d := range details {
		byID[d.ProductID] = d
	}

	out := make([]domain.RecommendedProduct, 0, len(recs))
	for _, r := range recs {
		d, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		category := domain.UncategorizedLabel
		if d.Category != nil && *d.Category != "" {
			category = *d.Category
		}
		out = append(out, domain.RecommendedProduct{
			ProductID:   r.ProductID,
			Score:       r.Score,
			ProductName: d.ProductName,
			Category:    category,
			Description: d.Description,
			ImageURL:    d.ImageURL,
			Status:      d.Status,
			Price:       d.Price,
		})
	}
	return out, nil
}
