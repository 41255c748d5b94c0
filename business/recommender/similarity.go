package recommender

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/hkk4567/webbanhang/domain"
)

// ItemFeatureTable is the latent item-factor table Q with denormalized
// product name and category for display. Only the numeric factors take part
// in similarity computation.
type ItemFeatureTable struct {
	Rank       int
	ProductIDs []uint64
	Names      []string
	Categories []string
	Factors    []float64 // len(ProductIDs) × Rank
}

// NewItemFeatureTable joins the fitted item factors with catalog names and
// categories. Products missing from the catalog keep empty display fields.
func NewItemFeatureTable(s *TruncatedSVD, productIDs []uint64, catalog []domain.CatalogRow) (*ItemFeatureTable, error) {
	if len(productIDs) != s.NumProducts {
		return nil, fmt.Errorf("axis mismatch: fitted on %d products, got %d ids", s.NumProducts, len(productIDs))
	}
	byID := make(map[uint64]domain.CatalogRow, len(catalog))
	for _, row := range catalog {
		byID[row.ProductID] = row
	}

	t := &ItemFeatureTable{
		Rank:       s.Rank,
		ProductIDs: productIDs,
		Names:      make([]string, len(productIDs)),
		Categories: make([]string, len(productIDs)),
		Factors:    make([]float64, len(s.ItemFactors)),
	}
	copy(t.Factors, s.ItemFactors)
	for i, pid := range productIDs {
		if row, ok := byID[pid]; ok {
			t.Names[i] = row.ProductName
			t.Categories[i] = row.CategoryLabel()
		}
	}
	return t, nil
}

func (t *ItemFeatureTable) vector(i int) []float64 {
	return t.Factors[i*t.Rank : (i+1)*t.Rank]
}

// SimilarTo ranks every other product by cosine similarity of latent factors
// against the query product, ties broken by ascending product id. The query
// product itself is excluded. Unknown product ids fail with ErrProductNotFound.
func (t *ItemFeatureTable) SimilarTo(productID uint64, n int) ([]ScoredProduct, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}
	qi, ok := slices.BinarySearch(t.ProductIDs, productID)
	if !ok {
		return nil, fmt.Errorf("%w: product_id=%d", ErrProductNotFound, productID)
	}
	query := t.vector(qi)

	sims := make([]float64, len(t.ProductIDs))
	for i := range t.ProductIDs {
		sims[i] = cosineSimilarity(query, t.vector(i))
	}
	return topN(t.ProductIDs, sims, n, func(j int) bool { return j == qi }), nil
}

func cosineSimilarity(a, b []float64) float64 {
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
