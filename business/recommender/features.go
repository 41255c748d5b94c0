package recommender

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/hkk4567/webbanhang/domain"
)

// FeatureMatrix is the one-hot product×category matrix F. Rows follow
// ProductIDs (the interaction matrix's column axis), columns follow the
// sorted distinct category labels. A product that exists in the interaction
// universe but not in the catalog keeps an all-zero row so the axes never
// drift apart.
type FeatureMatrix struct {
	ProductIDs []uint64
	Categories []string
	Data       []float64
}

// BuildFeatureMatrix one-hot encodes catalog categories, aligned to the given
// product id axis. NULL categories land in the uncategorized bucket instead
// of being dropped, so every catalog product participates in CBF scoring.
func BuildFeatureMatrix(catalog []domain.CatalogRow, productIDs []uint64) *FeatureMatrix {
	products := sortedUnique(productIDs)

	labelSet := make(map[string]struct{}, len(catalog))
	for _, row := range catalog {
		labelSet[row.CategoryLabel()] = struct{}{}
	}
	categories := make([]string, 0, len(labelSet))
	for label := range labelSet {
		categories = append(categories, label)
	}
	sort.Strings(categories)

	f := &FeatureMatrix{
		ProductIDs: products,
		Categories: categories,
		Data:       make([]float64, len(products)*len(categories)),
	}
	for _, row := range catalog {
		i, ok := slices.BinarySearch(products, row.ProductID)
		if !ok {
			continue
		}
		j := sort.SearchStrings(categories, row.CategoryLabel())
		f.Data[i*len(categories)+j] = 1
	}
	return f
}

func (f *FeatureMatrix) Rows() int { return len(f.ProductIDs) }
func (f *FeatureMatrix) Cols() int { return len(f.Categories) }

// Dense wraps F as a gonum matrix sharing the backing slice.
func (f *FeatureMatrix) Dense() *mat.Dense {
	return mat.NewDense(f.Rows(), f.Cols(), f.Data)
}

// ReindexTo realigns F to a different product axis, zero-filling rows for
// products missing from the feature table.
func (f *FeatureMatrix) ReindexTo(productIDs []uint64) *FeatureMatrix {
	products := sortedUnique(productIDs)
	out := &FeatureMatrix{
		ProductIDs: products,
		Categories: f.Categories,
		Data:       make([]float64, len(products)*len(f.Categories)),
	}
	c := len(f.Categories)
	for i, pid := range f.ProductIDs {
		ti, ok := slices.BinarySearch(products, pid)
		if !ok {
			continue
		}
		copy(out.Data[ti*c:(ti+1)*c], f.Data[i*c:(i+1)*c])
	}
	return out
}

// CBFScores computes the content-based score matrix M·F·Fᵗ: user category
// profiles (M·F) projected back onto products. F is realigned to M's column
// axis first when the axes differ.
func CBFScores(m *Matrix, f *FeatureMatrix) *Matrix {
	if !slices.Equal(m.ProductIDs, f.ProductIDs) {
		f = f.ReindexTo(m.ProductIDs)
	}
	if f.Cols() == 0 {
		// No catalog, no categories: every CBF score is 0.
		return NewMatrix(m.UserIDs, m.ProductIDs)
	}

	var profiles mat.Dense // users × categories
	profiles.Mul(m.Dense(), f.Dense())

	var scores mat.Dense // users × products
	scores.Mul(&profiles, f.Dense().T())

	return matrixFromDense(m.UserIDs, m.ProductIDs, &scores)
}
