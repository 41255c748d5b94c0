package recommender

import (
	"fmt"
	"sort"
)

// ScoredProduct is a ranked entry before catalog enrichment.
type ScoredProduct struct {
	ProductID uint64
	Score     float64
}

// BlendScores combines two normalized score matrices on identical axes into
// alpha·cf + (1−alpha)·cbf. With alpha=1 the result reproduces cf exactly,
// with alpha=0 it reproduces cbf.
func BlendScores(cf, cbf *Matrix, alpha float64) (*Matrix, error) {
	if cf.Rows() != cbf.Rows() || cf.Cols() != cbf.Cols() {
		return nil, fmt.Errorf("blend shape mismatch: cf %dx%d vs cbf %dx%d",
			cf.Rows(), cf.Cols(), cbf.Rows(), cbf.Cols())
	}
	out := &Matrix{
		UserIDs:    cf.UserIDs,
		ProductIDs: cf.ProductIDs,
		Data:       make([]float64, len(cf.Data)),
	}
	for i, v := range cf.Data {
		out.Data[i] = alpha*v + (1-alpha)*cbf.Data[i]
	}
	return out, nil
}

// HybridRow blends a single user's CF and CBF rows, for serving-time use
// where materializing the full hybrid matrix would be wasted work.
func HybridRow(cf, cbf *Matrix, userIdx int, alpha float64) []float64 {
	cfRow := cf.Row(userIdx)
	cbfRow := cbf.Row(userIdx)
	out := make([]float64, len(cfRow))
	for j, v := range cfRow {
		out[j] = alpha*v + (1-alpha)*cbfRow[j]
	}
	return out
}

// TopNUnpurchased ranks the products the user has no raw interaction with,
// by descending score with ties broken by ascending product id. The result
// is shorter than n when fewer unpurchased products exist.
func TopNUnpurchased(scores, purchased []float64, productIDs []uint64, n int) []ScoredProduct {
	return topN(productIDs, scores, n, func(j int) bool { return purchased[j] != 0 })
}

// TopSellers is the cold-start fallback: the products with the highest total
// quantity sold, ties broken by ascending product id.
func TopSellers(m *Matrix, n int) []ScoredProduct {
	return topN(m.ProductIDs, m.ColumnSums(), n, nil)
}

func topN(productIDs []uint64, scores []float64, n int, skip func(j int) bool) []ScoredProduct {
	if n <= 0 {
		return nil
	}
	candidates := make([]ScoredProduct, 0, len(productIDs))
	for j, pid := range productIDs {
		if skip != nil && skip(j) {
			continue
		}
		candidates = append(candidates, ScoredProduct{ProductID: pid, Score: scores[j]})
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].ProductID < candidates[b].ProductID
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
