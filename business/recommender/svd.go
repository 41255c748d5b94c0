package recommender

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TruncatedSVD holds the fitted low-rank factorization of an interaction
// matrix: user factors P = U_k·Σ_k and item factors Q = V_k, so that the
// reconstruction P·Qᵗ yields a dense affinity estimate for every (user,
// product) cell, observed or not. Fields are flat row-major slices so the
// fitted state serializes as-is.
type TruncatedSVD struct {
	Rank        int
	NumUsers    int
	NumProducts int
	UserFactors []float64 // NumUsers × Rank
	ItemFactors []float64 // NumProducts × Rank
}

// FitTruncatedSVD factorizes m at the requested rank. The rank is clamped to
// min(rows, cols)−1; a clamped rank below 1 aborts with ErrInsufficientRank.
// gonum's SVD is exact, so the fit is deterministic with no random seed, and
// all-zero rows or columns are valid input (their singular contribution is 0).
func FitTruncatedSVD(m *Matrix, rank int) (*TruncatedSVD, error) {
	maxRank := m.Rows() - 1
	if m.Cols()-1 < maxRank {
		maxRank = m.Cols() - 1
	}
	if rank > maxRank {
		rank = maxRank
	}
	if rank < 1 {
		return nil, fmt.Errorf("%w (clamped to %d for a %dx%d matrix)", ErrInsufficientRank, rank, m.Rows(), m.Cols())
	}

	var svd mat.SVD
	if ok := svd.Factorize(m.Dense(), mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization did not converge for %dx%d matrix", m.Rows(), m.Cols())
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	fitted := &TruncatedSVD{
		Rank:        rank,
		NumUsers:    m.Rows(),
		NumProducts: m.Cols(),
		UserFactors: make([]float64, m.Rows()*rank),
		ItemFactors: make([]float64, m.Cols()*rank),
	}
	for i := 0; i < m.Rows(); i++ {
		for r := 0; r < rank; r++ {
			fitted.UserFactors[i*rank+r] = u.At(i, r) * sigma[r]
		}
	}
	for j := 0; j < m.Cols(); j++ {
		for r := 0; r < rank; r++ {
			fitted.ItemFactors[j*rank+r] = v.At(j, r)
		}
	}
	return fitted, nil
}

// Scores reconstructs the dense predicted-affinity matrix P·Qᵗ on the given
// axes. The axes must match the matrix the model was fitted on.
func (s *TruncatedSVD) Scores(userIDs, productIDs []uint64) (*Matrix, error) {
	if len(userIDs) != s.NumUsers || len(productIDs) != s.NumProducts {
		return nil, fmt.Errorf("axis mismatch: fitted on %dx%d, got %dx%d",
			s.NumUsers, s.NumProducts, len(userIDs), len(productIDs))
	}
	p := mat.NewDense(s.NumUsers, s.Rank, s.UserFactors)
	q := mat.NewDense(s.NumProducts, s.Rank, s.ItemFactors)

	var scores mat.Dense
	scores.Mul(p, q.T())
	return matrixFromDense(userIDs, productIDs, &scores), nil
}

// ItemVector returns the latent factor vector of the j-th product.
func (s *TruncatedSVD) ItemVector(j int) []float64 {
	return s.ItemFactors[j*s.Rank : (j+1)*s.Rank]
}
