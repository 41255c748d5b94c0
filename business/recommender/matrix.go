package recommender

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/hkk4567/webbanhang/domain"
)

// Matrix is a dense user×product matrix with explicit, ascending-sorted id
// axes. Rows follow UserIDs, columns follow ProductIDs, values are stored
// row-major. The exported fields make it gob-encodable as a flat artifact.
type Matrix struct {
	UserIDs    []uint64
	ProductIDs []uint64
	Data       []float64
}

// NewMatrix returns a zero-filled matrix over the given axes. Both id slices
// are deduplicated and sorted ascending so matrices built from different data
// slices stay alignable.
func NewMatrix(userIDs, productIDs []uint64) *Matrix {
	users := sortedUnique(userIDs)
	products := sortedUnique(productIDs)
	return &Matrix{
		UserIDs:    users,
		ProductIDs: products,
		Data:       make([]float64, len(users)*len(products)),
	}
}

func (m *Matrix) Rows() int { return len(m.UserIDs) }
func (m *Matrix) Cols() int { return len(m.ProductIDs) }

func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*len(m.ProductIDs)+j]
}

func (m *Matrix) set(i, j int, v float64) {
	m.Data[i*len(m.ProductIDs)+j] = v
}

func (m *Matrix) add(i, j int, v float64) {
	m.Data[i*len(m.ProductIDs)+j] += v
}

// Row returns the i-th row as a view into the backing slice.
func (m *Matrix) Row(i int) []float64 {
	c := len(m.ProductIDs)
	return m.Data[i*c : (i+1)*c]
}

// UserIndex locates a user id on the row axis.
func (m *Matrix) UserIndex(userID uint64) (int, bool) {
	return slices.BinarySearch(m.UserIDs, userID)
}

// ProductIndex locates a product id on the column axis.
func (m *Matrix) ProductIndex(productID uint64) (int, bool) {
	return slices.BinarySearch(m.ProductIDs, productID)
}

// ColumnSums returns per-product totals, i.e. total quantity sold when called
// on a raw interaction matrix.
func (m *Matrix) ColumnSums() []float64 {
	sums := make([]float64, len(m.ProductIDs))
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		for j, v := range row {
			sums[j] += v
		}
	}
	return sums
}

// ReindexTo realigns the matrix to a (usually wider) universe, filling cells
// that have no counterpart with 0. Cells for ids missing from the target axes
// are dropped. Reindexing twice to the same universe is idempotent.
func (m *Matrix) ReindexTo(userIDs, productIDs []uint64) *Matrix {
	out := NewMatrix(userIDs, productIDs)
	for i, uid := range m.UserIDs {
		ti, ok := out.UserIndex(uid)
		if !ok {
			continue
		}
		row := m.Row(i)
		for j, pid := range m.ProductIDs {
			if row[j] == 0 {
				continue
			}
			tj, ok := out.ProductIndex(pid)
			if !ok {
				continue
			}
			out.set(ti, tj, row[j])
		}
	}
	return out
}

// Dense wraps the matrix as a gonum dense matrix sharing the same backing
// slice. Callers must not resize it.
func (m *Matrix) Dense() *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), m.Data)
}

// matrixFromDense copies a gonum result into a Matrix over the given axes.
func matrixFromDense(userIDs, productIDs []uint64, d *mat.Dense) *Matrix {
	r, c := d.Dims()
	out := &Matrix{
		UserIDs:    userIDs,
		ProductIDs: productIDs,
		Data:       make([]float64, r*c),
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Data[i*c+j] = d.At(i, j)
		}
	}
	return out
}

// BuildInteractionMatrix group-sums purchase events into a dense matrix over
// the given user/product universes. The universes may be wider than the event
// slice (train-only matrices still align with the full catalog); events
// referencing ids outside the universe are skipped. An empty event slice
// yields an all-zero matrix of the universe's shape.
func BuildInteractionMatrix(events []domain.Interaction, userIDs, productIDs []uint64) (*Matrix, error) {
	m := NewMatrix(userIDs, productIDs)
	if m.Rows() < 2 || m.Cols() < 2 {
		return nil, fmt.Errorf("%w (got %d users, %d products)", ErrInsufficientData, m.Rows(), m.Cols())
	}
	for _, e := range events {
		i, ok := m.UserIndex(e.UserID)
		if !ok {
			continue
		}
		j, ok := m.ProductIndex(e.ProductID)
		if !ok {
			continue
		}
		m.add(i, j, e.Quantity)
	}
	return m, nil
}

// InteractionUniverse derives the complete user and product id sets for a
// training run: users from the event stream, products from the catalog joined
// with the event stream. Both come back sorted ascending.
func InteractionUniverse(events []domain.Interaction, catalog []domain.CatalogRow) (userIDs, productIDs []uint64) {
	users := make([]uint64, 0, len(events))
	products := make([]uint64, 0, len(catalog)+len(events))
	for _, e := range events {
		users = append(users, e.UserID)
		products = append(products, e.ProductID)
	}
	for _, row := range catalog {
		products = append(products, row.ProductID)
	}
	return sortedUnique(users), sortedUnique(products)
}

func sortedUnique(ids []uint64) []uint64 {
	out := make([]uint64, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return slices.Compact(out)
}
