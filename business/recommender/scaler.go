package recommender

import "fmt"

// MinMaxScaler rescales a score matrix column-wise into [0,1]: per column the
// fitting matrix's minimum maps to 0 and its maximum to 1. The fitted Min/Max
// are persisted with the artifacts and reapplied as-is at serving time —
// refitting on a different slice would break comparability with the mixing
// weight chosen during tuning.
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

// Fit records the per-column minima and maxima of m.
func (s *MinMaxScaler) Fit(m *Matrix) {
	cols := m.Cols()
	s.Min = make([]float64, cols)
	s.Max = make([]float64, cols)
	for j := 0; j < cols; j++ {
		s.Min[j] = m.At(0, j)
		s.Max[j] = m.At(0, j)
	}
	for i := 1; i < m.Rows(); i++ {
		row := m.Row(i)
		for j, v := range row {
			if v < s.Min[j] {
				s.Min[j] = v
			}
			if v > s.Max[j] {
				s.Max[j] = v
			}
		}
	}
}

// Transform applies the fitted rescaling. A constant column (max == min) maps
// to all-zero instead of dividing by zero.
func (s *MinMaxScaler) Transform(m *Matrix) (*Matrix, error) {
	if len(s.Min) == 0 {
		return nil, fmt.Errorf("min-max scaler is not fitted")
	}
	if len(s.Min) != m.Cols() {
		return nil, fmt.Errorf("min-max scaler fitted on %d columns, matrix has %d", len(s.Min), m.Cols())
	}
	out := &Matrix{
		UserIDs:    m.UserIDs,
		ProductIDs: m.ProductIDs,
		Data:       make([]float64, len(m.Data)),
	}
	cols := m.Cols()
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		for j, v := range row {
			span := s.Max[j] - s.Min[j]
			if span == 0 {
				continue
			}
			out.Data[i*cols+j] = (v - s.Min[j]) / span
		}
	}
	return out, nil
}

// FitTransform fits on m and rescales it in one step.
func (s *MinMaxScaler) FitTransform(m *Matrix) (*Matrix, error) {
	s.Fit(m)
	return s.Transform(m)
}
