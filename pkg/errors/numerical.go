package errors

import (
	"math"
)

// Matrix is the minimal read-only matrix view used by the checks below.
// It matches gonum's mat.Matrix without importing it here.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// CheckNumericalStability returns a NumericalInstabilityError if values
// contain NaN or Inf.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// CheckMatrix checks all entries of a matrix for NaN or Inf. Scanning stops
// at the first offending row so the error message stays small.
func CheckMatrix(operation string, m Matrix, iteration int) error {
	rows, cols := m.Dims()
	var unstable []float64

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstable = append(unstable, v)
				if len(unstable) >= 10 {
					break
				}
			}
		}
		if len(unstable) > 0 {
			break
		}
	}

	if len(unstable) > 0 {
		return NewNumericalInstabilityError(operation, unstable, iteration)
	}

	return nil
}

// CountNegatives scans a matrix for negative entries and reports how many
// there are along with the most negative value. Intensity data is expected
// to be non-negative; callers turn a non-zero count into a
// NegativeValueWarning.
func CountNegatives(m Matrix) (count int, min float64) {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v < 0 {
				count++
				if v < min {
					min = v
				}
			}
		}
	}
	return count, min
}
