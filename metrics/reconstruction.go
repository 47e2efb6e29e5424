// Package metrics provides the reconstruction figures of merit used as
// convergence diagnostics by the decomposition models: the coefficient of
// determination of a bilinear reconstruction and the standard deviation of
// its residuals.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/pkg/errors"
)

// FiguresOfMerit bundles the two diagnostics tracked per iteration.
type FiguresOfMerit struct {
	// RSquare is the cumulative fraction of explained variance,
	// 1 - ||Xhat-X||_F^2 / ||X||_F^2.
	RSquare float64

	// ResidualStd is the population standard deviation of the entries of
	// Xhat - X.
	ResidualStd float64
}

// UnexplainedVariance returns 1 - RSquare, the quantity tested against the
// convergence tolerance.
func (f FiguresOfMerit) UnexplainedVariance() float64 {
	return 1 - f.RSquare
}

// Residual returns Xhat - X.
func Residual(x, xhat mat.Matrix) (*mat.Dense, error) {
	if err := sameDims("metrics.Residual", x, xhat); err != nil {
		return nil, err
	}
	r, c := x.Dims()
	res := mat.NewDense(r, c, nil)
	res.Sub(xhat, x)
	return res, nil
}

// RSquare returns the coefficient of determination of the reconstruction,
// 1 - ||Xhat-X||_F^2 / ||X||_F^2. An all-zero X returns an error because the
// ratio is undefined.
func RSquare(x, xhat mat.Matrix) (float64, error) {
	res, err := Residual(x, xhat)
	if err != nil {
		return 0, err
	}
	normX := mat.Norm(x, 2)
	if normX == 0 {
		return 0, errors.NewValueError("metrics.RSquare", "input matrix has zero norm")
	}
	normRes := mat.Norm(res, 2)
	return 1 - (normRes*normRes)/(normX*normX), nil
}

// ResidualStdDev returns the population standard deviation of the entries of
// Xhat - X.
func ResidualStdDev(x, xhat mat.Matrix) (float64, error) {
	res, err := Residual(x, xhat)
	if err != nil {
		return 0, err
	}
	return popStdDense(res), nil
}

// UnexplainedVariance returns 1 - RSquare(x, xhat).
func UnexplainedVariance(x, xhat mat.Matrix) (float64, error) {
	r2, err := RSquare(x, xhat)
	if err != nil {
		return 0, err
	}
	return 1 - r2, nil
}

// Compute returns both figures of merit for one reconstruction. It shares
// the residual between the two diagnostics, which matters when it is called
// once per candidate inside a selection loop.
func Compute(x, xhat mat.Matrix) (FiguresOfMerit, error) {
	res, err := Residual(x, xhat)
	if err != nil {
		return FiguresOfMerit{}, err
	}
	normX := mat.Norm(x, 2)
	if normX == 0 {
		return FiguresOfMerit{}, errors.NewValueError("metrics.Compute", "input matrix has zero norm")
	}
	normRes := mat.Norm(res, 2)
	return FiguresOfMerit{
		RSquare:     1 - (normRes*normRes)/(normX*normX),
		ResidualStd: popStdDense(res),
	}, nil
}

// popStdDense computes the population standard deviation over all entries.
func popStdDense(m *mat.Dense) float64 {
	r, c := m.Dims()
	n := float64(r * c)

	var mean float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			mean += m.At(i, j)
		}
	}
	mean /= n

	var ss float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := m.At(i, j) - mean
			ss += d * d
		}
	}
	return math.Sqrt(ss / n)
}

func sameDims(op string, a, b mat.Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ac == 0 {
		return errors.NewValueError(op, "empty matrix")
	}
	if ar != br {
		return errors.NewDimensionError(op, ar, br, 0)
	}
	if ac != bc {
		return errors.NewDimensionError(op, ac, bc, 1)
	}
	return nil
}
