package mcr

import (
	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/metrics"
	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// defaultRCond is the relative singular-value cutoff of the least-squares
// solver. Singular values below rcond times the largest one are treated as
// zero, which yields the minimum-norm solution for rank-deficient systems.
const defaultRCond = 1e-15

// lstsq solves A·X = B in the least-squares sense through the thin SVD of A,
// dropping singular values below rcond·σmax. A rank-deficient A does not
// fail; it emits an IllConditionedWarning and the minimum-norm solution is
// returned. A is (n×k), B is (n×p), the result is (k×p).
func lstsq(a, b mat.Matrix, rcond float64, op string) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bp := b.Dims()
	if ar != br {
		return nil, gerrors.NewDimensionError(op, ar, br, 0)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, gerrors.Wrapf(gerrors.ErrSingularMatrix, "%s: SVD did not converge", op)
	}

	sv := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Effective rank after the rcond filter.
	rank := 0
	if len(sv) > 0 {
		cutoff := rcond * sv[0]
		for _, s := range sv {
			if s > cutoff {
				rank++
			}
		}
	}
	if rank < ac {
		gerrors.Warn(gerrors.NewIllConditionedWarning(op, rank, ac, rcond))
	}

	// X = V · S⁺ · Uᵀ · B, using only the rank singular triplets.
	utb := mat.NewDense(rank, bp, nil)
	for r := 0; r < rank; r++ {
		for c := 0; c < bp; c++ {
			var sum float64
			for i := 0; i < ar; i++ {
				sum += u.At(i, r) * b.At(i, c)
			}
			utb.Set(r, c, sum/sv[r])
		}
	}

	x := mat.NewDense(ac, bp, nil)
	for i := 0; i < ac; i++ {
		for c := 0; c < bp; c++ {
			var sum float64
			for r := 0; r < rank; r++ {
				sum += v.At(i, r) * utb.At(r, c)
			}
			x.Set(i, c, sum)
		}
	}
	return x, nil
}

// reconstruct returns the bilinear product C·St.
func reconstruct(c, st mat.Matrix) (*mat.Dense, error) {
	cr, cc := c.Dims()
	sr, sc := st.Dims()
	if cc != sr {
		return nil, gerrors.NewDimensionError("mcr.reconstruct", cc, sr, 0)
	}
	out := mat.NewDense(cr, sc, nil)
	out.Mul(c, st)
	return out, nil
}

// figuresOfMerit evaluates the quality of the decomposition after the j-th
// component is assigned. It copies the input column at the j-th selected
// variable into C, refits the first j+1 spectral profiles by least squares
// against X (all j+1 rows of St are overwritten, not appended), reconstructs
// Xhat from the fitted block, and returns the diagnostics of the residual.
func figuresOfMerit(x *mat.Dense, selected []int, c, st *mat.Dense, j int, rcond float64) (metrics.FiguresOfMerit, error) {
	n, p := x.Dims()

	for i := 0; i < n; i++ {
		c.Set(i, j, x.At(i, selected[j]))
	}

	cBlock := c.Slice(0, n, 0, j+1)
	stFit, err := lstsq(cBlock, x, rcond, "mcr.figuresOfMerit")
	if err != nil {
		return metrics.FiguresOfMerit{}, err
	}
	for r := 0; r <= j; r++ {
		for col := 0; col < p; col++ {
			st.Set(r, col, stFit.At(r, col))
		}
	}

	xhat, err := reconstruct(cBlock, st.Slice(0, j+1, 0, p))
	if err != nil {
		return metrics.FiguresOfMerit{}, err
	}
	return metrics.Compute(x, xhat)
}
