package mcr

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/core/parallel"
	"github.com/chemolab/specgo/preprocessing"
)

// detSweepThreshold is the variable count below which the determinant sweep
// runs sequentially.
const detSweepThreshold = 256

// purityScorer computes the per-variable purity and weight rows of each
// iteration. Everything it reads is fixed at construction: the column
// statistics of the input and the dispersion matrix of the scaled data. The
// scores of iteration j therefore depend only on the indices selected in the
// previous iterations, never on randomness or on C and St.
type purityScorer struct {
	// p is the base purity sigma/(mu+alpha) per variable.
	p []float64

	// sigma is the per-variable population standard deviation.
	sigma []float64

	// lambda is sqrt(mu^2 + sigma^2) per variable.
	lambda []float64

	// scale is the noise-corrected magnitude sqrt(mu^2 + (sigma+alpha)^2).
	scale []float64

	// coo is the dispersion matrix (1/n)·Xscaledᵀ·Xscaled over variables.
	coo *mat.SymDense

	// w, s, pt hold one row per iteration: the determinant weights, the
	// weighted standard deviations, and the purity values. Rows beyond the
	// current iteration stay zero.
	w, s, pt *mat.Dense
}

// newPurityScorer builds the scorer from a fitted NoiseScaler and the scaled
// working matrix. nPC is the worst-case component count and fixes the number
// of rows of the weight matrices.
func newPurityScorer(xscaled mat.Matrix, scaler *preprocessing.NoiseScaler, nPC int) *purityScorer {
	n, p := xscaled.Dims()

	ps := &purityScorer{
		p:      make([]float64, p),
		sigma:  append([]float64(nil), scaler.Std...),
		lambda: make([]float64, p),
		scale:  append([]float64(nil), scaler.Scale...),
		w:      mat.NewDense(nPC, p, nil),
		s:      mat.NewDense(nPC, p, nil),
		pt:     mat.NewDense(nPC, p, nil),
	}
	for j := 0; j < p; j++ {
		mu, sigma := scaler.Mean[j], scaler.Std[j]
		ps.p[j] = sigma / (mu + scaler.Alpha)
		ps.lambda[j] = math.Hypot(mu, sigma)
	}

	// COO = (1/n)·Xscaledᵀ·Xscaled, symmetric by construction.
	coo := mat.NewSymDense(p, nil)
	inv := 1 / float64(n)
	for a := 0; a < p; a++ {
		for b := a; b < p; b++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += xscaled.At(i, a) * xscaled.At(i, b)
			}
			coo.SetSym(a, b, sum*inv)
		}
	}
	ps.coo = coo

	return ps
}

// scoreFirst fills row 0 of the weight and purity matrices from the global
// statistics and returns the index of the purest variable. Ties resolve to
// the first maximal index.
func (ps *purityScorer) scoreFirst() int {
	_, p := ps.w.Dims()
	for i := 0; i < p; i++ {
		wi := (ps.lambda[i] * ps.lambda[i]) / (ps.scale[i] * ps.scale[i])
		ps.w.Set(0, i, wi)
		ps.s.Set(0, i, ps.sigma[i]*wi)
		ps.pt.Set(0, i, ps.p[i]*wi)
	}
	return floats.MaxIdx(ps.pt.RawRowView(0))
}

// score fills row j (j ≥ 1) of the weight and purity matrices and returns
// the index of the j-th purest variable. The weight of candidate i is the
// determinant of the (j+1)×(j+1) dispersion sub-matrix indexed by {i} ∪
// selected; a candidate correlated with the already-selected variables makes
// the sub-matrix near singular and its weight collapses toward zero.
func (ps *purityScorer) score(j int, selected []int) int {
	_, p := ps.w.Dims()

	parallel.ParallelizeWithThreshold(p, detSweepThreshold, func(start, end int) {
		idx := make([]int, j+1)
		sub := mat.NewDense(j+1, j+1, nil)
		for i := start; i < end; i++ {
			idx[0] = i
			copy(idx[1:], selected[:j])
			for r := 0; r <= j; r++ {
				for c := 0; c <= j; c++ {
					sub.Set(r, c, ps.coo.At(idx[r], idx[c]))
				}
			}
			ps.w.Set(j, i, mat.Det(sub))
		}
	})

	for i := 0; i < p; i++ {
		wi := ps.w.At(j, i)
		ps.s.Set(j, i, ps.sigma[i]*wi)
		ps.pt.Set(j, i, ps.p[i]*wi)
	}
	return floats.MaxIdx(ps.pt.RawRowView(j))
}
