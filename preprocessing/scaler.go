// Package preprocessing provides data scaling for self-modeling mixture
// analysis.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/chemolab/specgo/core/model"
	"github.com/chemolab/specgo/pkg/errors"
)

// NoiseScaler normalizes each variable by a noise-corrected magnitude.
//
// For every column j it computes the mean mu_j and the population standard
// deviation sigma_j, derives the noise offset
//
//	alpha = noise/100 * max_j(mu_j)
//
// and scales the column by sqrt(mu_j^2 + (sigma_j + alpha)^2). Columns scaled
// this way have comparable weight in the correlation-around-the-origin matrix
// regardless of their absolute intensity, while the offset keeps
// low-intensity noise variables from being inflated.
type NoiseScaler struct {
	model.BaseEstimator

	// NoisePercent is the noise correction factor in percent of the
	// largest column mean.
	NoisePercent float64

	// Mean holds the column means.
	Mean []float64

	// Std holds the column population standard deviations.
	Std []float64

	// Scale holds the per-column divisors sqrt(mean^2 + (std + alpha)^2).
	Scale []float64

	// Alpha is the computed noise offset.
	Alpha float64

	// NVariables is the number of variables seen during Fit.
	NVariables int
}

// NewNoiseScaler creates a NoiseScaler with the given noise correction
// factor in percent.
//
// Example:
//
//	scaler := preprocessing.NewNoiseScaler(3)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewNoiseScaler(noisePercent float64) *NoiseScaler {
	return &NoiseScaler{
		NoisePercent: noisePercent,
	}
}

// NewNoiseScalerDefault creates a NoiseScaler with the conventional 3%
// noise correction.
func NewNoiseScalerDefault() *NoiseScaler {
	return NewNoiseScaler(3)
}

// Fit computes the column statistics and scaling factors from X.
func (s *NoiseScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("NoiseScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if s.NoisePercent < 0 {
		return errors.NewConfigurationError("noise", "must be non-negative", s.NoisePercent)
	}

	s.NVariables = c
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.PopStdDev(col, nil)
	}

	s.Alpha = s.NoisePercent / 100 * floats.Max(s.Mean)

	for j := 0; j < c; j++ {
		s.Scale[j] = math.Hypot(s.Mean[j], s.Std[j]+s.Alpha)
		// A scale of zero only happens for an all-zero column with zero
		// noise offset; leave such columns untouched.
		if s.Scale[j] < 1e-12 {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform divides every column of X by its scaling factor.
func (s *NoiseScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("NoiseScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NVariables {
		return nil, errors.NewDimensionError("NoiseScaler.Transform", s.NVariables, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits the scaler on X and returns the scaled matrix.
func (s *NoiseScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform multiplies every column of X by its scaling factor,
// undoing Transform.
func (s *NoiseScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("NoiseScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NVariables {
		return nil, errors.NewDimensionError("NoiseScaler.InverseTransform", s.NVariables, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j])
		}
	}

	return result, nil
}

// GetParams returns the scaler's parameters.
func (s *NoiseScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"noise": s.NoisePercent,
	}
}

// String returns a readable representation of the scaler.
func (s *NoiseScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("NoiseScaler(noise=%.1f%%)", s.NoisePercent)
	}
	return fmt.Sprintf("NoiseScaler(noise=%.1f%%, n_variables=%d, alpha=%.4g)",
		s.NoisePercent, s.NVariables, s.Alpha)
}
