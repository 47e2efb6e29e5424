// Package model provides the estimator plumbing shared by all SpecGo
// analysis models: the fitted-state base, the transformer interfaces, and a
// thread-safe state manager for models built by composition.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for models trained on a single observation matrix.
type Fitter interface {
	// Fit learns the model parameters from the observation matrix X.
	Fit(X mat.Matrix) error
}

// Decomposer is the interface for bilinear decomposition models that factor
// a fitted observation matrix X into a concentration matrix C and a
// component-spectra matrix St such that X ≈ C·St.
type Decomposer interface {
	Fitter

	// Components returns the concentration and component-spectra factors
	// of the fitted decomposition.
	Components() (C, St mat.Matrix, err error)

	// Reconstruct returns the fitted approximation C·St of the input.
	Reconstruct() (mat.Matrix, error)

	// NComponents returns the number of resolved components.
	NComponents() int
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
