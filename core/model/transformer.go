package model

import "gonum.org/v1/gonum/mat"

// Transformer is the interface for data transformations.
type Transformer interface {
	// Fit learns the parameters needed for the transformation.
	Fit(X mat.Matrix) error

	// Transform applies the transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit and Transform in a single call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer is implemented by transformations that can map
// transformed data back to the original space.
type InverseTransformer interface {
	// InverseTransform maps transformed data back to the original space.
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
