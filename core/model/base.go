package model

// EstimatorState represents the training state of a model.
type EstimatorState int

const (
	// NotFitted is the state of a model before Fit has run.
	NotFitted EstimatorState = iota
	// Fitted is the state of a model after a successful Fit.
	Fitted
)

// BaseEstimator is the embedded base for all analysis models.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its initial state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
