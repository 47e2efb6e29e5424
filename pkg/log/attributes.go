// Standard attribute keys for SpecGo analysis operations.
//
// This file contains predefined attribute keys that provide consistency
// across all logging in SpecGo. Using these standard keys enables log
// analysis and filtering across decomposition runs.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Selection and Reconstruction Metrics
//   - Performance
//   - Error Context
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.observations") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of analysis model.
	// Examples: "SIMPLISMA", "NoiseScaler"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	// Useful when several runs of the same model execute in one process.
	// Examples: "simplisma-001", UUID strings
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the analysis operation being performed.
	// Standard values: "fit", "transform", "inverse_transform", "fit_transform"
	OperationKey = "analysis.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "mcr", "preprocessing", "dataset"
	ComponentKey = "analysis.component"

	// PhaseKey indicates the phase of a decomposition run.
	// Examples: "selection", "regression", "restore"
	PhaseKey = "analysis.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure of the data being processed.
const (
	// ObservationsKey indicates the number of observations (spectra, rows).
	ObservationsKey = "data.observations"

	// VariablesKey indicates the number of variables (wavelengths, columns).
	VariablesKey = "data.variables"

	// ComponentsKey indicates the number of pure components resolved or requested.
	ComponentsKey = "data.components"

	// MaskedRowsKey indicates how many fully-masked rows were stripped before analysis.
	MaskedRowsKey = "data.masked_rows"

	// MaskedColumnsKey indicates how many fully-masked columns were stripped before analysis.
	MaskedColumnsKey = "data.masked_columns"
)

// Selection and Reconstruction Metrics
// These attributes capture the figures of merit tracked during a run.
const (
	// IterationKey records the current component index during selection.
	IterationKey = "selection.iteration"

	// PurestIndexKey records the variable index selected as purest.
	PurestIndexKey = "selection.purest_index"

	// PurestCoordinateKey records the axis coordinate of the purest variable.
	PurestCoordinateKey = "selection.purest_coordinate"

	// R2ScoreKey records the cumulative fraction of explained variance.
	// Range typically (-inf, 1.0], with 1.0 being perfect reconstruction.
	R2ScoreKey = "metrics.rsquare"

	// ResidualStdKey records the standard deviation of the reconstruction residuals.
	ResidualStdKey = "metrics.residual_std"

	// UnexplainedVarianceKey records 1 - rsquare, the termination quantity.
	UnexplainedVarianceKey = "metrics.unexplained_variance"

	// TerminationKey records why the selection loop stopped.
	// Standard values: "CONVERGED", "MAX_COMPONENTS", "USER_STOPPED"
	TerminationKey = "selection.termination"
)

// Analysis Parameters
// These attributes capture the run configuration for reproducibility.
const (
	// NoisePercentKey records the noise correction factor in percent.
	NoisePercentKey = "params.noise_percent"

	// TolKey records the convergence tolerance on unexplained variance, in percent.
	TolKey = "params.tol"

	// InteractiveKey records whether the run accepts operator commands.
	InteractiveKey = "params.interactive"
)

// Performance
// These attributes capture timing information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "MASK_SHAPE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ConfigurationError", "MaskShapeError", "DimensionError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging functions.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "Check input data shape", "Lower n_components"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard analysis operations
	OperationFit              = "fit"
	OperationTransform        = "transform"
	OperationInverseTransform = "inverse_transform"
	OperationFitTransform     = "fit_transform"

	// Standard run phases
	PhaseSelection  = "selection"
	PhaseRegression = "regression"
	PhaseRestore    = "restore"

	// Standard error codes
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorMaskShape         = "MASK_SHAPE"

	// Standard termination reasons
	TerminationConverged     = "CONVERGED"
	TerminationMaxComponents = "MAX_COMPONENTS"
	TerminationUserStopped   = "USER_STOPPED"
)
