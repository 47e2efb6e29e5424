// Package errors provides the error and warning system used across SpecGo.
// It mirrors the split found in exploratory chemometrics practice: structural
// problems (bad configuration, wrong dimensions, malformed masks) are returned
// as errors and abort a run before any allocation, while numerical anomalies
// (negative intensities, re-selected variables, ill-conditioned fits) are
// emitted as warnings and the analysis continues with best-effort results.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler writes to the standard logger.
		log.Printf("SpecGo-Warning: %v\n", w)
	}
	// zerolog sink, installed lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler. Analyses never
// abort on numerical warnings, so this is the single point where callers
// decide to collect, silence, or escalate them.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. It is kept
// separate from SetWarningHandler so pkg/log can register itself without an
// import cycle.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog sink is installed it takes precedence;
// otherwise the plain handler is used.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types (non-fatal)
//
// ===========================================================================

// NegativeValueWarning is emitted when an input matrix contains negative
// values. Self-modeling mixture analysis assumes non-negative intensities,
// so the run proceeds but the purity spectra may be distorted.
type NegativeValueWarning struct {
	Op    string
	Count int     // number of negative entries found
	Min   float64 // most negative value
}

func (w *NegativeValueWarning) Error() string {
	return fmt.Sprintf("specgo: %s: input contains %d negative value(s) (min %.6g); "+
		"purity-based mixture analysis assumes non-negative intensities", w.Op, w.Count, w.Min)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *NegativeValueWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("count", w.Count).
		Float64("min", w.Min).
		Str("type", "NegativeValueWarning")
}

// NewNegativeValueWarning creates a new NegativeValueWarning.
func NewNegativeValueWarning(op string, count int, min float64) *NegativeValueWarning {
	return &NegativeValueWarning{Op: op, Count: count, Min: min}
}

// ReselectionWarning is emitted when the purity argmax lands on a variable
// already selected in an earlier iteration. The determinant weight of such a
// variable is degenerate and the duplicate component adds no new information.
type ReselectionWarning struct {
	Component  int // 1-based number of the component being selected
	Index      int // re-selected variable index
	Coordinate float64
}

func (w *ReselectionWarning) Error() string {
	return fmt.Sprintf("specgo: purest variable #%d re-selects index %d (coordinate %.6g) already chosen earlier; "+
		"components beyond this point are degenerate", w.Component, w.Index, w.Coordinate)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *ReselectionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("component", w.Component).
		Int("index", w.Index).
		Float64("coordinate", w.Coordinate).
		Str("type", "ReselectionWarning")
}

// NewReselectionWarning creates a new ReselectionWarning.
func NewReselectionWarning(component, index int, coordinate float64) *ReselectionWarning {
	return &ReselectionWarning{Component: component, Index: index, Coordinate: coordinate}
}

// IllConditionedWarning is emitted when a least-squares system is rank
// deficient and the solver falls back to the minimum-norm solution.
type IllConditionedWarning struct {
	Op    string
	Rank  int // effective rank after rcond filtering
	Cols  int // expected full rank
	RCond float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("specgo: %s: least-squares system is rank deficient (rank %d < %d, rcond %.3g); "+
		"using the minimum-norm solution", w.Op, w.Rank, w.Cols, w.RCond)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("rank", w.Rank).
		Int("full_rank", w.Cols).
		Float64("rcond", w.RCond).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning creates a new IllConditionedWarning.
func NewIllConditionedWarning(op string, rank, cols int, rcond float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Rank: rank, Cols: cols, RCond: rcond}
}

// ===========================================================================
//
//	Structured error types (fatal)
//
// ===========================================================================

// NotFittedError is returned when Transform, InverseTransform or another
// post-fit method is called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("specgo: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when an input matrix has the wrong shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for observations (rows), 1 for variables (columns)
}

func (e *DimensionError) Error() string {
	axisName := "variables"
	if e.Axis == 0 {
		axisName = "observations"
	}
	return fmt.Sprintf("specgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "variables"
	if e.Axis == 0 {
		axisName = "observations"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ConfigurationError is returned when a constructor or configuration loader
// receives an invalid parameter. It is always raised before any matrix is
// allocated, never mid-run.
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("specgo: invalid configuration parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace attached.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// MaskShapeError is returned when a dataset mask is not expressible as a
// union of fully-masked rows and fully-masked columns. An element-wise mask
// cannot be stripped without corrupting the matrix layout, so it is rejected
// before any numerical work starts.
type MaskShapeError struct {
	Op  string
	Row int // first offending cell
	Col int
}

func (e *MaskShapeError) Error() string {
	return fmt.Sprintf("specgo: %s: mask is not aligned to whole rows/columns (first partial cell at [%d,%d]); "+
		"only fully-masked rows or columns can be stripped", e.Op, e.Row, e.Col)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *MaskShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("row", e.Row).
		Int("col", e.Col).
		Str("type", "MaskShapeError")
}

// NewMaskShapeError creates a MaskShapeError with a stack trace attached.
func NewMaskShapeError(op string, row, col int) error {
	err := &MaskShapeError{Op: op, Row: row, Col: col}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is invalid for an operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("specgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error raised by an analysis model.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("specgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("specgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError reports NaN or Inf values produced by a numeric
// operation. It carries up to five of the offending values for context.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Iteration int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("specgo: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace attached.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix is passed to a model.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a matrix factorization fails outright.
	ErrSingularMatrix = New("singular matrix")
)
