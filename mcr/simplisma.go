// Package mcr implements multivariate curve resolution models that decompose
// a matrix of mixture spectra into pure-component contributions.
//
// The SIMPLISMA model performs SIMPLe-to-use Interactive Self-modeling
// Mixture Analysis following Windig, Chemometrics and Intelligent Laboratory
// Systems 36 (1997) 3-16: purest variables are extracted one at a time from
// determinant-based purity spectra, and the pure-component spectra are
// refitted by least squares after each selection.
package mcr

import (
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/core/model"
	"github.com/chemolab/specgo/dataset"
	"github.com/chemolab/specgo/preprocessing"

	gerrors "github.com/chemolab/specgo/pkg/errors"
	"github.com/chemolab/specgo/pkg/log"
)

// interactiveCap replaces the configured component count in interactive
// runs. It exists only so the worst-case matrices can be allocated up front;
// the operator's Finish command ends the run long before it is reached.
const interactiveCap = 100

// SIMPLISMA resolves pure-component spectra and concentration profiles from
// a matrix of mixture spectra (observations in rows, variables in columns).
//
// A model instance is configured at construction, fitted once with Fit, and
// queried through Transform, InverseTransform, Purity and StdDev. Instances
// are not safe for concurrent use.
type SIMPLISMA struct {
	state *model.StateManager

	interactive bool
	nComponents int
	tol         float64
	noise       float64
	verbose     bool
	rcond       float64
	commander   Commander
	logger      log.Logger

	// Fitted state. Matrices live in the stripped working space and are
	// truncated to the accepted component count.
	src         *dataset.SpectralMatrix
	rec         *dataset.MaskRecord
	xcoordsKept []float64
	c, st       *mat.Dense
	pt, s       *mat.Dense
	selIdx      []int
	selCoord    []float64
	termination string
	logText     string
}

var _ model.Decomposer = (*SIMPLISMA)(nil)

// NewSIMPLISMA creates a SIMPLISMA model. Configuration problems are
// reported here, before any matrix is allocated; a constructed model never
// fails mid-run on its parameters.
func NewSIMPLISMA(opts ...Option) (*SIMPLISMA, error) {
	s := &SIMPLISMA{
		state:       model.NewStateManager(),
		nComponents: 2,
		tol:         0.1,
		noise:       3,
		verbose:     true,
		rcond:       defaultRCond,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.nComponents < 2 {
		return nil, gerrors.NewConfigurationError("n_components",
			"'MA' in SIMPLISMA stands for Mixture Analysis; the number of pure compounds must be at least 2",
			s.nComponents)
	}
	if s.tol <= 0 {
		return nil, gerrors.NewConfigurationError("tol", "must be positive", s.tol)
	}
	if s.noise < 0 {
		return nil, gerrors.NewConfigurationError("noise", "must be non-negative", s.noise)
	}
	if s.rcond <= 0 {
		return nil, gerrors.NewConfigurationError("rcond", "must be positive", s.rcond)
	}

	if s.interactive {
		s.nComponents = interactiveCap
		if s.commander == nil {
			s.commander = NewConsolePrompter(os.Stdin, os.Stdout)
		}
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("mcr")
	}
	return s, nil
}

// Fit runs the purest-variable selection on X. When X is a
// *dataset.SpectralMatrix its mask, coordinates and metadata participate:
// fully-masked rows and columns are stripped before the analysis and
// restored on the outputs. Any other mat.Matrix is analysed as-is with
// integer coordinates.
//
// Negative intensities are reported as a NegativeValueWarning and the run
// continues. A failed Fit leaves the model unfitted.
func (s *SIMPLISMA) Fit(x mat.Matrix) (err error) {
	// gonum panics on malformed shapes; surface those as errors.
	defer gerrors.Recover(&err, "SIMPLISMA.Fit")

	src, ok := x.(*dataset.SpectralMatrix)
	if !ok {
		r, c := x.Dims()
		if r == 0 || c == 0 {
			return gerrors.NewModelError("SIMPLISMA.Fit", "empty data", gerrors.ErrEmptyData)
		}
		src = dataset.New(mat.DenseCopyOf(x))
	}

	work, rec, err := src.StripMask()
	if err != nil {
		return err
	}
	n, p := work.Dims()
	if n < 2 || p < 2 {
		return gerrors.NewDimensionError("SIMPLISMA.Fit", 2, min(n, p), axisOfSmaller(n, p))
	}

	if count, minVal := gerrors.CountNegatives(work); count > 0 {
		gerrors.Warn(gerrors.NewNegativeValueWarning("SIMPLISMA.Fit", count, minVal))
	}

	logger := s.logger.With(
		log.ModelNameKey, "SIMPLISMA",
		log.ObservationsKey, n,
		log.VariablesKey, p,
	)
	if s.verbose {
		logger.Info("starting analysis",
			log.OperationKey, log.OperationFit,
			log.NoisePercentKey, s.noise,
			log.TolKey, s.tol,
			log.InteractiveKey, s.interactive,
			log.MaskedRowsKey, rec.MaskedRows(),
			log.MaskedColumnsKey, rec.MaskedColumns(),
		)
	}

	scaler := preprocessing.NewNoiseScaler(s.noise)
	xscaled, err := scaler.FitTransform(work)
	if err != nil {
		return err
	}
	scorer := newPurityScorer(xscaled, scaler, s.nComponents)

	xcoords := rec.FilterColumns(src.XCoords)

	report := &Report{}
	report.Header(src.Name, s.noise, s.tol, s.nComponents, s.interactive)

	ic := newIterationController(work, xcoords, scorer,
		s.nComponents, s.tol, s.interactive, s.commander, s.rcond,
		s.verbose, logger, report)
	if err := ic.run(); err != nil {
		return err
	}

	k := ic.j
	s.src = src
	s.rec = rec
	s.xcoordsKept = xcoords
	s.c = mat.DenseCopyOf(ic.c.Slice(0, n, 0, k))
	s.st = mat.DenseCopyOf(ic.st.Slice(0, k, 0, p))
	s.pt = mat.DenseCopyOf(scorer.pt.Slice(0, k, 0, p))
	s.s = mat.DenseCopyOf(scorer.s.Slice(0, k, 0, p))
	s.selIdx = append([]int(nil), ic.selIdx[:k]...)
	s.selCoord = append([]float64(nil), ic.selCoord[:k]...)
	s.termination = ic.state.Termination()
	s.logText = report.String()

	s.state.SetDimensions(p, n)
	s.state.SetFitted()
	return nil
}

// Transform returns the concentration matrix C (observations × components)
// and the pure-compound spectra St (components × variables) of the fitted
// decomposition. Masked observations reappear as masked rows of C; masked
// variables as masked columns of St. Both carry the full run report in
// their Description.
func (s *SIMPLISMA) Transform() (C, St *dataset.SpectralMatrix, err error) {
	if !s.state.IsFitted() {
		return nil, nil, gerrors.NewNotFittedError("SIMPLISMA", "Transform")
	}

	C, err = s.restored(s.c, dataset.Rows, "Relative Concentrations",
		"Concentration/contribution matrix from SIMPLISMA:\n")
	if err != nil {
		return nil, nil, err
	}
	St, err = s.restored(s.st, dataset.Columns, "Pure compound spectra",
		"Pure compound spectra matrix from SIMPLISMA:\n")
	if err != nil {
		return nil, nil, err
	}
	return C, St, nil
}

// InverseTransform returns the reconstruction Xhat = C·St expanded to the
// shape of the fitted input, masked positions included.
func (s *SIMPLISMA) InverseTransform() (*dataset.SpectralMatrix, error) {
	if !s.state.IsFitted() {
		return nil, gerrors.NewNotFittedError("SIMPLISMA", "InverseTransform")
	}

	xhat, err := reconstruct(s.c, s.st)
	if err != nil {
		return nil, err
	}
	out, err := s.restored(xhat, dataset.Both, s.src.Name,
		"Dataset reconstructed by SIMPLISMA\n")
	if err != nil {
		return nil, err
	}
	out.Title = "X_hat: " + s.src.Title
	out.Units = s.src.Units
	return out, nil
}

// FitTransform fits the model on X and returns the two factor matrices.
func (s *SIMPLISMA) FitTransform(x mat.Matrix) (C, St *dataset.SpectralMatrix, err error) {
	if err := s.Fit(x); err != nil {
		return nil, nil, err
	}
	return s.Transform()
}

// Purity returns the purity spectra, one row per accepted component.
func (s *SIMPLISMA) Purity() (*dataset.SpectralMatrix, error) {
	if !s.state.IsFitted() {
		return nil, gerrors.NewNotFittedError("SIMPLISMA", "Purity")
	}
	return s.restored(s.pt, dataset.Columns, "Purity spectra",
		"Purity spectra from SIMPLISMA:\n")
}

// StdDev returns the weighted standard-deviation spectra, one row per
// accepted component.
func (s *SIMPLISMA) StdDev() (*dataset.SpectralMatrix, error) {
	if !s.state.IsFitted() {
		return nil, gerrors.NewNotFittedError("SIMPLISMA", "StdDev")
	}
	return s.restored(s.s, dataset.Columns, "Standard deviation spectra",
		"Standard deviation spectra matrix from SIMPLISMA:\n")
}

// Log returns the accumulated run report.
func (s *SIMPLISMA) Log() string {
	return s.logText
}

// NComponents returns the number of accepted pure compounds.
func (s *SIMPLISMA) NComponents() int {
	return len(s.selIdx)
}

// SelectedIndices returns the accepted purest-variable indices, in selection
// order. Indices refer to the columns of the stripped working matrix.
func (s *SIMPLISMA) SelectedIndices() []int {
	return append([]int(nil), s.selIdx...)
}

// SelectedCoordinates returns the variable-axis coordinates of the accepted
// purest variables, in selection order.
func (s *SIMPLISMA) SelectedCoordinates() []float64 {
	return append([]float64(nil), s.selCoord...)
}

// Termination reports why the selection loop stopped: CONVERGED,
// MAX_COMPONENTS or USER_STOPPED.
func (s *SIMPLISMA) Termination() string {
	return s.termination
}

// Components implements model.Decomposer over Transform.
func (s *SIMPLISMA) Components() (C, St mat.Matrix, err error) {
	c, st, err := s.Transform()
	if err != nil {
		return nil, nil, err
	}
	return c, st, nil
}

// Reconstruct implements model.Decomposer over InverseTransform.
func (s *SIMPLISMA) Reconstruct() (mat.Matrix, error) {
	out, err := s.InverseTransform()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetParams returns the model's hyperparameters.
func (s *SIMPLISMA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"interactive":  s.interactive,
		"n_components": s.nComponents,
		"tol":          s.tol,
		"noise":        s.noise,
		"verbose":      s.verbose,
		"rcond":        s.rcond,
	}
}

// restored expands a result matrix back to the original masked shape along
// axis and wraps it as a dataset with the run report appended.
func (s *SIMPLISMA) restored(d *mat.Dense, axis dataset.Axis, name, descPrefix string) (*dataset.SpectralMatrix, error) {
	full, mask, err := s.rec.Restore(d, axis)
	if err != nil {
		return nil, err
	}

	out := dataset.New(full)
	out.Mask = mask
	out.Name = name
	out.Description = descPrefix + s.logText

	k := len(s.selIdx)
	components := make([]float64, k)
	for i := range components {
		components[i] = float64(i)
	}

	switch axis {
	case dataset.Rows:
		// Observations × components.
		out.YCoords = append([]float64(nil), s.src.YCoords...)
		out.YTitle = s.src.YTitle
		out.XCoords = components
		out.XTitle = "# pure compound"
	case dataset.Columns:
		// Components × variables.
		out.XCoords = append([]float64(nil), s.src.XCoords...)
		out.XTitle = s.src.XTitle
		out.YCoords = components
		out.YTitle = "# pure compound"
	case dataset.Both:
		out.XCoords = append([]float64(nil), s.src.XCoords...)
		out.XTitle = s.src.XTitle
		out.YCoords = append([]float64(nil), s.src.YCoords...)
		out.YTitle = s.src.YTitle
	}
	return out, nil
}

func axisOfSmaller(n, p int) int {
	if n <= p {
		return 0
	}
	return 1
}
