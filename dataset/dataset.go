// Package dataset provides the spectral data container used by the analysis
// models: a dense observation matrix with named coordinate axes and an
// optional element mask. Masked cells are excluded from analysis by
// stripping fully-masked rows and columns before fitting and re-inserting
// them into the results afterwards.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// SpectralMatrix is a two-dimensional spectral dataset. Rows are
// observations (spectra recorded over time, temperature, or mixture
// composition) and columns are variables (wavelengths, wavenumbers,
// chemical shifts).
//
// The zero value is not usable; construct instances with New.
type SpectralMatrix struct {
	// Data holds the intensities, one observation per row.
	Data *mat.Dense

	// Mask flags masked cells in row-major order (length rows*cols).
	// A nil mask means no cell is masked.
	Mask []bool

	// XCoords holds the variable-axis coordinates (length cols).
	XCoords []float64

	// YCoords holds the observation-axis coordinates (length rows).
	YCoords []float64

	// Name identifies the dataset in logs and reports.
	Name string

	// Title describes the intensity quantity, e.g. "absorbance".
	Title string

	// XTitle and YTitle describe the axes, e.g. "wavenumber / cm^-1"
	// and "acquisition time / s".
	XTitle string
	YTitle string

	// Units holds the intensity units, e.g. "a.u.".
	Units string

	// Description carries free-form provenance. Analysis models append
	// their run logs here.
	Description string
}

// New creates a SpectralMatrix around data. Coordinates default to the
// zero-based indices of each axis.
func New(data *mat.Dense) *SpectralMatrix {
	rows, cols := data.Dims()
	x := make([]float64, cols)
	for j := range x {
		x[j] = float64(j)
	}
	y := make([]float64, rows)
	for i := range y {
		y[i] = float64(i)
	}
	return &SpectralMatrix{
		Data:    data,
		XCoords: x,
		YCoords: y,
	}
}

// Dims returns the matrix dimensions. Together with At and T this makes
// SpectralMatrix usable anywhere a mat.Matrix is accepted.
func (s *SpectralMatrix) Dims() (r, c int) {
	return s.Data.Dims()
}

// At returns the intensity at (i, j). Masked cells return their stored
// value; use IsMasked to test the flag.
func (s *SpectralMatrix) At(i, j int) float64 {
	return s.Data.At(i, j)
}

// T returns the transpose view of the data.
func (s *SpectralMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: s.Data}
}

// IsMasked reports whether cell (i, j) is masked.
func (s *SpectralMatrix) IsMasked(i, j int) bool {
	if s.Mask == nil {
		return false
	}
	_, cols := s.Data.Dims()
	return s.Mask[i*cols+j]
}

// HasMask reports whether any cell is masked.
func (s *SpectralMatrix) HasMask() bool {
	for _, m := range s.Mask {
		if m {
			return true
		}
	}
	return false
}

// MaskRows marks entire observation rows as masked.
func (s *SpectralMatrix) MaskRows(rows ...int) {
	n, p := s.Data.Dims()
	s.ensureMask(n, p)
	for _, i := range rows {
		for j := 0; j < p; j++ {
			s.Mask[i*p+j] = true
		}
	}
}

// MaskColumns marks entire variable columns as masked.
func (s *SpectralMatrix) MaskColumns(cols ...int) {
	n, p := s.Data.Dims()
	s.ensureMask(n, p)
	for _, j := range cols {
		for i := 0; i < n; i++ {
			s.Mask[i*p+j] = true
		}
	}
}

func (s *SpectralMatrix) ensureMask(n, p int) {
	if s.Mask == nil {
		s.Mask = make([]bool, n*p)
	}
}

// Validate checks that the coordinate and mask lengths agree with the data
// dimensions.
func (s *SpectralMatrix) Validate() error {
	if s.Data == nil {
		return gerrors.Wrap(gerrors.ErrEmptyData, "dataset: no data matrix")
	}
	n, p := s.Data.Dims()
	if len(s.XCoords) != p {
		return gerrors.NewDimensionError("dataset.Validate", p, len(s.XCoords), 1)
	}
	if len(s.YCoords) != n {
		return gerrors.NewDimensionError("dataset.Validate", n, len(s.YCoords), 0)
	}
	if s.Mask != nil && len(s.Mask) != n*p {
		return gerrors.NewDimensionError("dataset.Validate", n*p, len(s.Mask), 0)
	}
	return nil
}

// Copy returns a deep copy of the dataset.
func (s *SpectralMatrix) Copy() *SpectralMatrix {
	out := &SpectralMatrix{
		Name:        s.Name,
		Title:       s.Title,
		XTitle:      s.XTitle,
		YTitle:      s.YTitle,
		Units:       s.Units,
		Description: s.Description,
	}
	if s.Data != nil {
		out.Data = mat.DenseCopyOf(s.Data)
	}
	if s.Mask != nil {
		out.Mask = append([]bool(nil), s.Mask...)
	}
	out.XCoords = append([]float64(nil), s.XCoords...)
	out.YCoords = append([]float64(nil), s.YCoords...)
	return out
}
