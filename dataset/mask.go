package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// Axis selects which axes of a result matrix carry masked positions when
// the mask is restored after analysis.
type Axis int

const (
	// Rows restores masked positions along the observation axis only.
	// Used for results with one row per observation, such as
	// concentration profiles.
	Rows Axis = iota

	// Columns restores masked positions along the variable axis only.
	// Used for results with one column per variable, such as component
	// spectra.
	Columns

	// Both restores masked positions along both axes. Used for results
	// with the full shape of the input, such as reconstructed data.
	Both
)

// MaskRecord remembers which rows and columns were stripped from a dataset
// so results computed on the reduced matrix can be expanded back to the
// original shape.
type MaskRecord struct {
	rowMask []bool // true where the original row was fully masked
	colMask []bool // true where the original column was fully masked

	keptRows int
	keptCols int
}

// StripMask validates the mask and returns a copy of the data with all
// fully-masked rows and columns removed, together with the record needed to
// restore results. The receiver is not modified.
//
// A mask is only valid when every masked cell belongs to a fully-masked row
// or a fully-masked column; anything else cannot be stripped without
// corrupting the matrix layout and returns a MaskShapeError. Stripping
// everything away returns ErrEmptyData.
func (s *SpectralMatrix) StripMask() (*mat.Dense, *MaskRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	n, p := s.Data.Dims()

	rec := &MaskRecord{
		rowMask: make([]bool, n),
		colMask: make([]bool, p),
	}

	if !s.HasMask() {
		rec.keptRows, rec.keptCols = n, p
		return mat.DenseCopyOf(s.Data), rec, nil
	}

	for i := 0; i < n; i++ {
		all := true
		for j := 0; j < p; j++ {
			if !s.Mask[i*p+j] {
				all = false
				break
			}
		}
		rec.rowMask[i] = all
	}
	for j := 0; j < p; j++ {
		all := true
		for i := 0; i < n; i++ {
			if !s.Mask[i*p+j] {
				all = false
				break
			}
		}
		rec.colMask[j] = all
	}

	// Every masked cell must be covered by a stripped row or column.
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			if s.Mask[i*p+j] && !rec.rowMask[i] && !rec.colMask[j] {
				return nil, nil, gerrors.NewMaskShapeError("StripMask", i, j)
			}
		}
	}

	for _, m := range rec.rowMask {
		if !m {
			rec.keptRows++
		}
	}
	for _, m := range rec.colMask {
		if !m {
			rec.keptCols++
		}
	}
	if rec.keptRows == 0 || rec.keptCols == 0 {
		return nil, nil, gerrors.Wrap(gerrors.ErrEmptyData, "StripMask: mask removes the entire dataset")
	}

	out := mat.NewDense(rec.keptRows, rec.keptCols, nil)
	oi := 0
	for i := 0; i < n; i++ {
		if rec.rowMask[i] {
			continue
		}
		oj := 0
		for j := 0; j < p; j++ {
			if rec.colMask[j] {
				continue
			}
			out.Set(oi, oj, s.Data.At(i, j))
			oj++
		}
		oi++
	}
	return out, rec, nil
}

// OriginalDims returns the shape of the dataset before stripping.
func (r *MaskRecord) OriginalDims() (rows, cols int) {
	return len(r.rowMask), len(r.colMask)
}

// KeptDims returns the shape of the stripped working matrix.
func (r *MaskRecord) KeptDims() (rows, cols int) {
	return r.keptRows, r.keptCols
}

// MaskedRows returns the number of stripped observation rows.
func (r *MaskRecord) MaskedRows() int {
	return len(r.rowMask) - r.keptRows
}

// MaskedColumns returns the number of stripped variable columns.
func (r *MaskRecord) MaskedColumns() int {
	return len(r.colMask) - r.keptCols
}

// FilterRows returns the entries of v at kept observation positions.
// v must have the original row count.
func (r *MaskRecord) FilterRows(v []float64) []float64 {
	return filterKept(v, r.rowMask, r.keptRows)
}

// FilterColumns returns the entries of v at kept variable positions.
// v must have the original column count.
func (r *MaskRecord) FilterColumns(v []float64) []float64 {
	return filterKept(v, r.colMask, r.keptCols)
}

func filterKept(v []float64, mask []bool, kept int) []float64 {
	if len(v) != len(mask) {
		return v
	}
	out := make([]float64, 0, kept)
	for i, m := range mask {
		if !m {
			out = append(out, v[i])
		}
	}
	return out
}

// Restore expands a result matrix computed on the stripped data back to the
// original shape along the given axis. Restored positions are filled with
// NaN and flagged in the returned row-major mask. Axes not selected keep
// the dimensions of D unchanged, so results whose other axis is the
// component count pass through untouched.
func (r *MaskRecord) Restore(D *mat.Dense, axis Axis) (*mat.Dense, []bool, error) {
	dr, dc := D.Dims()

	outRows, outCols := dr, dc
	restoreRows := axis == Rows || axis == Both
	restoreCols := axis == Columns || axis == Both

	if restoreRows {
		if dr != r.keptRows {
			return nil, nil, gerrors.NewDimensionError("MaskRecord.Restore", r.keptRows, dr, 0)
		}
		outRows = len(r.rowMask)
	}
	if restoreCols {
		if dc != r.keptCols {
			return nil, nil, gerrors.NewDimensionError("MaskRecord.Restore", r.keptCols, dc, 1)
		}
		outCols = len(r.colMask)
	}

	out := mat.NewDense(outRows, outCols, nil)
	mask := make([]bool, outRows*outCols)

	si := 0
	for i := 0; i < outRows; i++ {
		if restoreRows && r.rowMask[i] {
			for j := 0; j < outCols; j++ {
				out.Set(i, j, math.NaN())
				mask[i*outCols+j] = true
			}
			continue
		}
		sj := 0
		for j := 0; j < outCols; j++ {
			if restoreCols && r.colMask[j] {
				out.Set(i, j, math.NaN())
				mask[i*outCols+j] = true
				continue
			}
			out.Set(i, j, D.At(si, sj))
			sj++
		}
		si++
	}
	return out, mask, nil
}
