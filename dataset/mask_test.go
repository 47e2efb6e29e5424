package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// fixture returns a 4x5 dataset with values 1..20 and a mask covering row 1
// and column 3.
func fixture() *SpectralMatrix {
	data := make([]float64, 20)
	for i := range data {
		data[i] = float64(i + 1)
	}
	sm := New(mat.NewDense(4, 5, data))
	sm.MaskRows(1)
	sm.MaskColumns(3)
	return sm
}

func TestStripMaskNoMask(t *testing.T) {
	sm := New(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	stripped, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}
	if r, c := stripped.Dims(); r != 2 || c != 2 {
		t.Fatalf("stripped dims = (%d, %d), want (2, 2)", r, c)
	}
	if rec.MaskedRows() != 0 || rec.MaskedColumns() != 0 {
		t.Errorf("masked counts = (%d, %d), want (0, 0)", rec.MaskedRows(), rec.MaskedColumns())
	}

	// The stripped matrix must be a copy.
	stripped.Set(0, 0, 42)
	if sm.Data.At(0, 0) != 1 {
		t.Error("StripMask returned a view of the original data")
	}
}

func TestStripMaskRemovesRowsAndColumns(t *testing.T) {
	sm := fixture()
	stripped, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	if r, c := stripped.Dims(); r != 3 || c != 4 {
		t.Fatalf("stripped dims = (%d, %d), want (3, 4)", r, c)
	}
	if rec.MaskedRows() != 1 || rec.MaskedColumns() != 1 {
		t.Errorf("masked counts = (%d, %d), want (1, 1)", rec.MaskedRows(), rec.MaskedColumns())
	}

	// Row 1 (6..10) and column 3 (4, 9, 14, 19) are gone.
	want := [][]float64{
		{1, 2, 3, 5},
		{11, 12, 13, 15},
		{16, 17, 18, 20},
	}
	for i, row := range want {
		for j, v := range row {
			if got := stripped.At(i, j); got != v {
				t.Errorf("stripped[%d,%d] = %v, want %v", i, j, got, v)
			}
		}
	}
}

func TestStripMaskPartialMaskRejected(t *testing.T) {
	tests := []struct {
		name             string
		mask             func(*SpectralMatrix)
		wantRow, wantCol int
	}{
		{
			name: "single cell",
			mask: func(s *SpectralMatrix) {
				s.ensureMask(3, 3)
				s.Mask[0] = true // cell (0,0)
			},
			wantRow: 0, wantCol: 0,
		},
		{
			name: "full row plus stray cell",
			mask: func(s *SpectralMatrix) {
				s.MaskRows(1)
				s.Mask[2*3+2] = true // cell (2,2)
			},
			wantRow: 2, wantCol: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := New(mat.NewDense(3, 3, nil))
			tt.mask(sm)

			_, _, err := sm.StripMask()
			var maskErr *gerrors.MaskShapeError
			if !gerrors.As(err, &maskErr) {
				t.Fatalf("StripMask() error = %v, want MaskShapeError", err)
			}
			if maskErr.Row != tt.wantRow || maskErr.Col != tt.wantCol {
				t.Errorf("offending cell = (%d,%d), want (%d,%d)",
					maskErr.Row, maskErr.Col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestStripMaskEverythingMasked(t *testing.T) {
	sm := New(mat.NewDense(2, 2, nil))
	sm.MaskRows(0, 1)

	_, _, err := sm.StripMask()
	if !gerrors.Is(err, gerrors.ErrEmptyData) {
		t.Errorf("StripMask() error = %v, want ErrEmptyData", err)
	}
}

func TestRestoreRows(t *testing.T) {
	sm := fixture()
	_, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	// Concentration-like result: one row per kept observation, two components.
	c := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	restored, mask, err := rec.Restore(c, Rows)
	if err != nil {
		t.Fatalf("Restore(Rows) error = %v", err)
	}
	if r, cc := restored.Dims(); r != 4 || cc != 2 {
		t.Fatalf("restored dims = (%d, %d), want (4, 2)", r, cc)
	}

	for j := 0; j < 2; j++ {
		if !math.IsNaN(restored.At(1, j)) {
			t.Errorf("restored[1,%d] = %v, want NaN", j, restored.At(1, j))
		}
		if !mask[1*2+j] {
			t.Errorf("mask[1,%d] = false, want true", j)
		}
	}
	if restored.At(0, 0) != 1 || restored.At(2, 0) != 3 || restored.At(3, 1) != 6 {
		t.Error("kept rows shifted incorrectly during restore")
	}
}

func TestRestoreColumns(t *testing.T) {
	sm := fixture()
	_, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	// Spectra-like result: two components, one column per kept variable.
	st := mat.NewDense(2, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	restored, mask, err := rec.Restore(st, Columns)
	if err != nil {
		t.Fatalf("Restore(Columns) error = %v", err)
	}
	if r, c := restored.Dims(); r != 2 || c != 5 {
		t.Fatalf("restored dims = (%d, %d), want (2, 5)", r, c)
	}

	for i := 0; i < 2; i++ {
		if !math.IsNaN(restored.At(i, 3)) {
			t.Errorf("restored[%d,3] = %v, want NaN", i, restored.At(i, 3))
		}
		if !mask[i*5+3] {
			t.Errorf("mask[%d,3] = false, want true", i)
		}
	}
	if restored.At(0, 0) != 1 || restored.At(0, 4) != 4 || restored.At(1, 2) != 7 {
		t.Error("kept columns shifted incorrectly during restore")
	}
}

func TestRestoreBoth(t *testing.T) {
	sm := fixture()
	stripped, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	restored, mask, err := rec.Restore(stripped, Both)
	if err != nil {
		t.Fatalf("Restore(Both) error = %v", err)
	}
	if r, c := restored.Dims(); r != 4 || c != 5 {
		t.Fatalf("restored dims = (%d, %d), want (4, 5)", r, c)
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			masked := i == 1 || j == 3
			if masked {
				if !math.IsNaN(restored.At(i, j)) {
					t.Errorf("restored[%d,%d] = %v, want NaN", i, j, restored.At(i, j))
				}
				if !mask[i*5+j] {
					t.Errorf("mask[%d,%d] = false, want true", i, j)
				}
				continue
			}
			if got, want := restored.At(i, j), sm.Data.At(i, j); got != want {
				t.Errorf("restored[%d,%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestRestoreDimensionMismatch(t *testing.T) {
	sm := fixture()
	_, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	_, _, err = rec.Restore(mat.NewDense(2, 2, nil), Rows)
	var dimErr *gerrors.DimensionError
	if !gerrors.As(err, &dimErr) {
		t.Errorf("Restore() error = %v, want DimensionError", err)
	}
}

func TestFilterCoordinates(t *testing.T) {
	sm := fixture()
	sm.XCoords = []float64{400, 410, 420, 430, 440}
	sm.YCoords = []float64{0, 1, 2, 3}

	_, rec, err := sm.StripMask()
	if err != nil {
		t.Fatalf("StripMask() error = %v", err)
	}

	gotX := rec.FilterColumns(sm.XCoords)
	wantX := []float64{400, 410, 420, 440}
	if len(gotX) != len(wantX) {
		t.Fatalf("FilterColumns len = %d, want %d", len(gotX), len(wantX))
	}
	for i := range wantX {
		if gotX[i] != wantX[i] {
			t.Errorf("FilterColumns[%d] = %v, want %v", i, gotX[i], wantX[i])
		}
	}

	gotY := rec.FilterRows(sm.YCoords)
	wantY := []float64{0, 2, 3}
	if len(gotY) != len(wantY) {
		t.Fatalf("FilterRows len = %d, want %d", len(gotY), len(wantY))
	}
	for i := range wantY {
		if gotY[i] != wantY[i] {
			t.Errorf("FilterRows[%d] = %v, want %v", i, gotY[i], wantY[i])
		}
	}
}
