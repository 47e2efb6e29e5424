package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/pkg/errors"
)

func TestNoiseScalerStatistics(t *testing.T) {
	// Column means: 2, 0.2; population stds: sqrt(2/3)*... computed below.
	x := mat.NewDense(3, 2, []float64{
		1, 0.1,
		2, 0.2,
		3, 0.3,
	})

	s := NewNoiseScaler(3)
	if err := s.Fit(x); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	wantMean := []float64{2, 0.2}
	// Population std of {1,2,3} is sqrt(2/3); of {0.1,0.2,0.3} a tenth of it.
	sd := math.Sqrt(2.0 / 3.0)
	wantStd := []float64{sd, sd / 10}
	wantAlpha := 0.03 * 2 // 3% of the largest mean

	for j := range wantMean {
		if math.Abs(s.Mean[j]-wantMean[j]) > 1e-12 {
			t.Errorf("Mean[%d] = %v, want %v", j, s.Mean[j], wantMean[j])
		}
		if math.Abs(s.Std[j]-wantStd[j]) > 1e-12 {
			t.Errorf("Std[%d] = %v, want %v", j, s.Std[j], wantStd[j])
		}
		wantScale := math.Hypot(wantMean[j], wantStd[j]+wantAlpha)
		if math.Abs(s.Scale[j]-wantScale) > 1e-12 {
			t.Errorf("Scale[%d] = %v, want %v", j, s.Scale[j], wantScale)
		}
	}
	if math.Abs(s.Alpha-wantAlpha) > 1e-12 {
		t.Errorf("Alpha = %v, want %v", s.Alpha, wantAlpha)
	}
}

func TestNoiseScalerTransformInverseRoundTrip(t *testing.T) {
	x := mat.NewDense(4, 3, []float64{
		1, 10, 0.5,
		2, 20, 0.6,
		3, 30, 0.7,
		4, 40, 0.8,
	})

	s := NewNoiseScalerDefault()
	scaled, err := s.FitTransform(x)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Every scaled column has unit noise-corrected magnitude.
	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			want := x.At(i, j) / s.Scale[j]
			if math.Abs(scaled.At(i, j)-want) > 1e-12 {
				t.Errorf("scaled[%d,%d] = %v, want %v", i, j, scaled.At(i, j), want)
			}
		}
	}

	back, err := s.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !mat.EqualApprox(back, x, 1e-12) {
		t.Error("InverseTransform did not undo Transform")
	}
}

func TestNoiseScalerZeroColumnProtection(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		0, 1,
		0, 2,
		0, 3,
	})

	s := NewNoiseScaler(0) // no noise offset: the zero column has zero scale
	scaled, err := s.FitTransform(x)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("scaled zero column produced %v, want 0", got)
		}
	}
}

func TestNoiseScalerErrors(t *testing.T) {
	s := NewNoiseScaler(-1)
	if err := s.Fit(mat.NewDense(2, 2, nil)); err == nil {
		t.Error("Fit() error = nil for negative noise")
	}

	s = NewNoiseScalerDefault()
	var nfErr *errors.NotFittedError
	if _, err := s.Transform(mat.NewDense(2, 2, nil)); !errors.As(err, &nfErr) {
		t.Errorf("Transform() before Fit error = %v, want NotFittedError", err)
	}

	if err := s.Fit(mat.NewDense(2, 3, nil)); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := s.Transform(mat.NewDense(2, 4, nil)); err == nil {
		t.Error("Transform() error = nil for mismatched variable count")
	}
}
