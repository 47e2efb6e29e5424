package errors

import (
	"math"
	"testing"
)

// denseStub is a minimal Matrix for tests.
type denseStub struct {
	rows, cols int
	data       []float64
}

func (d *denseStub) Dims() (int, int)    { return d.rows, d.cols }
func (d *denseStub) At(i, j int) float64 { return d.data[i*d.cols+j] }

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{name: "finite values", values: []float64{1.0, -2.5, 0.0}, wantErr: false},
		{name: "contains NaN", values: []float64{1.0, math.NaN()}, wantErr: true},
		{name: "contains Inf", values: []float64{math.Inf(1), 2.0}, wantErr: true},
		{name: "empty", values: nil, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("purity_weight", tt.values, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var instErr *NumericalInstabilityError
				if !As(err, &instErr) {
					t.Error("error should be castable to *NumericalInstabilityError")
				}
			}
		})
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("rsquare", 0.997, 2); err != nil {
		t.Errorf("unexpected error for finite scalar: %v", err)
	}
	if err := CheckScalar("rsquare", math.NaN(), 2); err == nil {
		t.Error("expected error for NaN scalar")
	}
}

func TestCheckMatrix(t *testing.T) {
	clean := &denseStub{rows: 2, cols: 2, data: []float64{1, 2, 3, 4}}
	if err := CheckMatrix("input", clean, 0); err != nil {
		t.Errorf("unexpected error for finite matrix: %v", err)
	}

	dirty := &denseStub{rows: 2, cols: 2, data: []float64{1, math.Inf(-1), 3, 4}}
	if err := CheckMatrix("input", dirty, 0); err == nil {
		t.Error("expected error for matrix containing Inf")
	}
}

func TestCountNegatives(t *testing.T) {
	tests := []struct {
		name      string
		data      []float64
		wantCount int
		wantMin   float64
	}{
		{name: "all non-negative", data: []float64{0, 1, 2, 3}, wantCount: 0, wantMin: 0},
		{name: "some negative", data: []float64{1, -0.2, -3.5, 4}, wantCount: 2, wantMin: -3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &denseStub{rows: 2, cols: 2, data: tt.data}
			count, min := CountNegatives(m)
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
			if min != tt.wantMin {
				t.Errorf("min = %v, want %v", min, tt.wantMin)
			}
		})
	}
}
