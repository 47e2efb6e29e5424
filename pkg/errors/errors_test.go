package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "specgo: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Transform",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "specgo: Transform: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{
			name: "observation axis",
			axis: 0,
			want: "specgo: Transform: dimension mismatch on axis 0 (observations). Expected 10, got 8",
		},
		{
			name: "variable axis",
			axis: 1,
			want: "specgo: Transform: dimension mismatch on axis 1 (variables). Expected 10, got 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Transform", 10, 8, tt.axis)

			if err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
			}

			var dimErr *DimensionError
			if !As(err, &dimErr) {
				t.Error("Error should be castable to *DimensionError")
			}
			if dimErr.Expected != 10 || dimErr.Got != 8 {
				t.Errorf("fields = (%d, %d), want (10, 8)", dimErr.Expected, dimErr.Got)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("SIMPLISMA", "Transform")

	want := "specgo: SIMPLISMA: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("n_components", "must be at least 1", 0)

	want := "specgo: invalid configuration parameter 'n_components': must be at least 1 (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var cfgErr *ConfigurationError
	if !As(err, &cfgErr) {
		t.Error("Error should be castable to *ConfigurationError")
	}
	if cfgErr.ParamName != "n_components" {
		t.Errorf("ParamName = %q, want %q", cfgErr.ParamName, "n_components")
	}
}

func TestNewMaskShapeError(t *testing.T) {
	err := NewMaskShapeError("StripMask", 2, 3)

	if !strings.Contains(err.Error(), "first partial cell at [2,3]") {
		t.Errorf("Error() = %v, want cell position mentioned", err.Error())
	}

	var maskErr *MaskShapeError
	if !As(err, &maskErr) {
		t.Error("Error should be castable to *MaskShapeError")
	}
	if maskErr.Row != 2 || maskErr.Col != 3 {
		t.Errorf("cell = (%d, %d), want (2, 3)", maskErr.Row, maskErr.Col)
	}
}

func TestWarningMessages(t *testing.T) {
	tests := []struct {
		name string
		warn error
		want []string
	}{
		{
			name: "negative values",
			warn: NewNegativeValueWarning("SIMPLISMA.Fit", 3, -0.5),
			want: []string{"SIMPLISMA.Fit", "3 negative value(s)", "-0.5"},
		},
		{
			name: "re-selection",
			warn: NewReselectionWarning(3, 17, 450),
			want: []string{"purest variable #3", "index 17", "450"},
		},
		{
			name: "ill conditioned",
			warn: NewIllConditionedWarning("lstsq", 2, 3, 1e-15),
			want: []string{"rank 2 < 3", "minimum-norm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.warn.Error()
			for _, fragment := range tt.want {
				if !strings.Contains(msg, fragment) {
					t.Errorf("Error() = %q, want fragment %q", msg, fragment)
				}
			}
		})
	}
}

func TestWarnHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(func(w error) {})

	warn := NewReselectionWarning(2, 5, 1.5)
	Warn(warn)

	if got == nil {
		t.Fatal("expected handler to receive the warning")
	}
	var resel *ReselectionWarning
	if !As(got, &resel) {
		t.Errorf("handler received %T, want *ReselectionWarning", got)
	}
}

func TestZerologWarnFuncTakesPrecedence(t *testing.T) {
	var viaHandler, viaZerolog error
	SetWarningHandler(func(w error) { viaHandler = w })
	SetZerologWarnFunc(func(w error) { viaZerolog = w })
	defer func() {
		SetWarningHandler(func(w error) {})
		SetZerologWarnFunc(nil)
	}()

	Warn(NewNegativeValueWarning("Fit", 1, -1))

	if viaZerolog == nil {
		t.Error("expected zerolog sink to receive the warning")
	}
	if viaHandler != nil {
		t.Error("plain handler should not fire when zerolog sink is set")
	}
}

func TestWrapAndIs(t *testing.T) {
	baseErr := ErrSingularMatrix

	wrapped := Wrap(baseErr, "in SIMPLISMA.Fit")

	if !Is(wrapped, ErrSingularMatrix) {
		t.Error("Expected Is(wrapped, ErrSingularMatrix) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in SIMPLISMA.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Fit", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Fit", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
