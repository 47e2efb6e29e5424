package mcr

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/metrics"
	gerrors "github.com/chemolab/specgo/pkg/errors"
)

func TestLstsqExactSystem(t *testing.T) {
	// A·X = B with a known X: A (3x2) full rank, X (2x2).
	a := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	wantX := mat.NewDense(2, 2, []float64{
		2, -1,
		3, 4,
	})
	var b mat.Dense
	b.Mul(a, wantX)

	got, err := lstsq(a, &b, defaultRCond, "test")
	if err != nil {
		t.Fatalf("lstsq() error = %v", err)
	}
	if !mat.EqualApprox(got, wantX, 1e-12) {
		t.Errorf("lstsq() =\n%v\nwant\n%v", mat.Formatted(got), mat.Formatted(wantX))
	}
}

func TestLstsqOverdetermined(t *testing.T) {
	// Least-squares line fit through (0,0.1), (1,0.9), (2,2.1), (3,2.9):
	// closed form gives slope 0.98, intercept 0.03.
	a := mat.NewDense(4, 2, []float64{
		0, 1,
		1, 1,
		2, 1,
		3, 1,
	})
	b := mat.NewDense(4, 1, []float64{0.1, 0.9, 2.1, 2.9})

	got, err := lstsq(a, b, defaultRCond, "test")
	if err != nil {
		t.Fatalf("lstsq() error = %v", err)
	}
	if slope := got.At(0, 0); math.Abs(slope-0.98) > 1e-10 {
		t.Errorf("slope = %v, want 0.98", slope)
	}
	if intercept := got.At(1, 0); math.Abs(intercept-0.03) > 1e-10 {
		t.Errorf("intercept = %v, want 0.03", intercept)
	}
}

func TestLstsqRankDeficientWarnsAndSolves(t *testing.T) {
	warnings := silenceWarnings(t)

	// Two identical columns: rank 1 out of 2.
	a := mat.NewDense(3, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
	})
	b := mat.NewDense(3, 1, []float64{2, 4, 6})

	got, err := lstsq(a, b, defaultRCond, "test")
	if err != nil {
		t.Fatalf("lstsq() error = %v", err)
	}

	// The minimum-norm solution splits the coefficient evenly: x = (1, 1).
	if !mat.EqualApprox(got, mat.NewDense(2, 1, []float64{1, 1}), 1e-10) {
		t.Errorf("lstsq() =\n%v\nwant (1, 1)", mat.Formatted(got))
	}

	found := false
	for _, w := range *warnings {
		var ill *gerrors.IllConditionedWarning
		if gerrors.As(w, &ill) {
			found = true
			if ill.Rank != 1 || ill.Cols != 2 {
				t.Errorf("warning rank = %d/%d, want 1/2", ill.Rank, ill.Cols)
			}
		}
	}
	if !found {
		t.Error("no IllConditionedWarning for a rank-deficient system")
	}
}

func TestLstsqDimensionMismatch(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1})
	b := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	if _, err := lstsq(a, b, defaultRCond, "test"); err == nil {
		t.Fatal("lstsq() error = nil for mismatched row counts")
	}
}

func TestReconstructDims(t *testing.T) {
	c := mat.NewDense(4, 2, []float64{1, 0, 0, 1, 1, 1, 2, 2})
	st := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	xhat, err := reconstruct(c, st)
	if err != nil {
		t.Fatalf("reconstruct() error = %v", err)
	}
	if r, col := xhat.Dims(); r != 4 || col != 3 {
		t.Errorf("reconstruct dims = (%d, %d), want (4, 3)", r, col)
	}

	if _, err := reconstruct(c, mat.NewDense(3, 3, nil)); err == nil {
		t.Error("reconstruct() error = nil for inner-dimension mismatch")
	}
}

func TestFiguresOfMeritOverwritesSpectraBlock(t *testing.T) {
	silenceWarnings(t)
	sm := syntheticMixture(t)
	x := sm.Data
	n, p := x.Dims()

	c := mat.NewDense(n, 3, nil)
	st := mat.NewDense(3, p, nil)
	selected := []int{10, 25, 0}

	fom0, err := figuresOfMerit(x, selected, c, st, 0, defaultRCond)
	if err != nil {
		t.Fatalf("figuresOfMerit(j=0) error = %v", err)
	}
	row0 := append([]float64(nil), st.RawRowView(0)...)

	fom1, err := figuresOfMerit(x, selected, c, st, 1, defaultRCond)
	if err != nil {
		t.Fatalf("figuresOfMerit(j=1) error = %v", err)
	}

	// Row 0 is refitted when component 1 joins, not merely kept.
	same := true
	for j := range row0 {
		if math.Abs(row0[j]-st.At(0, j)) > 1e-12 {
			same = false
			break
		}
	}
	if same {
		t.Error("St row 0 unchanged after refit with a second component")
	}

	if fom1.RSquare < fom0.RSquare {
		t.Errorf("RSquare fell from %v to %v with a second component", fom0.RSquare, fom1.RSquare)
	}

	var zero metrics.FiguresOfMerit
	if fom0 == zero || fom1 == zero {
		t.Error("figures of merit not computed")
	}
}
