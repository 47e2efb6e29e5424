package mcr_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/dataset"
	"github.com/chemolab/specgo/mcr"
	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// A tiny two-component mixture: rows blend the profiles (1, 0.5, 0, 0.2)
// and (0, 0.2, 1, 0.6) in varying proportions.
func mixtureExample() *dataset.SpectralMatrix {
	st := mat.NewDense(2, 4, []float64{
		1, 0.5, 0, 0.2,
		0, 0.2, 1, 0.6,
	})
	c := mat.NewDense(5, 2, []float64{
		1.0, 0.0,
		0.8, 0.2,
		0.5, 0.5,
		0.2, 0.8,
		0.0, 1.0,
	})
	x := mat.NewDense(5, 4, nil)
	x.Mul(c, st)

	sm := dataset.New(x)
	sm.Name = "two-component mixture"
	return sm
}

func ExampleSIMPLISMA() {
	gerrors.SetWarningHandler(func(error) {})

	model, err := mcr.NewSIMPLISMA(
		mcr.WithNComponents(2),
		mcr.WithVerbose(false),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	C, St, err := model.FitTransform(mixtureExample())
	if err != nil {
		fmt.Println(err)
		return
	}

	cr, cc := C.Dims()
	sr, sc := St.Dims()
	fmt.Printf("components: %d\n", model.NComponents())
	fmt.Printf("C:  %d x %d\n", cr, cc)
	fmt.Printf("St: %d x %d\n", sr, sc)
	// Output:
	// components: 2
	// C:  5 x 2
	// St: 2 x 4
}
