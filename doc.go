// Package specgo is a spectroscopic data-analysis toolkit for Go. It loads
// two-dimensional spectral datasets (observations × variables, with optional
// masks, coordinate axes and metadata) and applies chemometric decomposition
// to recover pure-component spectra and concentration profiles from mixture
// measurements.
//
// The core algorithm is SIMPLISMA-style self-modeling curve resolution:
// purest variables are extracted iteratively from determinant-based purity
// spectra, and the pure-component profiles are refitted by least squares
// after each selection.
//
// # Packages
//
//   - dataset: the SpectralMatrix container, mask strip/restore, CSV I/O
//   - mcr: the SIMPLISMA model, iteration control and interactive protocol
//   - preprocessing: noise-corrected column scaling
//   - metrics: reconstruction figures of merit (R², residual σ)
//   - specplot: gonum/plot overlays of input, reconstruction and residual
//   - config: YAML run configuration for the CLI
//   - cmd/specgo: the command-line interface
//
// # Quick start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/chemolab/specgo/dataset"
//	    "github.com/chemolab/specgo/mcr"
//	)
//
//	func main() {
//	    sm, err := dataset.ReadCSVFile("spectra.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model, err := mcr.NewSIMPLISMA(mcr.WithNComponents(4), mcr.WithTol(0.1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    C, St, err := model.FitTransform(sm)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(model.Log())
//	    _ = C  // concentrations, observations × components
//	    _ = St // pure spectra, components × variables
//	}
package specgo
