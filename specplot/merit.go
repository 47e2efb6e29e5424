// Package specplot renders diagnostic plots of decomposition results with
// gonum/plot. It is a pure consumer of the analysis outputs; nothing here
// feeds back into the numerical work.
package specplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/chemolab/specgo/dataset"
	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// Colors of the three overlay groups: input, reconstruction, residual.
var (
	colorInput          = color.RGBA{B: 255, A: 255}
	colorReconstruction = color.RGBA{G: 160, A: 255}
	colorResidual       = color.RGBA{R: 255, A: 255}
)

// Option configures a merit plot.
type Option func(*meritOptions)

type meritOptions struct {
	title        string
	offsetFactor float64
}

// WithTitle overrides the plot title. Default is the input dataset's name.
func WithTitle(title string) Option {
	return func(o *meritOptions) { o.title = title }
}

// WithOffsetFactor scales the vertical offset between the stacked groups.
// Default 1.2.
func WithOffsetFactor(f float64) Option {
	return func(o *meritOptions) { o.offsetFactor = f }
}

// Merit builds the standard reconstruction-quality overlay: every observation
// of the input in blue, the reconstruction shifted one band below in green,
// and the residual shifted a further band below in red. Masked cells are
// left out of the traces.
func Merit(x, xhat *dataset.SpectralMatrix, opts ...Option) (*plot.Plot, error) {
	o := &meritOptions{title: "SIMPLISMA plot: " + x.Name, offsetFactor: 1.2}
	for _, opt := range opts {
		opt(o)
	}

	n, pvars := x.Dims()
	if hr, hc := xhat.Dims(); hr != n || hc != pvars {
		return nil, gerrors.NewDimensionError("specplot.Merit", n*pvars, hr*hc, 0)
	}

	span := maxUnmasked(x)
	if span == 0 {
		span = 1
	}
	offset := o.offsetFactor * span

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = x.XTitle
	p.Y.Label.Text = x.Title

	for i := 0; i < n; i++ {
		input := rowXYs(x, i, 0)
		recon := rowXYs(xhat, i, -offset)
		residual := residualXYs(x, xhat, i, -2*offset)

		if err := addLine(p, input, colorInput, i == 0, "X"); err != nil {
			return nil, err
		}
		if err := addLine(p, recon, colorReconstruction, i == 0, "X_hat"); err != nil {
			return nil, err
		}
		if err := addLine(p, residual, colorResidual, i == 0, "residual"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveMerit renders the merit plot to path. The image format follows the
// file extension (png, svg, pdf, ...).
func SaveMerit(x, xhat *dataset.SpectralMatrix, path string, opts ...Option) error {
	p, err := Merit(x, xhat, opts...)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return gerrors.Wrapf(err, "specplot: saving %s", path)
	}
	return nil
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, legend bool, name string) error {
	if len(xys) == 0 {
		return nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return gerrors.Wrap(err, "specplot: building line")
	}
	line.Color = c
	p.Add(line)
	if legend {
		p.Legend.Add(name, line)
	}
	return nil
}

// rowXYs extracts one observation as plot points, skipping masked and NaN
// cells and applying a vertical shift.
func rowXYs(s *dataset.SpectralMatrix, row int, shift float64) plotter.XYs {
	_, pvars := s.Dims()
	xys := make(plotter.XYs, 0, pvars)
	for j := 0; j < pvars; j++ {
		v := s.Data.At(row, j)
		if s.IsMasked(row, j) || math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: s.XCoords[j], Y: v + shift})
	}
	return xys
}

func residualXYs(x, xhat *dataset.SpectralMatrix, row int, shift float64) plotter.XYs {
	_, pvars := x.Dims()
	xys := make(plotter.XYs, 0, pvars)
	for j := 0; j < pvars; j++ {
		a, b := x.Data.At(row, j), xhat.Data.At(row, j)
		if x.IsMasked(row, j) || xhat.IsMasked(row, j) || math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		xys = append(xys, plotter.XY{X: x.XCoords[j], Y: a - b + shift})
	}
	return xys
}

func maxUnmasked(s *dataset.SpectralMatrix) float64 {
	n, pvars := s.Dims()
	max := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < pvars; j++ {
			v := s.Data.At(i, j)
			if s.IsMasked(i, j) || math.IsNaN(v) {
				continue
			}
			if a := math.Abs(v); a > max {
				max = a
			}
		}
	}
	return max
}
