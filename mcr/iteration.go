package mcr

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/chemolab/specgo/metrics"
	gerrors "github.com/chemolab/specgo/pkg/errors"
	"github.com/chemolab/specgo/pkg/log"
)

// runState is the phase of the selection loop. stateSelecting is the only
// non-terminal state.
type runState int

const (
	stateSelecting runState = iota
	stateConverged
	stateMaxReached
	stateUserStopped
)

// Termination returns the standard log attribute value for a terminal state.
func (s runState) Termination() string {
	switch s {
	case stateConverged:
		return log.TerminationConverged
	case stateMaxReached:
		return log.TerminationMaxComponents
	case stateUserStopped:
		return log.TerminationUserStopped
	default:
		return "SELECTING"
	}
}

// iterationController drives the purest-variable selection loop. It owns the
// run-local state the scoring and fitting steps thread through: the current
// component slot, the accepted indices and coordinates, the concentration
// and spectra matrices, and the report. The loop advances one accepted
// component at a time until a terminal state is reached.
type iterationController struct {
	// Fixed for the run.
	x         *mat.Dense // stripped working matrix
	xcoords   []float64  // variable-axis coordinates of the kept columns
	scorer    *purityScorer
	nPC       int
	tol       float64
	interact  bool
	commander Commander
	rcond     float64
	verbose   bool
	logger    log.Logger
	report    *Report

	// Mutable loop state.
	state     runState
	j         int // current component slot; equals the accepted count on exit
	selIdx    []int
	selCoord  []float64
	c, st     *mat.Dense
	fom       metrics.FiguresOfMerit
	prevStdev float64
}

func newIterationController(x *mat.Dense, xcoords []float64, scorer *purityScorer,
	nPC int, tol float64, interact bool, commander Commander, rcond float64,
	verbose bool, logger log.Logger, report *Report) *iterationController {
	n, p := x.Dims()
	return &iterationController{
		x:         x,
		xcoords:   xcoords,
		scorer:    scorer,
		nPC:       nPC,
		tol:       tol,
		interact:  interact,
		commander: commander,
		rcond:     rcond,
		verbose:   verbose,
		logger:    logger,
		report:    report,
		state:     stateSelecting,
		selIdx:    make([]int, nPC),
		selCoord:  make([]float64, nPC),
		c:         mat.NewDense(n, nPC, nil),
		st:        mat.NewDense(nPC, p, nil),
	}
}

// run executes the selection loop to a terminal state. On error the
// controller's matrices are not usable.
func (ic *iterationController) run() error {
	for ic.state == stateSelecting {
		var err error
		if ic.j == 0 {
			err = ic.stepFirst()
		} else {
			err = ic.stepNext()
		}
		if err != nil {
			return err
		}

		if ic.state == stateSelecting && ic.j == ic.nPC {
			msg := ic.report.MaxReached(ic.nPC)
			ic.state = stateMaxReached
			ic.logTermination(msg)
		}
	}
	return nil
}

// stepFirst selects the first purest variable from the global statistics.
// Only Accept and Change are offered interactively.
func (ic *iterationController) stepFirst() error {
	idx := ic.scorer.scoreFirst()
	if err := ic.evaluate(0, idx); err != nil {
		return err
	}
	ic.logIteration(0)

	if ic.interact {
		for {
			cmd, err := ic.commander.Review(ic.context(0, true))
			if err != nil {
				return err
			}
			switch cmd := cmd.(type) {
			case Accept:
				ic.accept()
				return nil
			case Change:
				if err := ic.applyChange(0, cmd); err != nil {
					return err
				}
			default:
				return gerrors.NewValueError("mcr.IterationController",
					"only Accept and Change apply to the first component")
			}
		}
	}

	ic.accept()
	return nil
}

// stepNext selects the j-th purest variable through the determinant sweep.
func (ic *iterationController) stepNext() error {
	j := ic.j
	idx := ic.scorer.score(j, ic.selIdx)
	ic.warnOnReselection(j, idx)

	if err := ic.evaluate(j, idx); err != nil {
		return err
	}
	ic.logIteration(j)

	if !ic.interact {
		ic.accept()
		if ic.fom.UnexplainedVariance() < ic.tol/100 {
			msg := ic.report.Converged(ic.tol)
			ic.state = stateConverged
			ic.logTermination(msg)
		}
		return nil
	}

	for {
		cmd, err := ic.commander.Review(ic.context(j, false))
		if err != nil {
			return err
		}
		switch cmd := cmd.(type) {
		case Accept:
			ic.accept()
			return nil
		case Change:
			if err := ic.applyChange(j, cmd); err != nil {
				return err
			}
		case Reject:
			ic.report.Rejected(j)
			ic.selIdx[j] = 0
			ic.selCoord[j] = 0
			ic.j--
			return nil
		case Finish:
			ic.accept()
			msg := ic.report.UserStopped(ic.j)
			ic.state = stateUserStopped
			ic.logTermination(msg)
			return nil
		}
	}
}

// evaluate records the candidate in slot j and recomputes the figures of
// merit with it included.
func (ic *iterationController) evaluate(j, idx int) error {
	ic.selIdx[j] = idx
	ic.selCoord[j] = ic.xcoords[idx]

	fom, err := figuresOfMerit(ic.x, ic.selIdx, ic.c, ic.st, j, ic.rcond)
	if err != nil {
		return err
	}
	if err := gerrors.CheckNumericalStability("mcr.figuresOfMerit",
		[]float64{fom.RSquare, fom.ResidualStd}, j); err != nil {
		// Unstable figures of merit are reported but do not abort the run.
		gerrors.Warn(err)
	}
	ic.fom = fom
	return nil
}

// accept commits the current candidate and advances to the next slot.
func (ic *iterationController) accept() {
	ic.prevStdev = ic.fom.ResidualStd
	ic.j++
}

// applyChange re-resolves the candidate in slot j per the operator's Change
// command. An out-of-range index keeps the current candidate and the
// operator is consulted again.
func (ic *iterationController) applyChange(j int, cmd Change) error {
	idx := cmd.Index
	if cmd.ByValue {
		idx = nearestIndex(ic.xcoords, cmd.Value)
	}
	if idx < 0 || idx >= len(ic.xcoords) {
		ic.logger.Warn("change command index out of range; keeping current candidate",
			log.IterationKey, j+1,
			log.PurestIndexKey, idx,
			log.VariablesKey, len(ic.xcoords),
		)
		return nil
	}

	if err := ic.evaluate(j, idx); err != nil {
		return err
	}
	ic.report.Changed(j)
	ic.logIteration(j)
	return nil
}

// warnOnReselection emits a ReselectionWarning when the argmax lands on an
// already-selected variable. The run continues: the determinant weight of a
// duplicate is degenerate, which the operator or the tolerance check will
// surface.
func (ic *iterationController) warnOnReselection(j, idx int) {
	for _, prev := range ic.selIdx[:j] {
		if prev == idx {
			gerrors.Warn(gerrors.NewReselectionWarning(j+1, idx, ic.xcoords[idx]))
			return
		}
	}
}

// logIteration appends the summary line to the report and, when verbose,
// mirrors it to the structured log.
func (ic *iterationController) logIteration(j int) {
	line := IterationLine(j, ic.selIdx[j], ic.selCoord[j], ic.fom.ResidualStd, ic.fom.RSquare)
	ic.report.Line(j, ic.selIdx[j], ic.selCoord[j], ic.fom.ResidualStd, ic.fom.RSquare)

	if ic.verbose {
		ic.logger.Info(line,
			log.IterationKey, j+1,
			log.PurestIndexKey, ic.selIdx[j],
			log.PurestCoordinateKey, ic.selCoord[j],
			log.R2ScoreKey, ic.fom.RSquare,
			log.ResidualStdKey, ic.fom.ResidualStd,
		)
	}
}

func (ic *iterationController) logTermination(msg string) {
	if ic.verbose {
		ic.logger.Info(msg,
			log.TerminationKey, ic.state.Termination(),
			log.ComponentsKey, ic.j,
			log.R2ScoreKey, ic.fom.RSquare,
		)
	}
}

func (ic *iterationController) context(j int, first bool) IterationContext {
	return IterationContext{
		Component:   j,
		Index:       ic.selIdx[j],
		Coordinate:  ic.selCoord[j],
		RSquare:     ic.fom.RSquare,
		ResidualStd: ic.fom.ResidualStd,
		First:       first,
	}
}

// nearestIndex returns the index of the coordinate closest to v. Ties
// resolve to the first index.
func nearestIndex(coords []float64, v float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, x := range coords {
		if d := math.Abs(x - v); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
