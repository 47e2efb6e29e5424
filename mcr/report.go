package mcr

import (
	"fmt"
	"strings"
)

// Report accumulates the human-readable record of a selection run: a header
// with the run parameters, one line per iteration with the figures of merit,
// operator annotations in interactive runs, and a termination message. It is
// append-only; the finished text is embedded into the descriptions of every
// output dataset.
type Report struct {
	b strings.Builder
}

// Header appends the run banner and the iteration-table column names.
func (r *Report) Header(name string, noise, tol float64, nPC int, interactive bool) {
	if interactive {
		r.b.WriteString("*** Interactive SIMPLISMA analysis *** \n")
	} else {
		r.b.WriteString("*** Automatic SIMPL(I)SMA analysis *** \n")
	}
	fmt.Fprintf(&r.b, "dataset: %s\n", name)
	fmt.Fprintf(&r.b, "  noise: %2g %%\n", noise)
	if !interactive {
		fmt.Fprintf(&r.b, "    tol: %2g %%\n", tol)
		fmt.Fprintf(&r.b, "   n_pc: %2d\n", nPC)
	}
	r.b.WriteString("\n")
	r.b.WriteString("#iter index_pc  coord_pc   Std(res)   R^2   \n")
	r.b.WriteString("---------------------------------------------\n")
}

// IterationLine formats one iteration summary without appending it, so the
// same text can go to both the report and the verbose log.
func IterationLine(j, index int, coord, stdevRes, rsquare float64) string {
	return fmt.Sprintf("%4d  %5d  %8.1f %10.4f %10.4f ", j+1, index, coord, stdevRes, rsquare)
}

// Line appends one iteration summary.
func (r *Report) Line(j, index int, coord, stdevRes, rsquare float64) {
	r.b.WriteString(IterationLine(j, index, coord, stdevRes, rsquare))
	r.b.WriteString("\n")
}

// Changed annotates an operator-changed pure variable.
func (r *Report) Changed(j int) {
	fmt.Fprintf(&r.b, "   |--> changed pure variable #%d\n", j+1)
}

// Rejected annotates an operator-rejected pure variable.
func (r *Report) Rejected(j int) {
	fmt.Fprintf(&r.b, "   |--> rejected pure variable #%d\n", j+1)
}

// Converged appends the tolerance-reached termination message and returns it.
func (r *Report) Converged(tol float64) string {
	msg := fmt.Sprintf("\n**** Unexplained variance lower than 'tol' (%g%%) \n**** End of SIMPL(I)SMA analysis.", tol)
	r.b.WriteString(msg)
	r.b.WriteString("\n")
	return msg
}

// MaxReached appends the component-cap termination message and returns it.
func (r *Report) MaxReached(nPC int) string {
	msg := fmt.Sprintf("\n**** Reached maximum number of pure compounds 'n_pc' (%d) \n**** End of SIMPL(I)SMA analysis.", nPC)
	r.b.WriteString(msg)
	r.b.WriteString("\n")
	return msg
}

// UserStopped appends the operator-interrupt termination message and returns it.
func (r *Report) UserStopped(n int) string {
	msg := fmt.Sprintf("\n**** Interrupted by user at compound # %d \n**** End of SIMPL(I)SMA analysis.", n)
	r.b.WriteString(msg)
	r.b.WriteString("\n")
	return msg
}

// String returns the accumulated report text.
func (r *Report) String() string {
	return r.b.String()
}
