package mcr

import (
	"github.com/chemolab/specgo/pkg/log"
)

// Option configures a SIMPLISMA analysis.
type Option func(*SIMPLISMA)

// WithInteractive enables the stepwise human-in-the-loop selection. The
// component cap is raised to 100 and never reached in practice; the operator
// ends the run with Finish.
func WithInteractive(interactive bool) Option {
	return func(s *SIMPLISMA) { s.interactive = interactive }
}

// WithNComponents sets the maximum number of pure compounds sought. Must be
// at least 2; only used in non-interactive runs. Default 2.
func WithNComponents(n int) Option {
	return func(s *SIMPLISMA) { s.nComponents = n }
}

// WithTol sets the convergence criterion on the percent of unexplained
// variance. Only used in non-interactive runs. Default 0.1.
func WithTol(tol float64) Option {
	return func(s *SIMPLISMA) { s.tol = tol }
}

// WithNoise sets the correction factor in percent for low-intensity
// variables (0: no offset, 15: large offset). Default 3.
func WithNoise(noise float64) Option {
	return func(s *SIMPLISMA) { s.noise = noise }
}

// WithVerbose controls whether iteration summaries are mirrored to the
// structured log in addition to the internal report. Default true.
func WithVerbose(verbose bool) Option {
	return func(s *SIMPLISMA) { s.verbose = verbose }
}

// WithCommander sets the decision source for interactive runs. Defaults to a
// ConsolePrompter on stdin/stdout.
func WithCommander(c Commander) Option {
	return func(s *SIMPLISMA) { s.commander = c }
}

// WithRCond sets the relative singular-value cutoff of the least-squares
// solver. Smaller values keep more near-degenerate directions in the fit.
// Default 1e-15.
func WithRCond(rcond float64) Option {
	return func(s *SIMPLISMA) { s.rcond = rcond }
}

// WithLogger sets the structured logger used for verbose output.
func WithLogger(logger log.Logger) Option {
	return func(s *SIMPLISMA) { s.logger = logger }
}
