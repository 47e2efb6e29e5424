package mcr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// Command is the closed set of operator decisions during an interactive run.
type Command interface {
	isCommand()
}

// Accept keeps the current candidate and continues with the next component.
type Accept struct{}

// Change replaces the current candidate with another variable, either by
// column index or by the axis coordinate closest to Value. The figures of
// merit are recomputed and the operator is consulted again.
type Change struct {
	// Index is the replacement column index. Used when ByValue is false.
	Index int

	// ByValue selects coordinate-based resolution.
	ByValue bool

	// Value is resolved to the variable whose axis coordinate is nearest.
	Value float64
}

// Reject discards the current candidate and returns to the previous
// component slot.
type Reject struct{}

// Finish accepts the current candidate and ends the run.
type Finish struct{}

func (Accept) isCommand() {}
func (Change) isCommand() {}
func (Reject) isCommand() {}
func (Finish) isCommand() {}

// IterationContext is what a Commander sees before deciding on a candidate.
type IterationContext struct {
	// Component is the zero-based component slot being filled.
	Component int

	// Index and Coordinate identify the candidate purest variable.
	Index      int
	Coordinate float64

	// RSquare and ResidualStd are the figures of merit with the candidate
	// included.
	RSquare     float64
	ResidualStd float64

	// First marks the first component, where only Accept and Change are
	// offered.
	First bool
}

// Commander decides the fate of each candidate purest variable during an
// interactive run. Implementations must return Accept or Change when
// ctx.First is set; Reject and Finish only apply from the second component
// on. A non-nil error aborts the run.
type Commander interface {
	Review(ctx IterationContext) (Command, error)
}

// CommanderFunc adapts a function to the Commander interface.
type CommanderFunc func(ctx IterationContext) (Command, error)

// Review implements Commander.
func (f CommanderFunc) Review(ctx IterationContext) (Command, error) {
	return f(ctx)
}

// ConsolePrompter is the terminal Commander: it prints the single-letter
// menu of the current iteration, reads commands from an input stream, and
// reprompts on anything it cannot parse. Malformed input never reaches the
// selection loop.
type ConsolePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsolePrompter creates a prompter reading commands from r and writing
// prompts to w.
func NewConsolePrompter(r io.Reader, w io.Writer) *ConsolePrompter {
	return &ConsolePrompter{
		in:  bufio.NewScanner(r),
		out: w,
	}
}

// Review implements Commander over the console protocol.
func (c *ConsolePrompter) Review(ctx IterationContext) (Command, error) {
	prompt := "   |--> (a) Accept and continue, (c) Change, (r) Reject, (f) Accept and finish: "
	valid := "acrf"
	if ctx.First {
		prompt = "   |--> (a) Accept, (c) Change : "
		valid = "ac"
	}

	for {
		ans, err := c.ask(prompt)
		if err != nil {
			return nil, err
		}
		ans = strings.ToLower(strings.TrimSpace(ans))
		if len(ans) != 1 || !strings.Contains(valid, ans) {
			continue
		}

		switch ans {
		case "a":
			return Accept{}, nil
		case "r":
			return Reject{}, nil
		case "f":
			return Finish{}, nil
		case "c":
			cmd, err := c.askChange()
			if err != nil {
				return nil, err
			}
			return cmd, nil
		}
	}
}

// askChange reads the replacement variable: an integer is taken as a column
// index, a float as an axis coordinate resolved to the nearest variable.
func (c *ConsolePrompter) askChange() (Command, error) {
	for {
		ans, err := c.ask("   |--> enter the new index (int) or variable value (float): ")
		if err != nil {
			return nil, err
		}
		ans = strings.TrimSpace(ans)

		if idx, err := strconv.Atoi(ans); err == nil {
			return Change{Index: idx}, nil
		}
		if val, err := strconv.ParseFloat(ans, 64); err == nil {
			return Change{ByValue: true, Value: val}, nil
		}
		fmt.Fprintln(c.out, "   |--> Incorrect answer. Please enter a valid index or value")
	}
}

func (c *ConsolePrompter) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", gerrors.Wrap(err, "mcr: reading interactive command")
		}
		return "", gerrors.Wrap(io.EOF, "mcr: interactive input closed")
	}
	return c.in.Text(), nil
}
