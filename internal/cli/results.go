package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/slicekit/slicer/internal/slice"
)

var (
	glyphGood     = color.New(color.FgGreen).Sprint("✓")
	glyphSkip     = color.New(color.FgHiBlack).Sprint("↷")
	glyphConflict = color.New(color.FgYellow).Sprint("⚠")
	glyphBad      = color.New(color.FgRed).Sprint("✗")
)

func resultGlyph(outcome slice.Outcome) string {
	switch outcome {
	case slice.OutcomeSkipped:
		return glyphSkip
	case slice.OutcomeConflict:
		return glyphConflict
	case slice.OutcomeFailed:
		return glyphBad
	default:
		return glyphGood
	}
}

// printResults renders one line per slice result.
func printResults(out io.Writer, results []slice.Result) {
	for _, r := range results {
		line := fmt.Sprintf("%s %-12s %s", resultGlyph(r.Outcome), r.Name, r.Outcome)
		if r.Detail != "" {
			line += ": " + r.Detail
		}
		fmt.Fprintln(out, line)
		if r.Err != nil {
			fmt.Fprintf(out, "    %v\n", r.Err)
		}
	}
}

// summarizeFailures returns a command-level error when any slice failed,
// so partial failures surface as a non-zero exit.
func summarizeFailures(results []slice.Result, verb string) error {
	if n := slice.CountFailed(results); n > 0 {
		return fmt.Errorf("%d of %d slices failed to %s", n, len(results), verb)
	}
	return nil
}
