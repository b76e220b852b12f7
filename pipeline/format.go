package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leofalp/searchflow/providers/observability"
)

const reportSeparator = "=================================================="

// FormatReport renders the run record as a fixed-layout human-readable
// report. It is a pure function: the same State always produces
// byte-identical output, and the State is not modified.
func FormatReport(state State) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(reportSeparator + "\n")
	b.WriteString("SEARCH RESULTS\n")
	b.WriteString(reportSeparator + "\n")
	fmt.Fprintf(&b, "Query: %s\n", state.Query)
	fmt.Fprintf(&b, "Enhanced: %s\n", state.EnhancedQuery)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Results Found: %d\n", len(state.SearchResults))
	b.WriteString("\n")
	b.WriteString("Summary:\n")
	b.WriteString(state.Summary + "\n")
	b.WriteString(reportSeparator + "\n")
	return b.String()
}

// FormatStage is the terminal stage: it renders the report and writes it to
// the configured output. The State passes through unchanged.
type FormatStage struct {
	out      io.Writer
	observer observability.Provider
}

// NewFormatStage creates the output formatting stage. When out is nil the
// report is written to os.Stdout.
func NewFormatStage(out io.Writer, observer observability.Provider) *FormatStage {
	if out == nil {
		out = os.Stdout
	}
	if observer == nil {
		observer = observability.NoopProvider{}
	}
	return &FormatStage{out: out, observer: observer}
}

// StageName implements Stage.
func (s *FormatStage) StageName() string { return "format" }

// Run writes the rendered report to the stage's output. A write failure
// aborts the run, since a demo whose report cannot be shown has nothing left
// to do.
func (s *FormatStage) Run(ctx context.Context, state State) (State, error) {
	s.observer.Info(ctx, "formatting output")

	if _, err := io.WriteString(s.out, FormatReport(state)); err != nil {
		return state, fmt.Errorf("writing report: %w", err)
	}
	return state, nil
}
