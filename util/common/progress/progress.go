// Package progress reports upload pipeline stages to the user.
package progress

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives pipeline stage transitions. The upload orchestrator
// drives one Reporter per invocation: Start at the beginning of the
// pipeline, Step on each stage transition, then Error or Success, then End.
type Reporter interface {
	// Start begins progress reporting with an initial message
	Start(message string)

	// Step reports a new stage of the operation
	Step(message string)

	// Error reports an error condition
	Error(message string)

	// Success reports successful completion
	Success(message string)

	// End finalizes progress reporting
	End()
}

// ConsoleReporter prints one plain stage line per transition. Output goes
// to Out so callers can route narration away from machine-readable stdout.
type ConsoleReporter struct {
	Out io.Writer
}

// NewConsoleReporter creates a reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout}
}

func (r *ConsoleReporter) Start(message string) {
	fmt.Fprintf(r.Out, "⚡ %s...\n", message)
}

func (r *ConsoleReporter) Step(message string) {
	fmt.Fprintf(r.Out, "  ▶ %s...\n", message)
}

func (r *ConsoleReporter) Error(message string) {
	fmt.Fprintf(r.Out, "  ❌ %s\n", message)
}

func (r *ConsoleReporter) Success(message string) {
	fmt.Fprintf(r.Out, "  ✅ %s\n", message)
}

func (r *ConsoleReporter) End() {}

// Nop discards all stage narration. Used in JSON mode and dry runs, where
// stdout must stay machine-readable.
var Nop Reporter = nopReporter{}

type nopReporter struct{}

func (nopReporter) Start(string)   {}
func (nopReporter) Step(string)    {}
func (nopReporter) Error(string)   {}
func (nopReporter) Success(string) {}
func (nopReporter) End()           {}
