package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/proofai/proofai-cli/internal/style"
)

// StyledReporter renders stage transitions through the lipgloss theme: a
// bold opener, dimmed intermediate steps, and a coloured verdict line.
type StyledReporter struct {
	out     io.Writer
	opener  lipgloss.Style
	step    lipgloss.Style
	failure lipgloss.Style
	verdict lipgloss.Style
}

// NewStyledReporter creates a reporter with lipgloss-styled output.
func NewStyledReporter() *StyledReporter {
	return &StyledReporter{
		out:     os.Stdout,
		opener:  lipgloss.NewStyle().Bold(true).Foreground(style.Cyan),
		step:    lipgloss.NewStyle().Foreground(style.Dim).PaddingLeft(2),
		failure: lipgloss.NewStyle().Foreground(style.Red).Bold(true).PaddingLeft(2),
		verdict: lipgloss.NewStyle().Foreground(style.Green).Bold(true).PaddingLeft(2),
	}
}

// NewAutoReporter returns a StyledReporter when stdout is a TTY and colours
// are enabled, otherwise the plain ConsoleReporter.
func NewAutoReporter() Reporter {
	if term.IsTerminal(int(os.Stdout.Fd())) && style.Enabled {
		return NewStyledReporter()
	}
	return NewConsoleReporter()
}

func (r *StyledReporter) Start(message string) {
	fmt.Fprintln(r.out, r.opener.Render("⚡ "+message+"..."))
}

func (r *StyledReporter) Step(message string) {
	fmt.Fprintln(r.out, r.step.Render("→ "+message+"..."))
}

func (r *StyledReporter) Error(message string) {
	fmt.Fprintln(r.out, r.failure.Render("✗ "+message))
}

func (r *StyledReporter) Success(message string) {
	fmt.Fprintln(r.out, r.verdict.Render("✓ "+message))
}

func (r *StyledReporter) End() {}
