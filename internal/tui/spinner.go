package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proofai/proofai-cli/internal/style"
)

// doneMsg signals that the wrapped operation finished.
type doneMsg struct {
	result interface{}
	err    error
}

// spinnerModel animates a spinner while an operation runs in the
// background, then quits as soon as the operation delivers its doneMsg.
type spinnerModel struct {
	spinner     spinner.Model
	title       string
	fn          func() (interface{}, error)
	done        bool
	interrupted bool
	err         error
	result      interface{}
}

func newSpinnerModel(title string, fn func() (interface{}, error)) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.SpinnerColor)

	return spinnerModel{spinner: s, title: title, fn: fn}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			result, err := m.fn()
			return doneMsg{result: result, err: err}
		},
	)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}

	case doneMsg:
		m.done = true
		m.err = msg.err
		m.result = msg.result
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.interrupted {
		return ""
	}
	if m.done {
		if m.err != nil {
			return style.ErrorIcon() + " " + m.title + "\n"
		}
		return style.SuccessIcon() + " " + m.title + "\n"
	}
	return m.spinner.View() + " " + m.title + "...\n"
}

// RunWithSpinner runs fn behind an animated spinner and returns its result.
// An interrupt abandons the operation and reports an error rather than a
// nil result.
func RunWithSpinner(title string, fn func() (interface{}, error)) (interface{}, error) {
	final, err := tea.NewProgram(newSpinnerModel(title, fn)).Run()
	if err != nil {
		return nil, err
	}

	m := final.(spinnerModel)
	if m.interrupted {
		return nil, errors.New("interrupted")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
