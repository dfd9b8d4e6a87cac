package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/proofai/proofai-cli/internal/style"
)

// StyledHelpTemplate returns a Cobra usage template with the fixed headings
// pre-rendered through lipgloss. Cobra's template engine cannot call out to
// lipgloss, so dynamic content (command and flag names) stays unstyled; only
// the literal chrome is coloured, which also keeps the output usable when
// help is piped.
//
// When colour is disabled the empty string tells Cobra to stay on its
// default template.
func StyledHelpTemplate() string {
	if !style.Enabled {
		return "" // fall back to Cobra default
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(style.Cyan).Render
	dim := lipgloss.NewStyle().Foreground(style.Dim).Render

	return heading("Usage") + `:
  {{.UseLine}}
` + `{{if .HasExample}}
` + heading("Examples") + `
{{.Example}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + heading("Available Commands") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}
{{end}}` + `{{if .HasAvailableLocalFlags}}
` + heading("Flags") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableInheritedFlags}}
` + heading("Global Flags") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `
{{end}}`
}
