// Package terminal answers one question for the rest of the CLI: what kind
// of session is this? Commands ask once at startup and then branch on the
// answer instead of re-probing file descriptors and environment variables.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Info is the resolved session state.
type Info struct {
	// IsTerminal reports a TTY on stdout.
	IsTerminal bool
	// StderrIsTerminal reports a TTY on stderr.
	StderrIsTerminal bool
	// ColorEnabled reports that ANSI colour may be emitted.
	ColorEnabled bool
	// InteractiveEnabled reports that prompts and spinners may run.
	InteractiveEnabled bool
	// ForceJSON reports that --json was passed.
	ForceJSON bool
}

// Detect combines the user-supplied flags (--no-color, --json) with the
// process environment. Colour needs a capable TTY, no NO_COLOR override,
// and a human-readable mode; prompts additionally need to be outside CI,
// where nobody is there to answer them.
func Detect(noColor, forceJSON bool) Info {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))

	// NO_COLOR convention, https://no-color.org/.
	envNoColor := os.Getenv("NO_COLOR") != ""

	colorOn := isTTY && !noColor && !envNoColor && !forceJSON && !IsDumb()
	interactiveOn := isTTY && !forceJSON && !IsCI()

	return Info{
		IsTerminal:         isTTY,
		StderrIsTerminal:   stderrTTY,
		ColorEnabled:       colorOn,
		InteractiveEnabled: interactiveOn,
		ForceJSON:          forceJSON,
	}
}

// IsDumb reports a terminal with no capabilities. An unset TERM counts:
// whatever is reading the output gave no hint it can render ANSI.
func IsDumb() bool {
	t := strings.ToLower(os.Getenv("TERM"))
	return t == "dumb" || t == ""
}

// IsCI reports that a well-known CI environment variable is set.
func IsCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "TRAVIS"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}
