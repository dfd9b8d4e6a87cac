// Package style is the visual theme for the ProofAI CLI: the colour
// palette, the reusable lipgloss styles, and the icon helpers every command
// draws on. Call Init once at startup; after that the exported styles
// render consistently everywhere.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	// Brand
	Violet = lipgloss.Color("#7C3AED")
	Cyan   = lipgloss.Color("#06B6D4")
	Teal   = lipgloss.Color("#14B8A6")

	// Semantic
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")

	// Neutral
	White  = lipgloss.Color("#FAFAFA")
	Dim    = lipgloss.Color("#6B7280")
	Subtle = lipgloss.Color("#374151")
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	// Title renders top-level headings.
	Title = lipgloss.NewStyle().Foreground(Violet).Bold(true).PaddingBottom(1)

	// Subtitle renders section headers such as the next-steps block.
	Subtitle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	// Success, Warning and Error carry the verdict colours.
	Success = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(Yellow)
	Error   = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// DimText renders hints and secondary detail.
	DimText = lipgloss.NewStyle().Foreground(Dim)

	// Code highlights inline identifiers and commands.
	Code = lipgloss.NewStyle().Foreground(Teal)

	// Bold is plain emphasis.
	Bold = lipgloss.NewStyle().Bold(true)

	// Box wraps result summaries in a rounded border.
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(1, 2)

	// SpinnerColor tints spinner animations.
	SpinnerColor = Cyan
)

// Enabled tracks whether styles render ANSI sequences. When false every
// style degrades to plain text.
var Enabled = true

// Init configures the theme. Call once at startup.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if !colorEnabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ─── Icons ───────────────────────────────────────────────────────────────────

// SuccessIcon returns a themed check mark, or plain OK without colour.
func SuccessIcon() string { return icon(Success, "✓", "OK") }

// ErrorIcon returns a themed cross, or plain ERROR without colour.
func ErrorIcon() string { return icon(Error, "✗", "ERROR") }

// WarningIcon returns a themed warning indicator.
func WarningIcon() string { return icon(Warning, "!", "WARN") }

func icon(s lipgloss.Style, glyph, fallback string) string {
	if Enabled {
		return s.Render(glyph)
	}
	return fallback
}

// Hint renders a "next step" suggestion.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}

// Banner returns the ProofAI CLI ASCII banner.
func Banner() string {
	banner := `
 ____                        __     _     ___
|  _ \  _ __   ___    ___   / _|   / \   |_ _|
| |_) || '__| / _ \  / _ \ | |_   / _ \   | |
|  __/ | |   | (_) || (_) ||  _| / ___ \  | |
|_|    |_|    \___/  \___/ |_|  /_/   \_\|___|`

	return lipgloss.NewStyle().Foreground(Violet).Bold(true).Render(banner)
}
