// Package styles provides shared lipgloss styles for prep's terminal
// output: check marks for the sync checker and banners for pipeline steps.
package styles

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the output.
var (
	// Success is used for passed checks and final success lines (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Error is used for failed checks and fatal diagnostics (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Accent is used for step banners (cyan/teal)
	Accent lipgloss.TerminalColor = lipgloss.Color("62")

	// Muted is used for echoed commands and skipped steps (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")
)

// Common styles.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	BannerStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Marks for check results.
const (
	CheckMark = "✓"
	CrossMark = "✗"
)

// Pass renders a passed-check line.
func Pass(text string) string {
	return SuccessStyle.Render(CheckMark) + " " + text
}

// Fail renders a failed-check line.
func Fail(text string) string {
	return ErrorStyle.Render(CrossMark) + " " + text
}

// Profile detects the color profile of stderr, honoring NO_COLOR and
// piped output. Prompt programs pass this to bubbletea.
func Profile() colorprofile.Profile {
	return colorprofile.Detect(os.Stderr, os.Environ())
}
