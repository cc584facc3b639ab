// Package tui provides the terminal front end for chime: the Bubble Tea
// progress view shown while sounds are generated, plus the markdown and
// YAML renderers used by the list and config commands.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - consistent colors used throughout the TUI
var (
	PrimaryColor = lipgloss.Color("#00D7FF") // Cyan - in-progress states
	SuccessColor = lipgloss.Color("#5AF78E") // Green - written files
	WarningColor = lipgloss.Color("#F3F99D") // Yellow - cancelled
	ErrorColor   = lipgloss.Color("#FF5C57") // Red - failures
	MutedColor   = lipgloss.Color("#6C7086") // Gray - pending, muted text
	BorderColor  = lipgloss.Color("#45475A") // Dark gray - borders, dividers
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().
			Foreground(BorderColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Job status styles
var (
	statusWrittenStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	statusRunningStyle = lipgloss.NewStyle().Foreground(PrimaryColor)
	statusPendingStyle = lipgloss.NewStyle().Foreground(MutedColor)
	statusFailedStyle  = lipgloss.NewStyle().Foreground(ErrorColor)

	StateRunningStyle  = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	StateCompleteStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	StateStoppedStyle  = lipgloss.NewStyle().Bold(true).Foreground(WarningColor)
	StateErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
)

// Progress bar styles
var (
	progressBarFillStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	progressBarEmptyStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// Status icons
const (
	IconWritten = "✓"
	IconRunning = "●"
	IconPending = "○"
	IconFailed  = "✗"
)

// GetStateStyle returns the header style for a run state.
func GetStateStyle(state RunState) lipgloss.Style {
	switch state {
	case StateRunning:
		return StateRunningStyle
	case StateComplete:
		return StateCompleteStyle
	case StateStopped:
		return StateStoppedStyle
	case StateError:
		return StateErrorStyle
	default:
		return StateRunningStyle
	}
}
