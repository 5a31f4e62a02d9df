package tui

import (
	"github.com/charmbracelet/lipgloss"

	"kubemon/internal/reporting"
)

const (
	// wideLayoutMinWidth is the terminal width at which the pod and
	// connectivity panels sit side by side instead of stacked.
	wideLayoutMinWidth = 96
	// minHeightForLogPanel hides the activity log on short terminals.
	minHeightForLogPanel = 24
)

var (
	appStyle = lipgloss.NewStyle().Margin(0, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"}).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})

	statusTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})

	healthyTextStyle   = lipgloss.NewStyle().Foreground(reporting.Success)
	unhealthyTextStyle = lipgloss.NewStyle().Foreground(reporting.Failure)
	cautionTextStyle   = lipgloss.NewStyle().Foreground(reporting.Caution)
	subtleTextStyle    = lipgloss.NewStyle().Foreground(reporting.Subtle)

	statusSuccessStyle = lipgloss.NewStyle().Foreground(reporting.Success).Bold(true)
	statusErrorStyle   = lipgloss.NewStyle().Foreground(reporting.Failure).Bold(true)

	logInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#E0E0E0"})
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A07000", Dark: "#FFD066"}).Bold(true)
	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B30000", Dark: "#FF6B6B"}).Bold(true)
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#909090"}).Italic(true)
)
