package reporting

import "github.com/charmbracelet/lipgloss"

// Define colors
var (
	Success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	Failure = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	Caution = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	Accent  = lipgloss.AdaptiveColor{Light: "#5A9FE0", Dark: "#71B7F9"}
	Subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// Define styles
var (
	HealthyStyle   = lipgloss.NewStyle().Foreground(Success)
	UnhealthyStyle = lipgloss.NewStyle().Foreground(Failure)
	CautionStyle   = lipgloss.NewStyle().Foreground(Caution)
	SectionStyle   = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	BannerStyle    = lipgloss.NewStyle().Foreground(Caution).Bold(true)
	SubtleStyle    = lipgloss.NewStyle().Foreground(Subtle)
)
