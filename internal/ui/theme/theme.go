// Package theme holds the lipgloss palette and styles for terminal reports.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#0EA5E9") // Sky
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate

	RiskLow      = lipgloss.Color("#22C55E") // Green
	RiskMedium   = lipgloss.Color("#EAB308") // Amber
	RiskHigh     = lipgloss.Color("#F97316") // Orange
	RiskCritical = lipgloss.Color("#DC2626") // Red
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	GaugeEmpty = lipgloss.NewStyle().
			Background(Border)
)

// Risk returns the accent style for a risk level or alert band:
// "low", "medium"/"moderate", "high" or "critical". Anything else renders
// dimmed.
func Risk(level string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch level {
	case "low":
		return base.Foreground(RiskLow)
	case "medium", "moderate":
		return base.Foreground(RiskMedium)
	case "high":
		return base.Foreground(RiskHigh)
	case "critical":
		return base.Foreground(RiskCritical)
	default:
		return base.Foreground(TextDim)
	}
}

// RiskFill returns the gauge fill style for a risk level.
func RiskFill(level string) lipgloss.Style {
	return lipgloss.NewStyle().Background(Risk(level).GetForeground())
}
