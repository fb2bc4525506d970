// Package tuistyles holds the shared lipgloss palette so that scenes and
// components can style output without importing the root tui package.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/herdemi/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#558B2F")
	ColorAccent    = lipgloss.Color("#F9A825")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#1E88E5")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#78909C")
	ColorBorder     = lipgloss.Color("#455A64")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				MarginBottom(1)
)

// MetricTrendStyle colors a change green when it is favourable.
func MetricTrendStyle(favourable bool) lipgloss.Style {
	if favourable {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a rupee amount with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatINR(amount)
}
